package runner

// Summary aggregates run results for quick inspection.
type Summary struct {
	QueriesTotal    int               `json:"queries_total"`
	QueriesRunnable int               `json:"queries_runnable"`
	ConfigsTotal    int               `json:"configs_total"`
	ConfigsSkipped  int               `json:"configs_skipped"`
	ResultsTotal    int               `json:"results_total"`
	ResultsOK       int               `json:"results_ok"`
	ResultsFailed   int               `json:"results_failed"`
	PerConfig       []ConfigSummary   `json:"per_config"`
	PerProvider     []ProviderSummary `json:"per_provider"`
}

// ConfigSummary tallies outcomes for one provider config.
type ConfigSummary struct {
	ConfigID string `json:"config_id"`
	Provider string `json:"provider"`
	OK       int    `json:"ok"`
	Failed   int    `json:"failed"`
}

// ProviderSummary tallies outcomes across every config backed by one
// provider.
type ProviderSummary struct {
	Provider string `json:"provider"`
	OK       int    `json:"ok"`
	Failed   int    `json:"failed"`
}

// summarize aggregates records into a run summary. Per-config and
// per-provider entries appear in dispatch order, which matches config
// file order.
func summarize(records []ResultRecord, queriesTotal, queriesRunnable, configsTotal, configsSkipped int) Summary {
	summary := Summary{
		QueriesTotal:    queriesTotal,
		QueriesRunnable: queriesRunnable,
		ConfigsTotal:    configsTotal,
		ConfigsSkipped:  configsSkipped,
		ResultsTotal:    len(records),
	}
	indexByConfig := map[string]int{}
	indexByProvider := map[string]int{}
	for _, record := range records {
		if record.HasError {
			summary.ResultsFailed++
		} else {
			summary.ResultsOK++
		}
		c, ok := indexByConfig[record.ConfigID]
		if !ok {
			c = len(summary.PerConfig)
			indexByConfig[record.ConfigID] = c
			summary.PerConfig = append(summary.PerConfig, ConfigSummary{
				ConfigID: record.ConfigID,
				Provider: record.Provider,
			})
		}
		p, ok := indexByProvider[record.Provider]
		if !ok {
			p = len(summary.PerProvider)
			indexByProvider[record.Provider] = p
			summary.PerProvider = append(summary.PerProvider, ProviderSummary{
				Provider: record.Provider,
			})
		}
		if record.HasError {
			summary.PerConfig[c].Failed++
			summary.PerProvider[p].Failed++
		} else {
			summary.PerConfig[c].OK++
			summary.PerProvider[p].OK++
		}
	}
	return summary
}
