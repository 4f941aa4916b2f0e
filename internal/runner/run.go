package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"serpbench/internal/artifact"
	"serpbench/internal/config"
	"serpbench/internal/provider"
	"serpbench/internal/query"
)

// Run loads the query sets, computes the runnable set against a single
// captured timestamp, and dispatches every runnable query against every
// eligible provider config. Provider failures fold into their result
// records; only unreadable inputs abort the run.
func Run(ctx context.Context, cfg config.Config, params RunParams) (Artifact, error) {
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	lookupEnv := params.Deps.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	registry := params.Deps.Registry
	if registry == nil {
		registry = provider.DefaultRegistry(nil)
	}
	observer := ensureObserver(params.Deps.Observer)
	warnings := params.Warnings
	if warnings == nil {
		warnings = io.Discard
	}

	startedAt := now().UTC()
	runID, err := ensureRunID(params.Deps.RunID, startedAt)
	if err != nil {
		return Artifact{}, err
	}

	staticPath := config.ResolvePath(params.BaseDir, cfg.Queries.Static)
	temporalPath := config.ResolvePath(params.BaseDir, cfg.Queries.Temporal)
	entries, err := query.LoadSets(staticPath, temporalPath)
	if err != nil {
		return Artifact{}, err
	}
	queries, report := query.Sanitize(entries)
	for _, line := range report.Summary() {
		fmt.Fprintln(warnings, line)
	}

	// The whole run shares one timestamp: every query's window is
	// judged against the instant the run started.
	runnable := query.FilterRunnable(queries, startedAt)

	plan, skipped := planConfigs(cfg.Configs, registry, lookupEnv)
	for _, skip := range skipped {
		fmt.Fprintf(warnings, "skipping config %s: %s\n", skip.ConfigID, skip.Reason)
		observer.OnConfigSkipped(skip.ConfigID, skip.Provider, skip.Reason)
	}

	observer.OnRunStart(runID, len(runnable), len(plan))

	// Dispatch is single-slot: one provider call in flight at a time,
	// in query-major order.
	if params.Workers > 1 {
		fmt.Fprintf(warnings, "concurrency is fixed at 1; ignoring workers=%d\n", params.Workers)
	}

	total := len(runnable) * len(plan)
	records := make([]ResultRecord, 0, total)
	index := 0
	for _, q := range runnable {
		for _, pc := range plan {
			if err := ctx.Err(); err != nil {
				return Artifact{}, fmt.Errorf("run canceled: %w", err)
			}
			index++
			observer.OnDispatchEvent(DispatchEvent{
				Index:     index,
				Total:     total,
				ConfigID:  pc.Config.ID,
				Provider:  pc.Config.Provider,
				QueryText: q.Text,
				Type:      DispatchRunning,
				EmittedAt: now(),
			})

			executedAt := now().UTC()
			response := dispatch(ctx, pc, q.Text)
			record := ResultRecord{
				QueryText:   q.Text,
				GroundTruth: q.GroundTruth,
				ValidFrom:   q.ValidFrom,
				ValidUntil:  q.ValidUntil,
				ConfigID:    pc.Config.ID,
				Provider:    pc.Config.Provider,
				Params:      pc.Config.Params,
				ExecutedAt:  executedAt,
				Response:    response,
				HasError:    response.Failed(),
			}
			records = append(records, record)

			eventType := DispatchOK
			if record.HasError {
				eventType = DispatchFailed
			}
			observer.OnDispatchEvent(DispatchEvent{
				Index:     index,
				Total:     total,
				ConfigID:  pc.Config.ID,
				Provider:  pc.Config.Provider,
				QueryText: q.Text,
				Type:      eventType,
				LatencyMS: response.LatencyMS,
				Tokens:    response.TokenCount,
				Error:     response.Err,
				EmittedAt: now(),
			})
		}
	}

	art := Artifact{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: now().UTC(),
		Results:    records,
		Skipped:    skipped,
		Summary:    summarize(records, len(queries), len(runnable), len(cfg.Configs), len(skipped)),
	}
	observer.OnRunEnd(art)
	return art, nil
}

// RunAndWrite executes a run and persists its artifact.
func RunAndWrite(ctx context.Context, cfg config.Config, params RunParams) (Artifact, string, error) {
	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Output.Dir
	}
	outputDir = config.ResolvePath(params.BaseDir, outputDir)

	art, err := Run(ctx, cfg, params)
	if err != nil {
		return Artifact{}, "", err
	}
	store := artifact.Store{Dir: outputDir}
	if err := store.SaveRun(art.RunID, art); err != nil {
		return art, "", fmt.Errorf("write run artifact: %w", err)
	}
	return art, store.RunPath(art.RunID), nil
}

// plannedConfig couples a provider config with its resolved provider.
// Provider stays nil when the registry has no implementation; each
// dispatch then records the resolution error instead of calling out.
type plannedConfig struct {
	Config   config.ProviderConfig
	Provider provider.Provider
	Err      string
}

// planConfigs resolves providers and applies the credential gate.
// Configs whose provider requires a credential that is absent from the
// environment are skipped wholesale rather than producing N failed
// records.
func planConfigs(configs []config.ProviderConfig, registry *provider.Registry, lookupEnv func(string) (string, bool)) ([]plannedConfig, []SkippedConfig) {
	plan := make([]plannedConfig, 0, len(configs))
	var skipped []SkippedConfig
	for _, pc := range configs {
		resolved, err := registry.Resolve(pc.Provider)
		if err != nil {
			plan = append(plan, plannedConfig{Config: pc, Err: err.Error()})
			continue
		}
		if env := resolved.CredentialEnv(); env != "" {
			if _, ok := lookupEnv(env); !ok {
				skipped = append(skipped, SkippedConfig{
					ConfigID: pc.ID,
					Provider: pc.Provider,
					Reason:   fmt.Sprintf("%s is not set", env),
				})
				continue
			}
		}
		plan = append(plan, plannedConfig{Config: pc, Provider: resolved})
	}
	return plan, skipped
}

// dispatch calls one provider for one query, converting panics and
// unresolved providers into error responses so a bad pairing cannot
// take down the run.
func dispatch(ctx context.Context, pc plannedConfig, queryText string) (response provider.Response) {
	if pc.Provider == nil {
		return provider.Response{Err: pc.Err}
	}
	defer func() {
		if r := recover(); r != nil {
			response = provider.Response{Err: fmt.Sprintf("provider panic: %v", r)}
		}
	}()
	return pc.Provider.Search(ctx, queryText, pc.Config.Params)
}
