package grader

import (
	"encoding/json"
	"strings"
)

// ParseOutcome classifies the model's grading output.
type ParseOutcome string

const (
	// ParsedValid marks output that decoded into well-formed grades.
	ParsedValid ParseOutcome = "parsed_valid"
	// ParsedWrongShape marks valid JSON that is not a grade array.
	ParsedWrongShape ParseOutcome = "parsed_wrong_shape"
	// Unparsable marks output that is not valid JSON at all.
	Unparsable ParseOutcome = "unparsable"
)

// Record is one grade the model assigned to a result record.
type Record struct {
	ConfigID  string  `json:"config_id"`
	Query     string  `json:"query"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// Classify parses model output into grade records. All three outcomes
// persist the same raw output; the tier only changes what gets logged.
func Classify(raw string) (ParseOutcome, []Record) {
	cleaned := stripFences(strings.TrimSpace(raw))
	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return Unparsable, nil
	}
	list, ok := value.([]any)
	if !ok {
		return ParsedWrongShape, nil
	}
	records := make([]Record, 0, len(list))
	for _, element := range list {
		fields, ok := element.(map[string]any)
		if !ok {
			return ParsedWrongShape, nil
		}
		record, ok := recordFromFields(fields)
		if !ok {
			return ParsedWrongShape, nil
		}
		records = append(records, record)
	}
	return ParsedValid, records
}

func recordFromFields(fields map[string]any) (Record, bool) {
	configID, ok := fields["config_id"].(string)
	if !ok || configID == "" {
		return Record{}, false
	}
	queryText, ok := fields["query"].(string)
	if !ok {
		return Record{}, false
	}
	score, ok := fields["score"].(float64)
	if !ok || score < 0 || score > 10 {
		return Record{}, false
	}
	reasoning, _ := fields["reasoning"].(string)
	return Record{ConfigID: configID, Query: queryText, Score: score, Reasoning: reasoning}, true
}

// stripFences removes a markdown code fence wrapping the payload.
// Models often fence JSON even when told not to.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
