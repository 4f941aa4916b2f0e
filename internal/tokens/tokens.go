package tokens

// Estimate approximates how many tokens a payload spans using the common
// four-characters-per-token heuristic. Providers report this alongside raw
// payloads so runs can be compared on response size without a tokenizer
// dependency.
func Estimate(data []byte) int {
	return len(data) / 4
}

// EstimateString approximates the token count of a string.
func EstimateString(text string) int {
	return len(text) / 4
}
