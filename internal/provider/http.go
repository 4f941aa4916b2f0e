package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"serpbench/internal/tokens"
)

// requestIDHeaders lists the response headers providers commonly use to
// expose a call identifier.
var requestIDHeaders = []string{"X-Request-Id", "Request-Id", "X-Amzn-Requestid"}

// fetch executes one provider HTTP exchange, timing the full round trip and
// folding transport failures and non-2xx statuses into the Response rather
// than returning an error.
func fetch(client HTTPDoer, req *http.Request) Response {
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return errorResponse(time.Since(start), err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	latency := time.Since(start)
	if err != nil {
		return errorResponse(latency, fmt.Errorf("read response: %w", err))
	}

	out := Response{
		Raw:        rawPayload(body),
		LatencyMS:  latency.Milliseconds(),
		TokenCount: tokens.Estimate(body),
		RequestID:  requestID(resp.Header),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		out.Err = fmt.Sprintf("%s returned status %d", req.URL.Host, resp.StatusCode)
	}
	return out
}

// rawPayload keeps the payload verbatim when it is JSON and re-encodes it as
// a JSON string otherwise, so artifacts always marshal.
func rawPayload(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return json.RawMessage(quoted)
}

func requestID(header http.Header) string {
	for _, key := range requestIDHeaders {
		if id := header.Get(key); id != "" {
			return id
		}
	}
	return ""
}

// jsonBody merges the parameter bag into a JSON request body with the query
// set under queryKey. The query wins over a same-named parameter.
func jsonBody(params Params, queryKey, query string) ([]byte, error) {
	body := make(map[string]any, len(params)+1)
	for name, value := range params {
		body[name] = value
	}
	body[queryKey] = query
	return json.Marshal(body)
}
