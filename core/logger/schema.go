package logger

import "strings"

// fieldOrder lists the keys written first, in this order. Other keys follow
// alphabetically.
var fieldOrder = []string{
	"ts", "level", "component", "event", "status",
	"rid", "rid_full", "ts_unix_nano",
	"update_id", "user_id", "chat_id", "chat_type",
	"handler", "kind", "cb_key", "outcome", "duration_ms", "messages", "kb",
	"class", "subject", "year", "query", "results", "entries", "source",
	"action", "result", "url", "http_code",
	"err", "err_code", "cause", "attempts", "next_in_ms",
}

var fieldRank = func() map[string]int {
	m := make(map[string]int, len(fieldOrder))
	for i, k := range fieldOrder {
		m[k] = i
	}
	return m
}()

// Handler summaries and sender results use these values; anything else in
// "outcome" is dropped so dashboards keep a closed set.
var outcomes = map[string]bool{
	"ok":           true,
	"fail":         true,
	"cancelled":    true,
	"rate_limited": true,
}

func cleanStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cleanOutcome(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, outcomes[s]
}
