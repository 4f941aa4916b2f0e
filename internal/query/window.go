package query

import "time"

// Runnable reports whether the query's validity window contains now.
// Both bounds are inclusive. A nil bound does not constrain that side,
// so a query with neither bound is runnable at any instant.
//
// The caller captures now once per run and reuses it for every query,
// so a single run evaluates one consistent temporal snapshot.
func Runnable(q Query, now time.Time) bool {
	if q.ValidFrom != nil && now.Before(*q.ValidFrom) {
		return false
	}
	if q.ValidUntil != nil && now.After(*q.ValidUntil) {
		return false
	}
	return true
}

// FilterRunnable returns the queries whose windows contain now, preserving
// input order.
func FilterRunnable(queries []Query, now time.Time) []Query {
	runnable := make([]Query, 0, len(queries))
	for _, q := range queries {
		if Runnable(q, now) {
			runnable = append(runnable, q)
		}
	}
	return runnable
}
