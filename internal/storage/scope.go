package storage

import "fmt"

// Owner scoping is the system's sole access-control mechanism. Every
// entity query is built through these helpers so the owner_id filter is
// injected structurally rather than remembered at each call site.

// scopedSelect builds a SELECT constrained to the owner scope. extra is
// appended after the owner filter and may contain further conditions or
// an ORDER BY clause. The owner ID must be the first bind argument.
func scopedSelect(columns, table, extra string) string {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE owner_id = ?", columns, table)
	if extra != "" {
		q += " " + extra
	}
	return q
}

// scopedExec builds an UPDATE or DELETE constrained to the owner scope.
// verb is the statement up to (but not including) WHERE; extra holds any
// additional conditions. The owner ID must bind to the first WHERE
// placeholder after the SET arguments.
func scopedExec(verb, extra string) string {
	q := verb + " WHERE owner_id = ?"
	if extra != "" {
		q += " " + extra
	}
	return q
}
