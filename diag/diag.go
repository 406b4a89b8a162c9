// Package diag collects per-item outcomes of batch-wide diagnostic work,
// such as rendering one attention plot per example.
//
// A single malformed example must not abort the whole batch, but its
// failure must not vanish either: callers run the per-item work through
// ForEach and log the aggregated failures afterwards. The diagnostic work
// itself (plotting, serialization) stays outside this core.
package diag

import (
	"fmt"
	"strings"
)

// ItemError is one failed item with its reason.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// ItemErrors aggregates the failures of one batch-wide pass.
type ItemErrors []ItemError

// ForEach runs fn for every index, continuing past failures, and returns
// the collected failures in input order. An empty result means every item
// succeeded.
func ForEach(indices []int, fn func(index int) error) ItemErrors {
	var failures ItemErrors
	for _, idx := range indices {
		if err := fn(idx); err != nil {
			failures = append(failures, ItemError{Index: idx, Err: err})
		}
	}
	return failures
}

// Failed reports whether any item failed.
func (e ItemErrors) Failed() bool {
	return len(e) > 0
}

// Summary renders one aggregate log line, or "" when nothing failed.
func (e ItemErrors) Summary() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, len(e))
	for i, item := range e {
		parts[i] = item.Error()
	}
	return fmt.Sprintf("%d item(s) failed: %s", len(e), strings.Join(parts, "; "))
}
