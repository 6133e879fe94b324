// Package entry defines the time entry records the reconciliation engine
// consumes. Entries are immutable snapshots supplied by the tracking
// service; the engine only reads them.
package entry

import "time"

// Entry is a single time entry.
//
// Duration holds the raw encoding from the tracking service. A nil Duration
// means the timer is still running; such entries contribute zero elapsed
// time rather than being treated as missing data.
type Entry struct {
	ID          string    `json:"id"`
	Start       time.Time `json:"start"`
	Duration    *string   `json:"duration"`
	ProjectID   string    `json:"project_id"`
	Description string    `json:"description"`
}

// ProjectLookup maps project identifiers to display names. It covers only
// non-archived projects; resolving an absent identifier is the caller's
// error to surface.
type ProjectLookup map[string]string
