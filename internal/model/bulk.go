package model

import "github.com/google/uuid"

// BulkResult aggregates the outcome of a fan-out. One recipient's failure
// never aborts the others; it only shows up here.
type BulkResult struct {
	Total      int         `json:"total_requests"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	FailedIDs  []uuid.UUID `json:"failed_ids"`
	Errors     []string    `json:"errors"`
}

// CategoryCount is a per-category slice of the stats view.
type CategoryCount struct {
	Category Category `json:"category"`
	Total    int      `json:"total"`
	Unread   int      `json:"unread"`
}

// Stats summarizes a recipient's notifications.
type Stats struct {
	Total      int             `json:"total"`
	Unread     int             `json:"unread"`
	ByCategory []CategoryCount `json:"by_category"`
}
