package metrics

import (
	"context"
	"time"
)

// Metrics is a snapshot of the integration's stored failures.
type Metrics struct {
	// ReportCounts maps error kind to the number of reports of that kind
	ReportCounts map[string]int64 `json:"report_counts"`

	// Total is the sum of ReportCounts
	Total int64 `json:"total"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector gathers metrics that live outside the process, such as stored reports.
type Collector interface {
	// Collect gathers a full snapshot
	Collect(ctx context.Context) (Metrics, error)

	// GetReportCounts returns the count of reports by error kind
	GetReportCounts(ctx context.Context) (map[string]int64, error)
}
