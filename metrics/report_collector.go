package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/formie-filemaker/report"
)

// ReportCollector implements Collector over a report store
type ReportCollector struct {
	reports report.Reader
	now     func() time.Time
}

// NewReportCollector creates a collector reading from the given report store
func NewReportCollector(reports report.Reader) *ReportCollector {
	return &ReportCollector{
		reports: reports,
		now:     time.Now,
	}
}

// Collect gathers all metrics from the report store
func (c *ReportCollector) Collect(ctx context.Context) (Metrics, error) {
	counts, err := c.GetReportCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting report counts: %w", err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return Metrics{
		ReportCounts: counts,
		Total:        total,
		Timestamp:    c.now(),
	}, nil
}

// GetReportCounts returns the count of stored reports by error kind
func (c *ReportCollector) GetReportCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := c.reports.CountByKind(ctx)
	if err != nil {
		return nil, err
	}
	return counts, nil
}
