package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/marcelsud/formie-filemaker/report"
)

/* In-memory implementation of report.Repository
 * Keeps the newest reports in a fixed size ring; used when Redis is not configured
 */

const defaultLimit = 500

type Repository struct {
	mu     sync.RWMutex
	ring   []report.Report
	next   int
	size   int
	counts map[string]int64
}

// NewRepository creates a ring holding at most limit reports
func NewRepository(limit int) *Repository {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Repository{
		ring:   make([]report.Report, limit),
		counts: make(map[string]int64),
	}
}

// Store adds a report, evicting the oldest one when the ring is full
func (r *Repository) Store(ctx context.Context, rep report.Report) error {
	if rep.ID == "" {
		return fmt.Errorf("report id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ring[r.next] = rep
	r.next = (r.next + 1) % len(r.ring)
	if r.size < len(r.ring) {
		r.size++
	}
	r.counts[rep.Kind]++
	return nil
}

// Get retrieves a retained report by ID
func (r *Repository) Get(ctx context.Context, id string) (report.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := 0; i < r.size; i++ {
		if rep := r.at(i); rep.ID == id {
			return rep, nil
		}
	}
	return report.Report{}, fmt.Errorf("%w: %s", report.ErrNotFound, id)
}

// List returns retained reports newest first
func (r *Repository) List(ctx context.Context, limit int) ([]report.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.size
	if limit > 0 && limit < n {
		n = limit
	}
	reports := make([]report.Report, 0, n)
	for i := 0; i < n; i++ {
		reports = append(reports, r.at(i))
	}
	return reports, nil
}

// CountByKind returns how many reports of each kind were stored since start
func (r *Repository) CountByKind(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64, len(r.counts))
	for kind, n := range r.counts {
		counts[kind] = n
	}
	return counts, nil
}

// Close is a no-op
func (r *Repository) Close(ctx context.Context) error {
	return nil
}

// at returns the i-th newest report. Callers hold the lock.
func (r *Repository) at(i int) report.Report {
	idx := (r.next - 1 - i + len(r.ring)) % len(r.ring)
	return r.ring[idx]
}
