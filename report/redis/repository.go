package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/formie-filemaker/report"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of report.Repository
 * Uses a Redis Hash per report (expiring after the retention TTL),
 * a capped List as the newest-first index and a Hash of per-kind counters
 */

const (
	hashPrefix = "report"       // Hash naming: report:{report_id}
	indexKey   = "reports"      // List of report IDs, newest first
	kindsKey   = "reports:kind" // Hash of kind -> count
)

type Repository struct {
	client *redis.Client
	ttl    time.Duration
	limit  int64
}

// NewRepository creates a new Redis repository.
// Reports expire after ttl; the index keeps at most limit IDs.
func NewRepository(addr, password string, db int, ttl time.Duration, limit int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
		ttl:    ttl,
		limit:  int64(limit),
	}, nil
}

// Store writes the report hash, pushes it on the index and bumps its kind counter
func (r *Repository) Store(ctx context.Context, rep report.Report) error {
	if rep.ID == "" {
		return fmt.Errorf("report id cannot be empty")
	}
	hashKey := reportKey(rep.ID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, map[string]interface{}{
			"id":          rep.ID,
			"integration": rep.Integration,
			"operation":   rep.Operation,
			"kind":        rep.Kind,
			"message":     rep.Message,
			"text":        rep.Text,
			"location":    rep.Location,
			"auth_url":    rep.AuthURL,
			"payload":     rep.Payload,
			"response":    rep.Response,
			"created_at":  rep.CreatedAt.UnixNano(),
		})
		if r.ttl > 0 {
			pipe.Expire(ctx, hashKey, r.ttl)
		}
		pipe.LPush(ctx, indexKey, rep.ID)
		if r.limit > 0 {
			pipe.LTrim(ctx, indexKey, 0, r.limit-1)
		}
		pipe.HIncrBy(ctx, kindsKey, rep.Kind, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing report: %w", err)
	}
	return nil
}

// Get retrieves a report by ID from its hash
func (r *Repository) Get(ctx context.Context, id string) (report.Report, error) {
	data, err := r.client.HGetAll(ctx, reportKey(id)).Result()
	if err != nil {
		return report.Report{}, fmt.Errorf("getting report: %w", err)
	}
	if len(data) == 0 {
		return report.Report{}, fmt.Errorf("%w: %s", report.ErrNotFound, id)
	}
	return fromHash(data), nil
}

// List walks the index newest first, skipping reports whose hash already expired
func (r *Repository) List(ctx context.Context, limit int) ([]report.Report, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := r.client.LRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("reading report index: %w", err)
	}

	reports := make([]report.Report, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.HGetAll(ctx, reportKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("getting report: %w", err)
		}
		if len(data) == 0 {
			// Expired
			continue
		}
		reports = append(reports, fromHash(data))
	}
	return reports, nil
}

// CountByKind returns the per-kind counters
func (r *Repository) CountByKind(ctx context.Context) (map[string]int64, error) {
	data, err := r.client.HGetAll(ctx, kindsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("getting kind counters: %w", err)
	}

	counts := make(map[string]int64, len(data))
	for kind, n := range data {
		counts[kind] = parseInt64(n)
	}
	return counts, nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

func reportKey(id string) string {
	return fmt.Sprintf("%s:%s", hashPrefix, id)
}

func fromHash(data map[string]string) report.Report {
	return report.Report{
		ID:          data["id"],
		Integration: data["integration"],
		Operation:   data["operation"],
		Kind:        data["kind"],
		Message:     data["message"],
		Text:        data["text"],
		Location:    data["location"],
		AuthURL:     data["auth_url"],
		Payload:     data["payload"],
		Response:    data["response"],
		CreatedAt:   time.Unix(0, parseInt64(data["created_at"])).UTC(),
	}
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
