//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/formie-filemaker/report"
	"github.com/marcelsud/formie-filemaker/report/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer holds the Redis testcontainer and connection details
type RedisContainer struct {
	Container *testcontainersredis.RedisContainer
	Addr      string
}

// SetupRedisContainer creates and starts a Redis testcontainer
func SetupRedisContainer(t *testing.T, ctx context.Context) (*RedisContainer, func()) {
	t.Helper()

	redisContainer, err := testcontainersredis.Run(ctx,
		"redis:7-alpine",
		testcontainersredis.WithLogLevel(testcontainersredis.LogLevelVerbose),
	)
	require.NoError(t, err, "failed to start Redis container")

	addr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")
	addr = strings.TrimPrefix(addr, "redis://")

	rc := &RedisContainer{
		Container: redisContainer,
		Addr:      addr,
	}

	cleanup := func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	}

	return rc, cleanup
}

// CreateTestRepository creates a Redis repository connected to the test container
func CreateTestRepository(t *testing.T, addr string, ttl time.Duration, limit int) *redis.Repository {
	t.Helper()

	repo, err := redis.NewRepository(addr, "", 0, ttl, limit)
	require.NoError(t, err, "failed to create Redis repository")

	return repo
}

// NewTestReport builds a report with a unique ID
func NewTestReport(t *testing.T, index int, kind string) report.Report {
	t.Helper()
	return report.Report{
		ID:          fmt.Sprintf("test-report-%d-%d", index, time.Now().UnixNano()),
		Integration: "filemaker",
		Operation:   "send_payload",
		Kind:        kind,
		Message:     "sending payload: unexpected status 500",
		Text:        "API error",
		Location:    "dispatcher.go:88",
		Payload:     `{"fieldData":{"webhook_payload":"{}"}}`,
		Response:    `{"messages":[{"code":"500"}]}`,
		CreatedAt:   time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC).Add(time.Duration(index) * time.Second),
	}
}

// GetKeyTTL returns the TTL of a Redis key in seconds
func GetKeyTTL(t *testing.T, addr string, key string) int64 {
	t.Helper()

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()

	ttl, err := client.TTL(context.Background(), key).Result()
	require.NoError(t, err)

	return int64(ttl.Seconds())
}
