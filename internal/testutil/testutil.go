// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/penshort/userapi/internal/migrate"
	"github.com/penshort/userapi/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetUsersSchema drops and recreates the users schema from the embedded migrations.
func ResetUsersSchema(ctx context.Context, pool *pgxpool.Pool) error {
	downSQL, err := migrate.DownSQL()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, downSQL); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := migrate.UpSQL()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, upSQL); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// FlushRedis clears the Redis database used by tests.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// NewTestUser returns a valid user whose email is unique per suffix.
func NewTestUser(suffix string) *model.User {
	return model.NewUser("Test User "+suffix, "user-"+suffix+"@example.com")
}

// UniqueSuffix returns a lowercase ULID for building unique test values.
func UniqueSuffix() string {
	return strings.ToLower(ulid.Make().String())
}
