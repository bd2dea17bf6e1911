package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// setupMiniredis starts an in-process Redis for behavioural tests.
func setupMiniredis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

func TestNewRedisStore_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "cache"},
		{"negative ttl uses default", -1 * time.Minute, "", 5 * time.Minute, "cache"},
		{"custom values preserved", 10 * time.Minute, "users", 10 * time.Minute, "users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewRedisStore(nil, tt.ttl, tt.namespace)
			assert.Equal(t, tt.expectedTTL, s.ttl)
			assert.Equal(t, tt.expectedNamespace, s.namespace)
		})
	}
}

func TestRedisStore_GetHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:user_1").SetVal(`{"id":1,"name":"Jane"}`)

	s := NewRedisStore(rdb, 5*time.Minute, "users")
	got, ok := GetJSON[cachedUser](context.Background(), s, "user_1")

	assert.True(t, ok)
	assert.Equal(t, cachedUser{ID: 1, Name: "Jane"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:user_1").RedisNil()

	s := NewRedisStore(rdb, 5*time.Minute, "users")
	_, ok := s.Get(context.Background(), "user_1")

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetErrorIsMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:user_1").SetErr(errors.New("connection refused"))

	s := NewRedisStore(rdb, 5*time.Minute, "users")
	_, ok := s.Get(context.Background(), "user_1")

	assert.False(t, ok)
}

func TestRedisStore_CorruptedEntryIsDeleted(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:user_1").SetVal("invalid json")
	mock.ExpectDel("users:user_1").SetVal(1)

	s := NewRedisStore(rdb, 5*time.Minute, "users")
	_, ok := GetJSON[cachedUser](context.Background(), s, "user_1")

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_SetUsesTTL(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectSet("jobs:job_1", []byte(`{"id":1}`), 300*time.Second).SetVal("OK")

	s := NewRedisStore(rdb, 300*time.Second, "jobs")
	s.Set(context.Background(), "job_1", []byte(`{"id":1}`))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_DeleteMultiple(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("users:user_1", "users:user_clerk_abc", "users:user_email_a@b.c").SetVal(3)

	s := NewRedisStore(rdb, 5*time.Minute, "users")
	s.Delete(context.Background(), "user_1", "user_clerk_abc", "user_email_a@b.c")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_FlushScansNamespace(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "jobs:*", 200).SetVal([]string{"jobs:job_1", "jobs:search_go_1_10"}, 7)
	mock.ExpectDel("jobs:job_1", "jobs:search_go_1_10").SetVal(2)
	mock.ExpectScan(7, "jobs:*", 200).SetVal([]string{}, 0)

	s := NewRedisStore(rdb, 5*time.Minute, "jobs")
	s.Flush(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_FlushLeavesOtherNamespaces(t *testing.T) {
	t.Parallel()

	client, mr := setupMiniredis(t)
	ctx := context.Background()

	jobs := NewRedisStore(client, 5*time.Minute, "jobs")
	users := NewRedisStore(client, 5*time.Minute, "users")

	jobs.Set(ctx, "job_1", []byte("a"))
	jobs.Set(ctx, "search_go developer_1_10", []byte("b"))
	users.Set(ctx, "user_1", []byte("c"))

	jobs.Flush(ctx)

	_, ok := jobs.Get(ctx, "job_1")
	assert.False(t, ok)
	_, ok = jobs.Get(ctx, "search_go developer_1_10")
	assert.False(t, ok)

	got, ok := users.Get(ctx, "user_1")
	assert.True(t, ok)
	assert.Equal(t, []byte("c"), got)
	assert.True(t, mr.Exists("users:user_1"))
}

func TestRedisStore_EntriesExpire(t *testing.T) {
	t.Parallel()

	client, mr := setupMiniredis(t)
	ctx := context.Background()

	s := NewRedisStore(client, time.Minute, "users")
	s.Set(ctx, "user_1", []byte("x"))

	mr.FastForward(2 * time.Minute)

	_, ok := s.Get(ctx, "user_1")
	assert.False(t, ok)
}
