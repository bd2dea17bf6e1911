package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnaut/internal/platform/config"
)

func TestNewRedisClient_Success(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := config.RedisConfig{Host: mr.Host(), Port: mr.Port()}

	rdb, err := NewRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cfg := config.RedisConfig{Host: mr.Host(), Port: mr.Port()}
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
