package database

import (
	"context"
	"errors"
	"testing"

	"niche-workers/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_Check(t *testing.T) {
	h := NewHealth()
	assert.NoError(t, h.Check(context.Background()))

	h.Register("redis", PingFunc(func(context.Context) error { return nil }))
	h.Register("postgres", PingFunc(func(context.Context) error { return errors.New("connection refused") }))

	err := h.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: connection refused")
	assert.NotContains(t, err.Error(), "redis")
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(context.Background(), config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedis(context.Background(), config.RedisConfig{Address: addr})
	assert.Error(t, err)
}
