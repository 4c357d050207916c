package kv

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := "cart:" + uuid.NewString()

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, key, `[{"id":"a"}]`))
	v, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, s.Set(ctx, key, `[]`))
	v, _, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, key))
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exercise(t, NewMemory())
}

func TestFile(t *testing.T) {
	t.Parallel()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	exercise(t, f)
}

func TestFile_SurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	f1, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f1.Set(ctx, "beyond-realms-cart", `[1]`))

	f2, err := NewFile(dir)
	require.NoError(t, err)
	v, ok, err := f2.Get(ctx, "beyond-realms-cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1]`, v)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set; skipping redis test")
	}
	r, err := NewRedis(context.Background(), addr, 0, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	exercise(t, r)
}
