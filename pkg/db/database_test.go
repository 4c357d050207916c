package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), DriverPostgres, "")
	require.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpen_SQLiteMemory(t *testing.T) {
	t.Parallel()

	gdb, err := Open(context.Background(), DriverSQLite, "file:dbtest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	var one int
	require.NoError(t, gdb.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
