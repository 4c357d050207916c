package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olajosh80/Realms/internal/transport"
)

func TestDivisions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.divisions.Create(ctx, transport.DivisionRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	books, err := e.divisions.Create(ctx, transport.DivisionRequest{Name: ptr("Rare Books"), Order: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "rare-books", books.Slug)

	games, err := e.divisions.Create(ctx, transport.DivisionRequest{Name: ptr("Games"), Slug: ptr("tabletop"), Order: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, "tabletop", games.Slug)

	list, err := e.divisions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, games.ID, list[0].ID)

	patched, err := e.divisions.Patch(ctx, books.ID, transport.DivisionRequest{Order: ptr(0), Icon: ptr("book")})
	require.NoError(t, err)
	assert.Equal(t, 0, patched.Order)
	assert.Equal(t, "book", patched.Icon)

	list, err = e.divisions.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, books.ID, list[0].ID)

	got, err := e.divisions.Get(ctx, games.ID)
	require.NoError(t, err)
	assert.Equal(t, "Games", got.Name)

	_, err = e.divisions.Patch(ctx, uuid.New(), transport.DivisionRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, e.divisions.Delete(ctx, games.ID))
	assert.ErrorIs(t, e.divisions.Delete(ctx, games.ID), ErrNotFound)
	_, err = e.divisions.Get(ctx, games.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
