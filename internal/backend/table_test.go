package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/dbtest"
	"github.com/Olajosh80/Realms/internal/models"
)

func seedDivisions(t *testing.T, tbl *backend.Table[models.Division]) {
	t.Helper()
	require.NoError(t, tbl.Insert(context.Background(),
		&models.Division{Name: "Books", Slug: "books", Order: 2},
		&models.Division{Name: "Games", Slug: "games", Order: 1},
		&models.Division{Name: "Music", Slug: "music", Order: 3},
	))
}

func TestTable_SelectOrdersAndFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tbl := backend.NewTable[models.Division](dbtest.Open(t))
	seedDivisions(t, tbl)

	rows, err := tbl.Select(ctx, backend.Query{OrderBy: "sort_order", Ascending: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"games", "books", "music"}, []string{rows[0].Slug, rows[1].Slug, rows[2].Slug})

	rows, err = tbl.Select(ctx, backend.Query{OrderBy: "sort_order"})
	require.NoError(t, err)
	assert.Equal(t, "music", rows[0].Slug)

	rows, err = tbl.Select(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("slug", "books")}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Books", rows[0].Name)
}

func TestTable_LikeIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tbl := backend.NewTable[models.Division](dbtest.Open(t))
	seedDivisions(t, tbl)

	rows, err := tbl.Select(ctx, backend.Query{Like: &backend.Like{Columns: []string{"name", "description"}, Term: "MUS"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "music", rows[0].Slug)
}

func TestTable_MaybeSingleAndSingle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tbl := backend.NewTable[models.Division](dbtest.Open(t))
	seedDivisions(t, tbl)

	row, err := tbl.MaybeSingle(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("slug", "nope")}})
	require.NoError(t, err)
	assert.Nil(t, row)

	_, err = tbl.Single(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("slug", "nope")}})
	require.ErrorIs(t, err, backend.ErrNotFound)

	row, err = tbl.Single(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("slug", "games")}})
	require.NoError(t, err)
	assert.Equal(t, 1, row.Order)
}

func TestTable_UpdateReturnsStoredRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tbl := backend.NewTable[models.Division](dbtest.Open(t))
	seedDivisions(t, tbl)

	rows, err := tbl.Update(ctx, map[string]any{"slug": "tomes", "name": "Tomes"}, backend.Eq("slug", "books"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "tomes", rows[0].Slug)
	assert.Equal(t, "Tomes", rows[0].Name)

	rows, err = tbl.Update(ctx, map[string]any{"name": "x"}, backend.Eq("slug", "missing"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = tbl.Update(ctx, map[string]any{"name": "x"})
	require.ErrorIs(t, err, backend.ErrMissingFilter)
}

func TestTable_DeleteAndCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tbl := backend.NewTable[models.Division](dbtest.Open(t))
	seedDivisions(t, tbl)

	removed, err := tbl.Delete(ctx, backend.Eq("slug", "music"))
	require.NoError(t, err)
	require.Len(t, removed, 1)

	n, err := tbl.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = tbl.Delete(ctx)
	require.ErrorIs(t, err, backend.ErrMissingFilter)
}

func TestTable_PreloadsAssociations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gdb := dbtest.Open(t)
	divs := backend.NewTable[models.Division](gdb)
	products := backend.NewTable[models.Product](gdb)

	div := &models.Division{Name: "Games", Slug: "games"}
	require.NoError(t, divs.Insert(ctx, div))
	require.NoError(t, products.Insert(ctx, &models.Product{
		Name: "Dice", Slug: "dice", Price: 5, DivisionID: &div.ID, Tags: models.StringList{"rpg"},
	}))

	rows, err := products.Select(ctx, backend.Query{Preload: []string{"Division"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Division)
	assert.Equal(t, "games", rows[0].Division.Slug)
	assert.Equal(t, models.StringList{"rpg"}, rows[0].Tags)
}
