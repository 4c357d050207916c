// Package search answers free-text product queries.
package search

import (
	"context"
	"strings"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/models"
)

type Engine interface {
	Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error)
	Index(ctx context.Context, p *models.Product) error
	Remove(ctx context.Context, id string) error
}

// Backend searches the products table directly; Index and Remove are no-ops
// since the table is the index.
type Backend struct {
	Products *backend.Table[models.Product]
}

func (b *Backend) Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, []models.Product{}, nil
	}
	query := backend.Query{
		Like:    &backend.Like{Columns: []string{"name", "description"}, Term: q},
		OrderBy: "created_at",
		Preload: []string{"Division"},
		Limit:   size,
		Offset:  from,
	}
	total, err := b.Products.Total(ctx, query)
	if err != nil {
		return 0, nil, err
	}
	items, err := b.Products.Select(ctx, query)
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (b *Backend) Index(context.Context, *models.Product) error { return nil }
func (b *Backend) Remove(context.Context, string) error         { return nil }
