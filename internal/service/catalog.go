package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/events"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/search"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/internal/util"
	"github.com/Olajosh80/Realms/pkg/logging"
)

type CatalogService struct {
	Products *backend.Table[models.Product]
	Search   search.Engine
	Events   events.Publisher
}

type ProductFilter struct {
	DivisionID *uuid.UUID
	Category   string
	Featured   *bool
	Offset     int
	Limit      int
}

func (s *CatalogService) ListProducts(ctx context.Context, f ProductFilter) (int64, []models.Product, error) {
	q := backend.Query{
		OrderBy: "created_at",
		Preload: []string{"Division"},
		Offset:  f.Offset,
		Limit:   f.Limit,
	}
	if f.DivisionID != nil {
		q.Filters = append(q.Filters, backend.Eq("division_id", *f.DivisionID))
	}
	if f.Category != "" {
		q.Filters = append(q.Filters, backend.Eq("category", f.Category))
	}
	if f.Featured != nil {
		q.Filters = append(q.Filters, backend.Eq("featured", *f.Featured))
	}

	total, err := s.Products.Total(ctx, q)
	if err != nil {
		return 0, nil, err
	}
	items, err := s.Products.Select(ctx, q)
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Products.Single(ctx, backend.Query{
		Filters: []backend.Filter{backend.Eq("id", id)},
		Preload: []string{"Division"},
	})
	return p, translate(err)
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := s.Products.Single(ctx, backend.Query{
		Filters: []backend.Filter{backend.Eq("slug", slug)},
		Preload: []string{"Division"},
	})
	return p, translate(err)
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	return s.Search.Search(ctx, q, offset, limit)
}

// CompareAtPrice is the pre-discount price shown next to price.
func CompareAtPrice(price float64, discount *float64) *float64 {
	if discount == nil || *discount == 0 {
		return nil
	}
	v := price * (1 + *discount/100)
	return &v
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validation("name is required")
	}
	if req.Price < 0 {
		return nil, validation("price cannot be negative")
	}
	status := req.Status
	if status == "" {
		status = "Active"
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	p := &models.Product{
		Name:           name,
		Slug:           util.Slug(name),
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: CompareAtPrice(req.Price, req.Discount),
		Images:         images,
		Category:       req.Category,
		DivisionID:     req.DivisionID,
		InStock:        status == "Active",
		Featured:       req.Featured,
		Tags:           tags,
	}
	if err := s.Products.Insert(ctx, p); err != nil {
		return nil, translate(err)
	}

	s.index(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), events.New("product_created", p.ID.String(), p))
	return p, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	patch := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validation("name cannot be empty")
		}
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, validation("price cannot be negative")
		}
		patch["price"] = *req.Price
	}
	if req.CompareAtPrice != nil {
		patch["compare_at_price"] = *req.CompareAtPrice
	}
	if req.Images != nil {
		patch["images"] = models.StringList(*req.Images)
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.DivisionID != nil {
		patch["division_id"] = *req.DivisionID
	}
	if req.InStock != nil {
		patch["in_stock"] = *req.InStock
	}
	if req.Featured != nil {
		patch["featured"] = *req.Featured
	}
	if req.Tags != nil {
		patch["tags"] = models.StringList(*req.Tags)
	}

	rows, err := s.Products.Update(ctx, patch, backend.Eq("id", id))
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	p := &rows[0]

	s.index(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), events.New("product_updated", p.ID.String(), patch))
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	rows, err := s.Products.Delete(ctx, backend.Eq("id", id))
	if err != nil {
		return translate(err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}

	if err := s.Search.Remove(ctx, id.String()); err != nil {
		logging.FromContext(ctx).Error("search_remove_failed", "product_id", id, "error", err)
	}
	publish(ctx, s.Events, events.TopicProducts, id.String(), events.New("product_deleted", id.String(), nil))
	return nil
}

func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	if err := s.Search.Index(ctx, p); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "product_id", p.ID, "error", err)
	}
}
