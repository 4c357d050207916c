package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/transport"
	"github.com/Olajosh80/Realms/internal/util"
)

type DivisionService struct {
	Divisions *backend.Table[models.Division]
}

func (s *DivisionService) List(ctx context.Context) ([]models.Division, error) {
	return s.Divisions.Select(ctx, backend.Query{OrderBy: "sort_order", Ascending: true})
}

func (s *DivisionService) Get(ctx context.Context, id uuid.UUID) (*models.Division, error) {
	d, err := s.Divisions.Single(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("id", id)}})
	return d, translate(err)
}

func (s *DivisionService) Create(ctx context.Context, req transport.DivisionRequest) (*models.Division, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, validation("name is required")
	}
	d := &models.Division{Name: strings.TrimSpace(*req.Name)}
	d.Slug = util.Slug(d.Name)
	if req.Slug != nil && *req.Slug != "" {
		d.Slug = *req.Slug
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Icon != nil {
		d.Icon = *req.Icon
	}
	if req.ImageURL != nil {
		d.ImageURL = *req.ImageURL
	}
	if req.Order != nil {
		d.Order = *req.Order
	}

	if err := s.Divisions.Insert(ctx, d); err != nil {
		return nil, translate(err)
	}
	return d, nil
}

func (s *DivisionService) Patch(ctx context.Context, id uuid.UUID, req transport.DivisionRequest) (*models.Division, error) {
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Slug != nil {
		patch["slug"] = *req.Slug
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Icon != nil {
		patch["icon"] = *req.Icon
	}
	if req.ImageURL != nil {
		patch["image_url"] = *req.ImageURL
	}
	if req.Order != nil {
		patch["sort_order"] = *req.Order
	}

	rows, err := s.Divisions.Update(ctx, patch, backend.Eq("id", id))
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *DivisionService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.Divisions.Delete(ctx, backend.Eq("id", id))
	if err != nil {
		return translate(err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}
