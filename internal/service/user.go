package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/events"
	"github.com/Olajosh80/Realms/internal/models"
)

type UserService struct {
	Profiles *backend.Table[models.UserProfile]
	Events   events.Publisher
}

// Profile returns nil without an error when userID has no profile.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	return s.Profiles.MaybeSingle(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("id", userID)}})
}

// RoleOf returns "" without an error when userID has no profile.
func (s *UserService) RoleOf(ctx context.Context, userID uuid.UUID) (string, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil || p == nil {
		return "", err
	}
	return p.Role, nil
}

func (s *UserService) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	return s.Profiles.Select(ctx, backend.Query{OrderBy: "created_at"})
}

func (s *UserService) UpdateRole(ctx context.Context, userID uuid.UUID, role string) (*models.UserProfile, error) {
	if !models.ValidRole(role) {
		return nil, validation("role must be one of customer, manager, admin")
	}
	rows, err := s.Profiles.Update(ctx, map[string]any{"role": role}, backend.Eq("id", userID))
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	publish(ctx, s.Events, events.TopicUsers, userID.String(), events.New("user_role_changed", userID.String(), map[string]any{"role": role}))
	return &rows[0], nil
}

func (s *UserService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	rows, err := s.Profiles.Delete(ctx, backend.Eq("id", userID))
	if err != nil {
		return translate(err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}

	publish(ctx, s.Events, events.TopicUsers, userID.String(), events.New("user_deleted", userID.String(), nil))
	return nil
}

// HomeFor is where a freshly signed-in user lands.
func HomeFor(role string) string {
	if role == models.RoleAdmin || role == models.RoleManager {
		return "/admin"
	}
	return "/"
}
