package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/events"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/transport"
)

type ContactService struct {
	Submissions *backend.Table[models.ContactSubmission]
	Subscribers *backend.Table[models.NewsletterSubscriber]
	Events      events.Publisher
}

func validateContact(req transport.ContactRequest) error {
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(req.Name)) < 2:
		return validation("Name must be at least 2 characters")
	case !validEmail(req.Email):
		return validation("Invalid email address")
	case utf8.RuneCountInString(strings.TrimSpace(req.Subject)) < 5:
		return validation("Subject must be at least 5 characters")
	case utf8.RuneCountInString(strings.TrimSpace(req.Message)) < 10:
		return validation("Message must be at least 10 characters")
	}
	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil && addr.Name == "" && strings.Contains(addr.Address, "@")
}

func (s *ContactService) Submit(ctx context.Context, req transport.ContactRequest) (*models.ContactSubmission, error) {
	if err := validateContact(req); err != nil {
		return nil, err
	}
	sub := &models.ContactSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   req.Phone,
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.Submissions.Insert(ctx, sub); err != nil {
		return nil, translate(err)
	}

	publish(ctx, s.Events, events.TopicContact, sub.ID.String(), events.New("contact_submitted", sub.ID.String(), map[string]any{
		"email":   sub.Email,
		"subject": sub.Subject,
	}))
	return sub, nil
}

func (s *ContactService) ListSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return s.Submissions.Select(ctx, backend.Query{OrderBy: "created_at"})
}

// Subscribe is idempotent per email; a previous unsubscribe is reversed.
func (s *ContactService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return nil, validation("Invalid email address")
	}

	existing, err := s.Subscribers.MaybeSingle(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("email", email)}})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Subscribed {
			return existing, nil
		}
		rows, err := s.Subscribers.Update(ctx, map[string]any{"subscribed": true}, backend.Eq("id", existing.ID))
		if err != nil {
			return nil, translate(err)
		}
		if len(rows) == 0 {
			return nil, ErrNotFound
		}
		return &rows[0], nil
	}

	sub := &models.NewsletterSubscriber{Email: email, Subscribed: true}
	if err := s.Subscribers.Insert(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.Subscribers.Single(ctx, backend.Query{Filters: []backend.Filter{backend.Eq("email", email)}})
		}
		return nil, err
	}
	return sub, nil
}
