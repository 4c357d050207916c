package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/dbtest"
	"github.com/Olajosh80/Realms/internal/events"
	"github.com/Olajosh80/Realms/internal/models"
)

type recordingEngine struct {
	mu      sync.Mutex
	indexed []string
	removed []string
}

func (r *recordingEngine) Search(context.Context, string, int, int) (int64, []models.Product, error) {
	return 0, nil, nil
}

func (r *recordingEngine) Index(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, p.ID.String())
	return nil
}

func (r *recordingEngine) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
	return nil
}

type env struct {
	events    *events.Recorder
	engine    *recordingEngine
	catalog   *CatalogService
	divisions *DivisionService
	orders    *OrderService
	blog      *BlogService
	users     *UserService
	contact   *ContactService
	checkout  *CheckoutService
	dashboard *DashboardService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gdb := dbtest.Open(t)
	rec := &events.Recorder{}
	eng := &recordingEngine{}

	products := backend.NewTable[models.Product](gdb)
	orders := backend.NewTable[models.Order](gdb)
	profiles := backend.NewTable[models.UserProfile](gdb)
	posts := backend.NewTable[models.BlogPost](gdb)

	orderSvc := &OrderService{Orders: orders, Events: rec}
	return &env{
		events:    rec,
		engine:    eng,
		catalog:   &CatalogService{Products: products, Search: eng, Events: rec},
		divisions: &DivisionService{Divisions: backend.NewTable[models.Division](gdb)},
		orders:    orderSvc,
		blog:      &BlogService{Posts: posts},
		users:     &UserService{Profiles: profiles, Events: rec},
		contact: &ContactService{
			Submissions: backend.NewTable[models.ContactSubmission](gdb),
			Subscribers: backend.NewTable[models.NewsletterSubscriber](gdb),
			Events:      rec,
		},
		checkout:  &CheckoutService{Orders: orderSvc},
		dashboard: &DashboardService{Products: products, Orders: orders, Profiles: profiles, Posts: posts},
	}
}

func ptr[T any](v T) *T { return &v }
