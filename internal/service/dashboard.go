package service

import (
	"context"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/models"
)

type Stats struct {
	Products      int64 `json:"products"`
	Orders        int64 `json:"orders"`
	PendingOrders int64 `json:"pending_orders"`
	Users         int64 `json:"users"`
	Posts         int64 `json:"posts"`
}

type DashboardService struct {
	Products *backend.Table[models.Product]
	Orders   *backend.Table[models.Order]
	Profiles *backend.Table[models.UserProfile]
	Posts    *backend.Table[models.BlogPost]
}

func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.Products, err = s.Products.Count(ctx); err != nil {
		return nil, err
	}
	if st.Orders, err = s.Orders.Count(ctx); err != nil {
		return nil, err
	}
	if st.PendingOrders, err = s.Orders.Count(ctx, backend.Eq("status", models.OrderPending)); err != nil {
		return nil, err
	}
	if st.Users, err = s.Profiles.Count(ctx); err != nil {
		return nil, err
	}
	if st.Posts, err = s.Posts.Count(ctx); err != nil {
		return nil, err
	}
	return &st, nil
}
