package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/Olajosh80/Realms/internal/backend"
	"github.com/Olajosh80/Realms/internal/events"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/transport"
)

type OrderService struct {
	Orders *backend.Table[models.Order]
	Events events.Publisher
}

type OrderFilter struct {
	UserID *uuid.UUID
	Status string
}

// CreateOrder inserts the order and its items together. When items are given
// the total is their sum; otherwise the requested total is kept.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	status := req.Status
	if status == "" {
		status = models.OrderPending
	}
	if !models.ValidOrderStatus(status) {
		return nil, validation("unknown order status %q", status)
	}
	if req.CustomerEmail != "" {
		if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
			return nil, validation("invalid customer email")
		}
	}

	order := &models.Order{
		UserID:          req.UserID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		ShippingAddress: req.ShippingAddress,
		Status:          status,
		Total:           req.Total,
	}

	if len(req.Items) > 0 {
		var total float64
		order.Items = make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			if it.ProductID == "" {
				return nil, validation("product_id required")
			}
			if it.Quantity <= 0 {
				return nil, validation("quantity must be > 0")
			}
			if it.Price < 0 {
				return nil, validation("price must be >= 0")
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				Price:       it.Price,
			})
			total += it.Price * float64(it.Quantity)
		}
		order.Total = total
	}
	if order.Total < 0 {
		return nil, validation("total must be >= 0")
	}

	if err := s.Orders.Insert(ctx, order); err != nil {
		return nil, translate(err)
	}

	publish(ctx, s.Events, events.TopicOrders, order.ID.String(), events.New("order_created", order.ID.String(), map[string]any{
		"total":  order.Total,
		"items":  len(order.Items),
		"status": order.Status,
	}))
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := backend.Query{OrderBy: "created_at", Preload: []string{"Items"}}
	if f.UserID != nil {
		q.Filters = append(q.Filters, backend.Eq("user_id", *f.UserID))
	}
	if f.Status != "" && f.Status != "all" {
		q.Filters = append(q.Filters, backend.Eq("status", f.Status))
	}
	return s.Orders.Select(ctx, q)
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.Orders.Single(ctx, backend.Query{
		Filters: []backend.Filter{backend.Eq("id", id)},
		Preload: []string{"Items"},
	})
	return o, translate(err)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, validation("unknown order status %q", status)
	}
	rows, err := s.Orders.Update(ctx, map[string]any{"status": status}, backend.Eq("id", id))
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	publish(ctx, s.Events, events.TopicOrders, id.String(), events.New("order_status_changed", id.String(), map[string]any{"status": status}))
	return &rows[0], nil
}
