package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Olajosh80/Realms/internal/cart"
	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/internal/transport"
)

type CheckoutService struct {
	Orders *OrderService
}

// Checkout turns the cart into an order. The cart is cleared only once the
// order has been stored; on failure it is left untouched.
func (s *CheckoutService) Checkout(ctx context.Context, store *cart.Store, userID *uuid.UUID, req transport.CheckoutRequest) (*models.Order, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, validation("cart is empty")
	}

	orderReq := transport.CreateOrderRequest{
		UserID:          userID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderPending,
		Items:           make([]transport.OrderItemRequest, 0, len(items)),
	}
	for _, it := range items {
		orderReq.Items = append(orderReq.Items, transport.OrderItemRequest{
			ProductID:   it.ID,
			ProductName: it.Name,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	order, err := s.Orders.CreateOrder(ctx, orderReq)
	if err != nil {
		return nil, err
	}
	store.Clear(ctx)
	return order, nil
}
