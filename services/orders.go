package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
)

// OrderService keeps a user's toque balance in lockstep with their orders:
// creating an order credits numberOfToques, deleting it takes the same
// amount back.
type OrderService struct {
	orders   OrderStore
	balances UserBalances
}

func NewOrderService(orders OrderStore, balances UserBalances) *OrderService {
	return &OrderService{orders: orders, balances: balances}
}

// Create records an order for userID and credits the balance.
func (s *OrderService) Create(ctx context.Context, userID primitive.ObjectID, numberOfToques int) (*models.Order, error) {
	order := &models.Order{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		NumberOfToques: numberOfToques,
		CreatedAt:      time.Now(),
	}

	ok, err := s.balances.IncToques(ctx, userID, numberOfToques)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	if err := s.orders.InsertOrder(ctx, order); err != nil {
		// Take the credit back so the balance stays equal to the sum of
		// live orders.
		s.balances.IncToques(ctx, userID, -numberOfToques)
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListOrders(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListOrdersByUser(ctx, userID)
}

// Delete cancels an order and debits the owner's balance. Owner or admin
// only.
func (s *OrderService) Delete(ctx context.Context, p Principal, orderID primitive.ObjectID) error {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if !p.CanManage(order.UserID) {
		return ErrAccessDenied
	}

	ok, err := s.orders.DeleteOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}

	if _, err := s.balances.IncToques(ctx, order.UserID, -order.NumberOfToques); err != nil {
		return err
	}
	return nil
}

// DeleteForUser removes every order of a deleted user. The balance is not
// adjusted: the user document is gone.
func (s *OrderService) DeleteForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.orders.DeleteOrdersByUser(ctx, userID)
}
