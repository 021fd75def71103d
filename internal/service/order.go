package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepk/magshop/internal/logging"
	"github.com/sandeepk/magshop/internal/models"
	"github.com/sandeepk/magshop/internal/validation"
)

var ErrInvalidStatus = errors.New("invalid order status")

type OrderRepo interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status string) (int64, error)
}

type ProductGetter interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
}

// EventPublisher is satisfied by mykafka.Producer. Publishing is
// best-effort: order placement never fails because the broker is down.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type OrderService struct {
	Orders   OrderRepo
	Products ProductGetter
	Events   EventPublisher
}

func NewOrderService(orders OrderRepo, products ProductGetter, events EventPublisher) *OrderService {
	return &OrderService{Orders: orders, Products: products, Events: events}
}

// PlaceOrder prices, validates and persists an order submission. The only
// hard failure is an absent product; malformed shipping data still gets
// persisted, with status REJECTED, so the attempt leaves a record.
func (s *OrderService) PlaceOrder(ctx context.Context, order *models.Order, user *models.User, productID uint) (*models.Order, error) {
	product, err := s.Products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	order.UserID = user.ID
	order.ProductID = product.ID

	if order.Quantity < 1 {
		order.Quantity = 1
	}
	// raw multiplication, no currency rounding
	order.TotalPrice = product.Price * float64(order.Quantity)

	if errs := validation.Order(order); errs == "" {
		order.Status = models.StatusAccepted
	} else {
		order.Status = models.StatusRejected
	}

	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}

	saved, err := s.Orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "order_events", fmt.Sprint(saved.ID), map[string]any{
		"type":      "order_placed",
		"orderID":   saved.ID,
		"userID":    saved.UserID,
		"productID": saved.ProductID,
		"status":    saved.Status,
	})

	return saved, nil
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, user *models.User) ([]models.Order, error) {
	return s.Orders.ListOrdersByUser(ctx, user.ID)
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.Orders.ListOrders(ctx)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.Orders.GetOrder(ctx, id)
}

// UpdateOrderStatus sets an order's status. The value must be one of
// the three known states; free-text statuses are not accepted.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	switch status {
	case models.StatusPending, models.StatusAccepted, models.StatusRejected:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	order.Status = status
	if err := s.Orders.SaveOrder(ctx, order); err != nil {
		return err
	}

	s.publish(ctx, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  status,
	})
	return nil
}

func (s *OrderService) GetOrderCount(ctx context.Context) (int64, error) {
	return s.Orders.CountOrders(ctx)
}

func (s *OrderService) GetOrderCountByStatus(ctx context.Context, status string) (int64, error) {
	return s.Orders.CountOrdersByStatus(ctx, status)
}

func (s *OrderService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
