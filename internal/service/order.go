package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/repository"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
	"github.com/ranaIslam01/server/pkg/middleware"
)

// OrderService implements order placement and retrieval. Order items
// carry point-in-time snapshots of product name, image and price, so a
// later catalog change does not rewrite order history.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// OrderItemInput identifies one product and quantity in a new order.
type OrderItemInput struct {
	ProductID primitive.ObjectID
	Qty       int
}

// CreateOrderInput holds the parameters for placing an order.
type CreateOrderInput struct {
	UserID          primitive.ObjectID
	Items           []OrderItemInput
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
}

// Create places an order for the given user. Each item is priced from
// the current catalog entry at placement time.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	var itemsPrice float64
	for _, item := range input.Items {
		if item.Qty < 1 {
			return nil, apperrors.InvalidInput("item quantity must be at least 1")
		}
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product for order: %w", err)
		}
		items = append(items, domain.OrderItem{
			Name:    product.Name,
			Qty:     item.Qty,
			Image:   product.Image,
			Price:   product.Price,
			Product: product.ID,
		})
		itemsPrice += product.Price * float64(item.Qty)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		User:            input.UserID,
		OrderItems:      items,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		ItemsPrice:      itemsPrice,
		TaxPrice:        0,
		ShippingPrice:   0,
		TotalPrice:      itemsPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID.Hex()),
		slog.String("user_id", input.UserID.Hex()),
		slog.Int("items", len(items)),
		slog.Float64("total", order.TotalPrice),
	)

	return order, nil
}

// Get retrieves an order visible to the requester. Non-admins may only
// see their own orders; anyone else's order looks like it does not
// exist.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID, requester middleware.Identity) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if !requester.IsAdmin && order.User.Hex() != requester.UserID {
		return nil, apperrors.NotFound("order", id.Hex())
	}

	return order, nil
}

// ListMine returns the requester's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
