package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
)

// OrderRepository is an in-memory implementation of repository.OrderRepository.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]domain.Order
}

// NewOrderRepository creates a new in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[primitive.ObjectID]domain.Order),
	}
}

// Create inserts a new order.
func (r *OrderRepository) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders[o.ID] = *o
	return nil
}

// GetByID retrieves an order by its identifier.
func (r *OrderRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order", id.Hex())
	}
	return &o, nil
}

// ListByUser returns all orders placed by the given user, newest first.
func (r *OrderRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []domain.Order{}
	for _, o := range r.orders {
		if o.User == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// DeleteAll removes every order (seeding).
func (r *OrderRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = make(map[primitive.ObjectID]domain.Order)
	return nil
}
