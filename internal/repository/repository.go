package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
)

// ProductFilter defines filter and page criteria for listing products.
type ProductFilter struct {
	// Keyword is matched case-insensitively as a substring of the product
	// name. Empty means no filtering.
	Keyword string
	Page    int
	Limit   int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)

	// List returns the requested page of products matching the filter along
	// with the total matching count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// UpdateVersioned persists the whole product document in one write,
	// guarded by the version the caller read. It returns
	// errors.ErrVersionConflict when a concurrent writer got there first;
	// the caller re-reads and retries.
	UpdateVersioned(ctx context.Context, product *domain.Product) error

	// InsertMany bulk-inserts products for seeding and returns them with
	// assigned IDs.
	InsertMany(ctx context.Context, products []domain.Product) ([]domain.Product, error)

	// DeleteAll removes every product (seeding).
	DeleteAll(ctx context.Context) error
}

// UserRepository defines the interface for user persistence operations.
// Implementations enforce email uniqueness on the normalized address.
type UserRepository interface {
	// Create inserts a new user. Returns a conflict error when the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// GetByEmail retrieves a user by their normalized email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user. Returns a conflict error when the
	// new email collides with another user.
	Update(ctx context.Context, user *domain.User) error

	// InsertMany bulk-inserts users for seeding and returns them with
	// assigned IDs.
	InsertMany(ctx context.Context, users []domain.User) ([]domain.User, error)

	// DeleteAll removes every user (seeding).
	DeleteAll(ctx context.Context) error
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order into the store.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)

	// ListByUser returns all orders placed by the given user.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)

	// DeleteAll removes every order (seeding).
	DeleteAll(ctx context.Context) error
}
