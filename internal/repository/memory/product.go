// Package memory provides in-memory repository implementations used when no
// database connection string is configured (degraded demo mode) and in tests.
// All stores are safe for concurrent use via sync.RWMutex; nothing persists
// across restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/repository"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
)

// ProductRepository is an in-memory implementation of repository.ProductRepository.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]domain.Product
}

// NewProductRepository creates a new in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[primitive.ObjectID]domain.Product),
	}
}

// Create inserts a new product.
func (r *ProductRepository) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = cloneProduct(*p)
	return nil
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id.Hex())
	}
	out := cloneProduct(p)
	return &out, nil
}

// List returns the requested page of products matching the filter and the
// total matching count. Keyword matching mirrors the database regex: a
// case-insensitive substring match on the name.
func (r *ProductRepository) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword := strings.ToLower(filter.Keyword)
	matched := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), keyword) {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}

	// Stable order so pages do not shuffle between requests.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})

	total := len(matched)
	lo := filter.Limit * (filter.Page - 1)
	if lo > total {
		lo = total
	}
	hi := lo + filter.Limit
	if hi > total {
		hi = total
	}

	return matched[lo:hi], total, nil
}

// UpdateVersioned replaces the stored product if the caller's version still
// matches, bumping the version. Mirrors the database's version-checked write.
func (r *ProductRepository) UpdateVersioned(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[p.ID]
	if !ok || current.Version != p.Version {
		return apperrors.ErrVersionConflict
	}

	p.Version++
	r.products[p.ID] = cloneProduct(*p)
	return nil
}

// InsertMany bulk-inserts products for seeding and returns them with
// assigned IDs.
func (r *ProductRepository) InsertMany(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	for i := range products {
		if err := r.Create(ctx, &products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// DeleteAll removes every product (seeding).
func (r *ProductRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[primitive.ObjectID]domain.Product)
	return nil
}

// cloneProduct deep-copies a product so callers never alias the stored
// review slice.
func cloneProduct(p domain.Product) domain.Product {
	out := p
	out.Reviews = make([]domain.Review, len(p.Reviews))
	copy(out.Reviews, p.Reviews)
	return out
}
