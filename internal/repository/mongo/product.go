package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/repository"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using MongoDB.
// Reviews are embedded in the product document, so every write persists the
// whole document.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a new MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var p domain.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("product", id.Hex())
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

// List returns one page of products matching the filter and the total count.
// The keyword is matched as a case-insensitive substring of the name.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	query := bson.M{}
	if filter.Keyword != "" {
		query["name"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.Keyword),
			"$options": "i",
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	skip := int64(filter.Limit) * int64(filter.Page-1)
	findOpts := options.Find().SetSkip(skip).SetLimit(int64(filter.Limit))
	cursor, err := r.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	return products, int(total), nil
}

// UpdateVersioned persists the whole product document guarded by the version
// the caller read. A matched count of zero means a concurrent writer bumped
// the version first (or the product vanished); callers re-read and retry.
func (r *ProductRepository) UpdateVersioned(ctx context.Context, p *domain.Product) error {
	expected := p.Version

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": p.ID, "version": expected},
		bson.M{
			"$set": bson.M{
				"name":         p.Name,
				"image":        p.Image,
				"description":  p.Description,
				"brand":        p.Brand,
				"category":     p.Category,
				"price":        p.Price,
				"countInStock": p.CountInStock,
				"rating":       p.Rating,
				"numReviews":   p.NumReviews,
				"reviews":      p.Reviews,
				"updatedAt":    p.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrVersionConflict
	}

	p.Version = expected + 1
	return nil
}

// InsertMany bulk-inserts products for seeding and returns them with
// assigned IDs.
func (r *ProductRepository) InsertMany(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	docs := make([]any, 0, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, products[i])
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert products: %w", err)
	}
	return products, nil
}

// DeleteAll removes every product (seeding).
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}
