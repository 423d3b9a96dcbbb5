package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/repository"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
	"github.com/ranaIslam01/server/pkg/pagination"
)

// maxSubmitAttempts bounds the re-read/retry loop when a review submission
// loses a version-checked write to a concurrent reviewer.
const maxSubmitAttempts = 3

// ProductService implements the business logic for the product catalog,
// including the review aggregator that keeps a product's rating and
// numReviews fields consistent with its embedded review collection.
type ProductService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

// List returns one page of products, optionally filtered by a
// case-insensitive substring match on the name.
func (s *ProductService) List(ctx context.Context, keyword string, params pagination.Params) (pagination.Result[domain.Product], error) {
	products, total, err := s.products.List(ctx, repository.ProductFilter{
		Keyword: keyword,
		Page:    params.Page,
		Limit:   params.Limit,
	})
	if err != nil {
		return pagination.Result[domain.Product]{}, fmt.Errorf("list products: %w", err)
	}

	return pagination.NewResult(products, total, params), nil
}

// Get retrieves a single product by its identifier.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// SubmitReviewInput holds the parameters for submitting a product review.
// UserName is captured into the review as a point-in-time snapshot.
type SubmitReviewInput struct {
	ProductID primitive.ObjectID
	UserID    primitive.ObjectID
	UserName  string
	Rating    int
	Comment   string
}

// SubmitReview appends a review to the product and recomputes the
// denormalized aggregates, persisting the whole document in one
// version-checked write. A user may review a given product at most once;
// a duplicate submission fails with a conflict and mutates nothing.
//
// Two concurrent reviewers race between read and write; the version check
// makes the loser's write a no-op, and the loop re-reads and recomputes from
// the fresh review list, so neither aggregate update is lost.
func (s *ProductService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.Product, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be an integer between 1 and 5")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, apperrors.InvalidInput("comment is required")
	}

	for attempt := 1; attempt <= maxSubmitAttempts; attempt++ {
		product, err := s.products.GetByID(ctx, input.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product for review: %w", err)
		}

		if product.HasReviewBy(input.UserID) {
			return nil, apperrors.Conflict("product already reviewed by this user")
		}

		now := time.Now().UTC()
		product.AddReview(domain.Review{
			User:      input.UserID,
			Name:      input.UserName,
			Rating:    input.Rating,
			Comment:   input.Comment,
			CreatedAt: now,
		})
		product.UpdatedAt = now

		err = s.products.UpdateVersioned(ctx, product)
		if err == nil {
			s.logger.InfoContext(ctx, "review submitted",
				slog.String("product_id", input.ProductID.Hex()),
				slog.String("user_id", input.UserID.Hex()),
				slog.Int("rating", input.Rating),
				slog.Int("num_reviews", product.NumReviews),
				slog.Float64("product_rating", product.Rating),
			)
			return product, nil
		}

		if !errors.Is(err, apperrors.ErrVersionConflict) {
			return nil, fmt.Errorf("save review: %w", err)
		}

		s.logger.WarnContext(ctx, "review write lost a race, retrying",
			slog.String("product_id", input.ProductID.Hex()),
			slog.Int("attempt", attempt),
		)
	}

	return nil, fmt.Errorf("submit review for product %s: %w", input.ProductID.Hex(), apperrors.ErrVersionConflict)
}
