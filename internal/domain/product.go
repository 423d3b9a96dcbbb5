package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a single product review, embedded in its parent Product
// document. Name is a point-in-time snapshot of the author's display name
// taken at submission; a later rename does not retroactively update it.
type Review struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Product represents a product in the catalog. Rating and NumReviews are
// denormalized summaries of Reviews and must always equal their recomputed
// values; AddReview is the only mutation path that grows Reviews.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	Description  string             `bson:"description" json:"description"`
	Brand        string             `bson:"brand" json:"brand"`
	Category     string             `bson:"category" json:"category"`
	Price        float64            `bson:"price" json:"price"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	Rating       float64            `bson:"rating" json:"rating"`
	NumReviews   int                `bson:"numReviews" json:"numReviews"`
	Reviews      []Review           `bson:"reviews" json:"reviews"`
	Version      int64              `bson:"version" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasReviewBy reports whether the given user has already reviewed this product.
func (p *Product) HasReviewBy(userID primitive.ObjectID) bool {
	for _, r := range p.Reviews {
		if r.User == userID {
			return true
		}
	}
	return false
}

// AddReview appends the review and recomputes the denormalized aggregates.
// Callers must have checked HasReviewBy first.
func (p *Product) AddReview(review Review) {
	p.Reviews = append(p.Reviews, review)
	p.RecomputeAggregates()
}

// RecomputeAggregates restores the invariant that NumReviews and Rating are
// a pure function of the review collection.
func (p *Product) RecomputeAggregates() {
	p.NumReviews = len(p.Reviews)
	p.Rating = MeanRating(p.Reviews)
}

// MeanRating returns the arithmetic mean of the review ratings, rounded to
// one decimal place (half away from zero). Zero for an empty collection.
func MeanRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}
