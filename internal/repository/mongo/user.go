package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ranaIslam01/server/internal/domain"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
)

// UserRepository implements repository.UserRepository using MongoDB. Email
// uniqueness rides on the unique index created by EnsureIndexes.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new MongoDB-backed user repository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create inserts a new user. The email must already be normalized.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their identifier.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user", id.Hex())
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user by their normalized email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// Update replaces the stored user document.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("user", u.ID.Hex())
	}
	return nil
}

// InsertMany bulk-inserts users for seeding and returns them with
// assigned IDs.
func (r *UserRepository) InsertMany(ctx context.Context, users []domain.User) ([]domain.User, error) {
	docs := make([]any, 0, len(users))
	for i := range users {
		if users[i].ID.IsZero() {
			users[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, users[i])
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert users: %w", err)
	}
	return users, nil
}

// DeleteAll removes every user (seeding).
func (r *UserRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}
