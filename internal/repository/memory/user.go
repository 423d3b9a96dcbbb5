package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
	apperrors "github.com/ranaIslam01/server/pkg/errors"
)

// UserRepository is an in-memory implementation of repository.UserRepository.
// Email uniqueness is enforced with a map keyed by the normalized address.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[primitive.ObjectID]domain.User
	byEmail map[string]primitive.ObjectID
}

// NewUserRepository creates a new in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[primitive.ObjectID]domain.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

// Create inserts a new user. The email must already be normalized.
func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return apperrors.AlreadyExists("user", "email", u.Email)
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

// GetByID retrieves a user by their identifier.
func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id.Hex())
	}
	return &u, nil
}

// GetByEmail retrieves a user by their normalized email address.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("user", email)
	}
	u := r.users[id]
	return &u, nil
}

// Update replaces the stored user, keeping the email lookup consistent.
func (r *UserRepository) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[u.ID]
	if !ok {
		return apperrors.NotFound("user", u.ID.Hex())
	}

	if u.Email != current.Email {
		if owner, taken := r.byEmail[u.Email]; taken && owner != u.ID {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		delete(r.byEmail, current.Email)
		r.byEmail[u.Email] = u.ID
	}

	r.users[u.ID] = *u
	return nil
}

// InsertMany bulk-inserts users for seeding and returns them with
// assigned IDs.
func (r *UserRepository) InsertMany(ctx context.Context, users []domain.User) ([]domain.User, error) {
	for i := range users {
		if err := r.Create(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// DeleteAll removes every user (seeding).
func (r *UserRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[primitive.ObjectID]domain.User)
	r.byEmail = make(map[string]primitive.ObjectID)
	return nil
}
