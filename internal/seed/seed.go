// Package seed provides the demo dataset and the import/destroy routines
// used by the seeder command and by demo mode at startup.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/repository"
)

// Users returns the demo accounts. The first entry is the admin; the
// seeder and the sample order rely on that ordering.
func Users() []domain.User {
	now := time.Now().UTC()
	return []domain.User{
		{
			Name:      "Admin User",
			Email:     "admin@example.com",
			Password:  mustHash("123456"),
			IsAdmin:   true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Name:      "John Doe",
			Email:     "john@example.com",
			Password:  mustHash("123456"),
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Name:      "Jane Doe",
			Email:     "jane@example.com",
			Password:  mustHash("123456"),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// Products returns the demo catalog.
func Products() []domain.Product {
	now := time.Now().UTC()
	products := []domain.Product{
		{
			Name:         "Airpods Wireless Bluetooth Headphones",
			Image:        "/images/airpods.jpg",
			Description:  "Bluetooth technology lets you connect it with compatible devices wirelessly. High-quality AAC audio offers immersive listening experience.",
			Brand:        "Apple",
			Category:     "Electronics",
			Price:        89.99,
			CountInStock: 10,
		},
		{
			Name:         "iPhone 13 Pro 256GB Memory",
			Image:        "/images/phone.jpg",
			Description:  "Introducing the iPhone 13 Pro. A transformative triple-camera system that adds tons of capability without complexity.",
			Brand:        "Apple",
			Category:     "Electronics",
			Price:        599.99,
			CountInStock: 7,
		},
		{
			Name:         "Cannon EOS 80D DSLR Camera",
			Image:        "/images/camera.jpg",
			Description:  "Characterized by versatile imaging specs, the Canon EOS 80D further clarifies itself using a pair of robust focusing systems.",
			Brand:        "Cannon",
			Category:     "Electronics",
			Price:        929.99,
			CountInStock: 5,
		},
		{
			Name:         "Sony Playstation 5",
			Image:        "/images/playstation.jpg",
			Description:  "The ultimate home entertainment center starts with PlayStation. Whether you are into gaming, HD movies, television, or music.",
			Brand:        "Sony",
			Category:     "Electronics",
			Price:        399.99,
			CountInStock: 11,
		},
		{
			Name:         "Logitech G-Series Gaming Mouse",
			Image:        "/images/mouse.jpg",
			Description:  "Get a better handle on your games with this Logitech LIGHTSYNC gaming mouse. Six programmable buttons allow customization.",
			Brand:        "Logitech",
			Category:     "Electronics",
			Price:        49.99,
			CountInStock: 7,
		},
		{
			Name:         "Amazon Echo Dot 3rd Generation",
			Image:        "/images/alexa.jpg",
			Description:  "Meet Echo Dot, our most popular smart speaker with a fabric design. It is our most compact smart speaker that fits perfectly into small spaces.",
			Brand:        "Amazon",
			Category:     "Electronics",
			Price:        29.99,
			CountInStock: 0,
		},
	}
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
	}
	return products
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

// Seeder wipes and repopulates the stores with the demo dataset.
type Seeder struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *slog.Logger
}

// New creates a Seeder over the given repositories.
func New(users repository.UserRepository, products repository.ProductRepository, orders repository.OrderRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		users:    users,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// Import destroys existing data and loads the demo users, catalog and a
// sample order for the admin account.
func (s *Seeder) Import(ctx context.Context) error {
	if err := s.Destroy(ctx); err != nil {
		return err
	}

	users, err := s.users.InsertMany(ctx, Users())
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	admin := users[0]

	products, err := s.products.InsertMany(ctx, Products())
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	first := products[0]
	now := time.Now().UTC()
	order := &domain.Order{
		User: admin.ID,
		OrderItems: []domain.OrderItem{
			{
				Name:    first.Name,
				Qty:     2,
				Image:   first.Image,
				Price:   first.Price,
				Product: first.ID,
			},
		},
		ShippingAddress: domain.ShippingAddress{
			Address:    "123 Main St",
			City:       "Dhaka",
			PostalCode: "1207",
			Country:    "Bangladesh",
		},
		PaymentMethod: "Cash On Delivery",
		ItemsPrice:    first.Price * 2,
		TotalPrice:    first.Price * 2,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return fmt.Errorf("seed order: %w", err)
	}

	s.logger.InfoContext(ctx, "demo data imported",
		slog.Int("users", len(users)),
		slog.Int("products", len(products)),
	)

	return nil
}

// Destroy removes all orders, products and users.
func (s *Seeder) Destroy(ctx context.Context) error {
	if err := s.orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	if err := s.products.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}
