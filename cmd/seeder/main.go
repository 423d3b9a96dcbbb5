// Command seeder wipes the database and loads the demo dataset, or just
// wipes it with -destroy. It requires MONGO_URI; demo mode seeds itself.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ranaIslam01/server/internal/config"
	mongorepo "github.com/ranaIslam01/server/internal/repository/mongo"
	"github.com/ranaIslam01/server/internal/seed"
	"github.com/ranaIslam01/server/pkg/logger"
)

func main() {
	destroy := flag.Bool("destroy", false, "delete all data instead of importing")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("shop-seeder", cfg.LogLevel)

	if cfg.DemoMode() {
		log.Error("MONGO_URI must be set to seed a database")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, db, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("failed to connect to mongodb", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Error("failed to ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	seeder := seed.New(
		mongorepo.NewUserRepository(db),
		mongorepo.NewProductRepository(db),
		mongorepo.NewOrderRepository(db),
		log,
	)

	if *destroy {
		if err := seeder.Destroy(ctx); err != nil {
			log.Error("destroy failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("data destroyed")
		return
	}

	if err := seeder.Import(ctx); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("data imported")
}
