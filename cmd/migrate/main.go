package main

import (
	mongoMigration "barberbook/internal/migrations/mongo"
	"barberbook/pkg/config"
	"context"
	"os"
	"time"
)

const JobName = "barberbook-migrate"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log.Component("migrate")); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cfg.GracefulShutdown()
		os.Exit(1)
	}
	cfg.Log.Info("Migration completed successfully")
}
