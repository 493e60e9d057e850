package repository

import (
	"barberbook/internal/bookings/locker"
	"barberbook/pkg/config"
	mongotx "barberbook/pkg/db/mongo"
	"barberbook/pkg/model"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Booking_locks"

// mongoBookingLockRepository stores advisory locks for the mongo locker
// backend. A unique _id makes the insert the atomic test-and-set.
type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) locker.LockStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoBookingLockRepository) Insert(ctx context.Context, lock *model.BookingLock) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return locker.ErrLockHeld
		}
		return fmt.Errorf("failed to insert booking lock: %w", err)
	}
	return nil
}

func (r *mongoBookingLockRepository) DeleteExpired(ctx context.Context, id string, now time.Time) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "expires_at": bson.M{"$lte": now}})
	if err != nil {
		return fmt.Errorf("failed to clear expired booking lock: %w", err)
	}
	return nil
}

func (r *mongoBookingLockRepository) DeleteOwned(ctx context.Context, id, token string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "token": token})
	if err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
