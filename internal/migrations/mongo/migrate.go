package mongo

import (
	"barberbook/internal/migrations/mongo/validators"
	"barberbook/pkg/logger"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	StaffIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "name", Value: 1}}},
	}

	ServicesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "tenant_id", Value: 1},
			{Key: "category", Value: 1},
			{Key: "name", Value: 1},
		}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	ClientsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "phone", Value: 1}},
			Options: options.Index().
				SetName("tenant_phone_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"phone": bson.M{"$type": "string"}}),
		},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "name", Value: 1}}},
	}

	// The first index backs the overlap query run under the booking lock.
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "tenant_id", Value: 1},
			{Key: "staff_id", Value: 1},
			{Key: "start_time", Value: 1},
			{Key: "end_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "tenant_id", Value: 1},
			{Key: "client_id", Value: 1},
			{Key: "start_time", Value: -1},
		}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "start_time", Value: 1}}},
	}

	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(0),
		},
	}

	BookingEventsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "tenant_id", Value: 1},
			{Key: "booking_id", Value: 1},
			{Key: "occurred_at", Value: 1},
		}},
	}
)

// Collections lists every collection the services touch, in creation order.
func Collections() []Collection {
	return []Collection{
		{Name: "Staff", Indexes: StaffIndexes, Validator: validators.StaffValidator},
		{Name: "Services", Indexes: ServicesIndexes, Validator: validators.ServiceValidator},
		{Name: "Clients", Indexes: ClientsIndexes, Validator: validators.ClientValidator},
		{Name: "Bookings", Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		{Name: "Booking_locks", Indexes: BookingLocksIndexes, Validator: validators.BookingLockValidator},
		{Name: "Booking_events", Indexes: BookingEventsIndexes, Validator: validators.BookingEventValidator},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully", "collections", len(Collections()))
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
