package repository

import (
	"barberbook/pkg/config"
	mongotx "barberbook/pkg/db/mongo"
	"barberbook/pkg/model"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Booking_events"
)

type EventRepository interface {
	// Insert stores event once per event ID. It reports false when the event
	// was already recorded.
	Insert(ctx context.Context, event *model.BookingEvent) (bool, error)
	FindByBooking(ctx context.Context, tenantID, bookingID string) ([]*model.BookingEvent, error)
}

type eventRecord struct {
	model.BookingEvent `bson:",inline"`
	RecordedAt         time.Time `bson:"recorded_at"`
}

type mongoEventRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEventRepository(cfg *config.Config) EventRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEventRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoEventRepository) Insert(ctx context.Context, event *model.BookingEvent) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	record := eventRecord{
		BookingEvent: *event,
		RecordedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert booking event %s: %w", event.EventID, err)
	}
	return true, nil
}

func (r *mongoEventRepository) FindByBooking(ctx context.Context, tenantID, bookingID string) ([]*model.BookingEvent, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tenant_id": tenantID, "booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	events := make([]*model.BookingEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events for booking %s: %w", bookingID, err)
	}
	return events, nil
}
