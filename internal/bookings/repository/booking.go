package repository

import (
	bookingserrors "barberbook/internal/bookings/errors"
	"barberbook/pkg/config"
	mongotx "barberbook/pkg/db/mongo"
	"barberbook/pkg/model"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, tenantID, id string) (*model.Booking, error)
	Search(ctx context.Context, tenantID string, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, tenantID string, filter model.BookingFilter) (int64, error)
	// FindActiveOverlapping returns the staff member's active bookings whose
	// interval intersects [from, to).
	FindActiveOverlapping(ctx context.Context, tenantID, staffID string, from, to time.Time) ([]*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	UpdateStatus(ctx context.Context, tenantID, id string, status model.BookingStatus) error
	Delete(ctx context.Context, tenantID, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func idFilter(tenantID, id string) (bson.M, error) {
	oid, ok := mongotx.ObjectID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}
	return bson.M{"_id": oid, "tenant_id": tenantID}, nil
}

func searchFilter(tenantID string, f model.BookingFilter) bson.M {
	filter := bson.M{"tenant_id": tenantID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.StaffID != "" {
		filter["staff_id"] = f.StaffID
	}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.From != nil || f.To != nil {
		start := bson.M{}
		if f.From != nil {
			start["$gte"] = f.From.UTC()
		}
		if f.To != nil {
			start["$lt"] = f.To.UTC()
		}
		filter["start_time"] = start
	}
	return filter
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.EndTime = booking.End()

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	booking.ID = mongotx.HexID(result.InsertedID)
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, tenantID, id string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return nil, err
	}

	var booking model.Booking
	if err := r.collection.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) Search(ctx context.Context, tenantID string, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	return r.find(ctx, searchFilter(tenantID, filter), opts)
}

func (r *mongoBookingRepository) Count(ctx context.Context, tenantID string, filter model.BookingFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, searchFilter(tenantID, filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) FindActiveOverlapping(ctx context.Context, tenantID, staffID string, from, to time.Time) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"tenant_id":  tenantID,
		"staff_id":   staffID,
		"status":     bson.M{"$in": model.ActiveStatuses},
		"start_time": bson.M{"$lt": to.UTC()},
		"end_time":   bson.M{"$gt": from.UTC()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	return r.find(ctx, filter, opts)
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(booking.TenantID, booking.ID)
	if err != nil {
		return err
	}

	booking.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	booking.EndTime = booking.End()
	update := bson.M{
		"$set": bson.M{
			"start_time":       booking.StartTime,
			"end_time":         booking.EndTime,
			"duration_minutes": booking.DurationMinutes,
			"status":           booking.Status,
			"price":            booking.Price,
			"discount":         booking.Discount,
			"final_price":      booking.FinalPrice,
			"payment_status":   booking.PaymentStatus,
			"payment_method":   booking.PaymentMethod,
			"notes":            booking.Notes,
			"client_notes":     booking.ClientNotes,
			"updated_at":       booking.UpdatedAt,
		},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, tenantID, id string, status model.BookingStatus) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoBookingRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, tenantID, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
