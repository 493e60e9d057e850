package repository

import (
	stafferrors "barberbook/internal/staff/errors"
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
	CollectionName = "Staff"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	FindByID(ctx context.Context, tenantID, id string) (*model.Staff, error)
	FindAll(ctx context.Context, tenantID string, activeOnly bool, limit int, offset int64) ([]*model.Staff, error)
	Count(ctx context.Context, tenantID string, activeOnly bool) (int64, error)
	Update(ctx context.Context, tenantID, id string, staff *model.Staff) error
	UpdateSchedule(ctx context.Context, tenantID, id string, schedule *model.WorkSchedule) error
	Deactivate(ctx context.Context, tenantID, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoStaffRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoStaffRepository(cfg *config.Config) StaffRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStaffRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoStaffRepository) idFilter(tenantID, id string) (bson.M, error) {
	oid, ok := mongotx.ObjectID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", stafferrors.ErrInvalidID, id)
	}
	return bson.M{"_id": oid, "tenant_id": tenantID}, nil
}

func listFilter(tenantID string, activeOnly bool) bson.M {
	filter := bson.M{"tenant_id": tenantID}
	if activeOnly {
		filter["is_active"] = true
	}
	return filter
}

func (r *mongoStaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	staff.CreatedAt = now
	staff.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, staff)
	if err != nil {
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	staff.ID = mongotx.HexID(result.InsertedID)
	return nil
}

func (r *mongoStaffRepository) FindByID(ctx context.Context, tenantID, id string) (*model.Staff, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := r.idFilter(tenantID, id)
	if err != nil {
		return nil, err
	}

	var staff model.Staff
	if err := r.collection.FindOne(ctx, filter).Decode(&staff); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, stafferrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff member: %w", err)
	}
	return &staff, nil
}

func (r *mongoStaffRepository) FindAll(ctx context.Context, tenantID string, activeOnly bool, limit int, offset int64) ([]*model.Staff, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, listFilter(tenantID, activeOnly), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find staff: %w", err)
	}
	defer cursor.Close(ctx)

	staff := []*model.Staff{}
	if err = cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return staff, nil
}

func (r *mongoStaffRepository) Count(ctx context.Context, tenantID string, activeOnly bool) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, listFilter(tenantID, activeOnly))
	if err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return count, nil
}

func (r *mongoStaffRepository) Update(ctx context.Context, tenantID, id string, staff *model.Staff) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := r.idFilter(tenantID, id)
	if err != nil {
		return err
	}

	staff.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":             staff.Name,
			"email":            staff.Email,
			"phone":            staff.Phone,
			"position":         staff.Position,
			"specialties":      staff.Specialties,
			"experience_years": staff.ExperienceYears,
			"is_active":        staff.IsActive,
			"updated_at":       staff.UpdatedAt,
		},
	}
	return r.updateOne(ctx, filter, update, "staff member")
}

func (r *mongoStaffRepository) UpdateSchedule(ctx context.Context, tenantID, id string, schedule *model.WorkSchedule) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := r.idFilter(tenantID, id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"work_schedule": schedule,
			"updated_at":    time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	return r.updateOne(ctx, filter, update, "work schedule")
}

func (r *mongoStaffRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := r.idFilter(tenantID, id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	return r.updateOne(ctx, filter, update, "staff member")
}

func (r *mongoStaffRepository) updateOne(ctx context.Context, filter, update bson.M, what string) error {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	if result.MatchedCount == 0 {
		return stafferrors.ErrNotFound
	}
	return nil
}

func (r *mongoStaffRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
