package repository

import (
	catalogerrors "barberbook/internal/catalog/errors"
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
	CollectionName = "Services"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	FindByID(ctx context.Context, tenantID, id string) (*model.Service, error)
	FindAll(ctx context.Context, tenantID string, filter ServiceFilter, limit int, offset int64) ([]*model.Service, error)
	Count(ctx context.Context, tenantID string, filter ServiceFilter) (int64, error)
	Update(ctx context.Context, tenantID, id string, service *model.Service) error
	Deactivate(ctx context.Context, tenantID, id string) error
	Categories(ctx context.Context, tenantID string) ([]string, error)
}

// ServiceFilter narrows catalog listings. Zero values match everything.
type ServiceFilter struct {
	ActiveOnly bool
	Category   string
}

type mongoServiceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoServiceRepository(cfg *config.Config) ServiceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoServiceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func idFilter(tenantID, id string) (bson.M, error) {
	oid, ok := mongotx.ObjectID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}
	return bson.M{"_id": oid, "tenant_id": tenantID}, nil
}

func (f ServiceFilter) bson(tenantID string) bson.M {
	filter := bson.M{"tenant_id": tenantID}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return filter
}

func (r *mongoServiceRepository) Create(ctx context.Context, service *model.Service) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	service.CreatedAt = now
	service.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, service)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	service.ID = mongotx.HexID(result.InsertedID)
	return nil
}

func (r *mongoServiceRepository) FindByID(ctx context.Context, tenantID, id string) (*model.Service, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return nil, err
	}

	var service model.Service
	if err := r.collection.FindOne(ctx, filter).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return &service, nil
}

func (r *mongoServiceRepository) FindAll(ctx context.Context, tenantID string, filter ServiceFilter, limit int, offset int64) ([]*model.Service, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter.bson(tenantID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []*model.Service{}
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *mongoServiceRepository) Count(ctx context.Context, tenantID string, filter ServiceFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter.bson(tenantID))
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}

func (r *mongoServiceRepository) Update(ctx context.Context, tenantID, id string, service *model.Service) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return err
	}

	service.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":             service.Name,
			"description":      service.Description,
			"price":            service.Price,
			"duration_minutes": service.DurationMinutes,
			"category":         service.Category,
			"is_active":        service.IsActive,
			"updated_at":       service.UpdatedAt,
		},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoServiceRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoServiceRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalogerrors.ErrNotFound
	}
	return nil
}

// Categories returns the distinct non-empty categories used by the tenant's
// services, active or not.
func (r *mongoServiceRepository) Categories(ctx context.Context, tenantID string) ([]string, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "category", bson.M{"tenant_id": tenantID})
	if err != nil {
		return nil, fmt.Errorf("failed to list service categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if c, ok := v.(string); ok && c != "" {
			categories = append(categories, c)
		}
	}
	return categories, nil
}
