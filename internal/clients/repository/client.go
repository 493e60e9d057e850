package repository

import (
	clienterrors "barberbook/internal/clients/errors"
	"barberbook/pkg/config"
	mongotx "barberbook/pkg/db/mongo"
	"barberbook/pkg/model"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Clients"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, tenantID, id string) (*model.Client, error)
	FindAll(ctx context.Context, tenantID string, filter ClientFilter, limit int, offset int64) ([]*model.Client, error)
	Count(ctx context.Context, tenantID string, filter ClientFilter) (int64, error)
	Update(ctx context.Context, tenantID, id string, client *model.Client) error
	RecordVisit(ctx context.Context, tenantID, id string, visit model.VisitRecord) error
	Deactivate(ctx context.Context, tenantID, id string) error
}

// ClientFilter narrows client listings. Name matches case-insensitively by
// prefix; Phone must be E.164. Search is a case-insensitive substring matched
// against name, email or phone.
type ClientFilter struct {
	ActiveOnly bool
	Name       string
	Phone      string
	Search     string
}

type mongoClientRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoClientRepository(cfg *config.Config) ClientRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClientRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func idFilter(tenantID, id string) (bson.M, error) {
	oid, ok := mongotx.ObjectID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", clienterrors.ErrInvalidID, id)
	}
	return bson.M{"_id": oid, "tenant_id": tenantID}, nil
}

func (f ClientFilter) bson(tenantID string) bson.M {
	filter := bson.M{"tenant_id": tenantID}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if f.Phone != "" {
		filter["phone"] = f.Phone
	}
	if f.Name != "" {
		filter["name"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.Name), "$options": "i"}
	}
	if f.Search != "" {
		term := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": term},
			bson.M{"email": term},
			bson.M{"phone": term},
		}
	}
	return filter
}

func (r *mongoClientRepository) Create(ctx context.Context, client *model.Client) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	client.CreatedAt = now
	client.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, client)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return clienterrors.ErrPhoneTaken
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	client.ID = mongotx.HexID(result.InsertedID)
	return nil
}

func (r *mongoClientRepository) FindByID(ctx context.Context, tenantID, id string) (*model.Client, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return nil, err
	}

	var client model.Client
	if err := r.collection.FindOne(ctx, filter).Decode(&client); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, clienterrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return &client, nil
}

func (r *mongoClientRepository) FindAll(ctx context.Context, tenantID string, filter ClientFilter, limit int, offset int64) ([]*model.Client, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter.bson(tenantID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find clients: %w", err)
	}
	defer cursor.Close(ctx)

	clients := []*model.Client{}
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, nil
}

func (r *mongoClientRepository) Count(ctx context.Context, tenantID string, filter ClientFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter.bson(tenantID))
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

func (r *mongoClientRepository) Update(ctx context.Context, tenantID, id string, client *model.Client) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return err
	}

	client.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":       client.Name,
			"email":      client.Email,
			"phone":      client.Phone,
			"birth_date": client.BirthDate,
			"notes":      client.Notes,
			"is_active":  client.IsActive,
			"updated_at": client.UpdatedAt,
		},
	}
	return r.updateOne(ctx, filter, update)
}

// RecordVisit bumps the client's statistics for a new booking. It joins the
// caller's transaction when ctx carries one.
func (r *mongoClientRepository) RecordVisit(ctx context.Context, tenantID, id string, visit model.VisitRecord) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(tenantID, id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$inc": bson.M{
			"total_appointments": 1,
			"total_spent":        visit.Spent,
		},
		"$max": bson.M{"last_visit": visit.At.UTC()},
		"$set": bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *mongoClientRepository) Deactivate(ctx context.Context, tenantID, id string) error {
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

func (r *mongoClientRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return clienterrors.ErrPhoneTaken
		}
		return fmt.Errorf("failed to update client: %w", err)
	}
	if result.MatchedCount == 0 {
		return clienterrors.ErrNotFound
	}
	return nil
}
