package repository

import (
	"context"
	"errors"
	"fmt"
	propertieserrors "roost/internal/properties/errors"
	"roost/pkg/config"
	mongotx "roost/pkg/db/mongo"
	"roost/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Properties"
)

type mongoPropertyRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	FindByID(ctx context.Context, id string) (*model.Property, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Property, error)
	FindByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Property, error)
	CountByHost(ctx context.Context, hostID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, update *model.PropertyUpdate) (*mongo.UpdateResult, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error

	ConsumeAutoApproval(ctx context.Context, id string) (bool, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoPropertyRepository(cfg *config.Config) PropertyRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function, as wrapping a SessionContext would
// break transaction semantics.
func (r *mongoPropertyRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	property.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		property.ID = oid.Hex()
	}

	return nil
}

func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}
	filter := bson.M{"_id": objectID}

	var property model.Property
	err = r.collection.FindOne(ctx, filter).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &property, nil
}

func (r *mongoPropertyRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
	return r.findSorted(ctx, bson.M{"active": true}, limit, offset)
}

func (r *mongoPropertyRepository) FindByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Property, error) {
	return r.findSorted(ctx, bson.M{"host_id": hostID}, limit, offset)
}

func (r *mongoPropertyRepository) CountByHost(ctx context.Context, hostID string) (int64, error) {
	return r.count(ctx, bson.M{"host_id": hostID})
}

func (r *mongoPropertyRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"active": true})
}

// Update applies a partial update. Only fields set on the patch are written,
// so a host can change pricing without resending the whole document.
func (r *mongoPropertyRepository) Update(ctx context.Context, id string, update *model.PropertyUpdate) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Pricing != nil {
		set["pricing"] = *update.Pricing
	}
	if update.Extras != nil {
		set["extras"] = *update.Extras
	}
	if update.BookingSettings != nil {
		set["booking_settings"] = *update.BookingSettings
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}

	if len(set) == 0 {
		return &mongo.UpdateResult{}, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
	}

	return result, nil
}

func (r *mongoPropertyRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"active": active}},
	)
	if err != nil {
		return fmt.Errorf("failed to set property active flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoPropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
	}

	return nil
}

// ConsumeAutoApproval atomically claims one auto-approval slot. The filter
// only matches while approve_first_five is on and fewer than the quota have
// been consumed, so the counter can never pass the quota no matter how many
// admissions race. Returns true if a slot was claimed.
func (r *mongoPropertyRepository) ConsumeAutoApproval(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	filter := bson.M{
		"_id":                                 objectID,
		"booking_settings.approve_first_five": true,
		"first_five_approved":                 bson.M{"$lt": model.AutoApproveQuota},
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"first_five_approved": 1}})
	if err != nil {
		return false, fmt.Errorf("failed to consume auto-approval slot: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *mongoPropertyRepository) findSorted(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

func (r *mongoPropertyRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

func (r *mongoPropertyRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
