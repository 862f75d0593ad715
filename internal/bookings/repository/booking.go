package repository

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "roost/internal/bookings/errors"
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
	CollectionName = "Bookings"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*model.Booking, error)
	FindByGuest(ctx context.Context, guestID string, limit int, offset int64) ([]*model.Booking, error)
	CountByGuest(ctx context.Context, guestID string) (int64, error)
	FindByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, error)
	CountByHost(ctx context.Context, hostID string) (int64, error)
	FindPastByGuest(ctx context.Context, guestID string, before time.Time, limit int, offset int64) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, from string, to string) error
	MarkReviewed(ctx context.Context, id string, guestID string) error
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
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
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var booking model.Booking
	err = r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

// FindOverlapping returns bookings that hold the property during any part of
// [checkIn, checkOut). Half-open interval test: an existing booking overlaps
// iff existing.check_in < checkOut AND existing.check_out > checkIn, so a
// shared boundary instant is not a conflict. Only pending and confirmed
// bookings hold the interval.
func (r *mongoBookingRepository) FindOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"property_id": propertyID,
		"status":      bson.M{"$in": []string{model.StatusPending, model.StatusConfirmed}},
		"check_in":    bson.M{"$lt": checkOut},
		"check_out":   bson.M{"$gt": checkIn},
	}

	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) FindByGuest(ctx context.Context, guestID string, limit int, offset int64) ([]*model.Booking, error) {
	return r.findSorted(ctx, bson.M{"guest_id": guestID}, limit, offset)
}

func (r *mongoBookingRepository) CountByGuest(ctx context.Context, guestID string) (int64, error) {
	return r.count(ctx, bson.M{"guest_id": guestID})
}

func (r *mongoBookingRepository) FindByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, error) {
	return r.findSorted(ctx, bson.M{"host_id": hostID}, limit, offset)
}

func (r *mongoBookingRepository) CountByHost(ctx context.Context, hostID string) (int64, error) {
	return r.count(ctx, bson.M{"host_id": hostID})
}

// FindPastByGuest lists a guest's finished trips, most recent checkout first.
func (r *mongoBookingRepository) FindPastByGuest(ctx context.Context, guestID string, before time.Time, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"guest_id":  guestID,
		"check_out": bson.M{"$lt": before},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "check_out", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find past bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode past bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus flips the booking from one status to another. The filter
// matches on the expected current status, so a concurrent flip that already
// moved the booking makes this a no-op instead of a silent overwrite.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from string, to string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: booking %s is not %s", bookingserrors.ErrInvalidTransition, id, from)
	}

	return nil
}

func (r *mongoBookingRepository) MarkReviewed(ctx context.Context, id string, guestID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "guest_id": guestID},
		bson.M{"$set": bson.M{"reviewed": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark booking reviewed: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

// MarkCompletedBefore flips confirmed bookings whose stay has ended to
// completed. Returns the number of bookings updated.
func (r *mongoBookingRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{
			"status":    model.StatusConfirmed,
			"check_out": bson.M{"$lte": cutoff},
			"completed": false,
		},
		bson.M{"$set": bson.M{"completed": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark completed bookings: %w", err)
	}

	return result.ModifiedCount, nil
}

func (r *mongoBookingRepository) findSorted(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
