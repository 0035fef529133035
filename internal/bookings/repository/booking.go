package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingerrors "rentwheels/internal/bookings/errors"
	dbmongo "rentwheels/pkg/db/mongo"
	"rentwheels/pkg/model"
)

const (
	CollectionBookings = "bookings"

	defaultQueryTimeout = 5 * time.Second
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByUserAndCar(ctx context.Context, email, bookID string) (*model.Booking, error)
	FindByUser(ctx context.Context, email string) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error)
	ExecuteTransaction(ctx context.Context, fn dbmongo.TransactionFunc) error
}

type mongoBookingRepository struct {
	collection *mongo.Collection
	txManager  dbmongo.TransactionManager
}

func NewBookingRepository(db *mongo.Database, txManager dbmongo.TransactionManager) BookingRepository {
	return &mongoBookingRepository{
		collection: db.Collection(CollectionBookings),
		txManager:  txManager,
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		// The unique (email, bookId) index is the authoritative duplicate
		// guard; concurrent inserts that slip past the pre-check land here.
		if mongo.IsDuplicateKeyError(err) {
			return nil, bookingerrors.ErrDuplicate
		}
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return booking, nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, bookingerrors.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var booking model.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindByUserAndCar(ctx context.Context, email, bookID string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"email": email, "bookId": bookID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, email string) ([]model.Booking, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := make([]model.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, bookingerrors.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Booking
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn dbmongo.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
