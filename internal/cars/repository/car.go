package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	carerrors "rentwheels/internal/cars/errors"
	"rentwheels/pkg/model"
	"rentwheels/pkg/sanitizer"
)

const (
	CollectionCars = "cars"

	defaultQueryTimeout = 5 * time.Second
)

// SortOrder controls date ordering of listing queries.
type SortOrder int

const (
	DateAsc SortOrder = iota
	DateDesc
)

func (s SortOrder) mongoDirection() int {
	if s == DateDesc {
		return -1
	}
	return 1
}

type CarRepository interface {
	Create(ctx context.Context, car *model.Car) (*model.Car, error)
	FindByID(ctx context.Context, id string) (*model.Car, error)
	FindAll(ctx context.Context) ([]model.Car, error)
	Search(ctx context.Context, term string, order SortOrder, limit, skip int64) ([]model.Car, error)
	CountSearch(ctx context.Context, term string) (int64, error)
	FindRecent(ctx context.Context, limit int64) ([]model.Car, error)
	FindByOwner(ctx context.Context, email string, order SortOrder) ([]model.Car, error)
	Replace(ctx context.Context, id string, car *model.Car) (*model.Car, error)
	Delete(ctx context.Context, id string) error
	IncrementBookingCount(ctx context.Context, id string, delta int64) error
}

type mongoCarRepository struct {
	collection *mongo.Collection
}

func NewCarRepository(db *mongo.Database) CarRepository {
	return &mongoCarRepository{
		collection: db.Collection(CollectionCars),
	}
}

// withTimeout bounds standalone queries. Session contexts pass through
// untouched so transactions keep their own deadline.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// searchFilter matches the term case-insensitively against model and
// location. The term must already be regex-escaped by the caller.
func searchFilter(term string) bson.M {
	if term == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: term, Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"model": pattern},
			bson.M{"location": pattern},
		},
	}
}

func (r *mongoCarRepository) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		car.ID = oid
	}
	return car, nil
}

func (r *mongoCarRepository) FindByID(ctx context.Context, id string) (*model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, carerrors.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var car model.Car
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&car); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, carerrors.ErrNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (r *mongoCarRepository) FindAll(ctx context.Context) ([]model.Car, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cars := make([]model.Car, 0)
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *mongoCarRepository) Search(ctx context.Context, term string, order SortOrder, limit, skip int64) ([]model.Car, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: order.mongoDirection()}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, searchFilter(term), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cars := make([]model.Car, 0)
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *mongoCarRepository) CountSearch(ctx context.Context, term string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return r.collection.CountDocuments(ctx, searchFilter(term))
}

func (r *mongoCarRepository) FindRecent(ctx context.Context, limit int64) ([]model.Car, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cars := make([]model.Car, 0)
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *mongoCarRepository) FindByOwner(ctx context.Context, email string, order SortOrder) ([]model.Car, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: order.mongoDirection()}})

	cursor, err := r.collection.Find(ctx, bson.M{"userDetails.email": sanitizer.SanitizeEmail(email)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cars := make([]model.Car, 0)
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// Replace overwrites the caller-editable fields of a listing, creating the
// document when the id is unknown. The booking counter is deliberately
// excluded so edits never reset it.
func (r *mongoCarRepository) Replace(ctx context.Context, id string, car *model.Car) (*model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, carerrors.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"model":        car.Model,
		"location":     car.Location,
		"rentalPrice":  car.RentalPrice,
		"description":  car.Description,
		"imageUrl":     car.ImageURL,
		"availability": car.Availability,
		"date":         car.Date,
		"userDetails":  car.UserDetails,
	}}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated model.Car
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *mongoCarRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return carerrors.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return carerrors.ErrNotFound
	}
	return nil
}

func (r *mongoCarRepository) IncrementBookingCount(ctx context.Context, id string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return carerrors.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"booking_count": delta}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return carerrors.ErrNotFound
	}
	return nil
}
