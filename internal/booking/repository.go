package booking

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{collection: db.Collection("bookings")}
}

// Snapshot reads the full booking collection in arrival order.
func (r *BookingRepository) Snapshot(ctx context.Context) ([]Booking, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var bookings []Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Watch opens a change stream on the collection. Any insert, update or delete
// produces an event; the mirror re-reads the full snapshot on each one.
func (r *BookingRepository) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	return r.collection.Watch(ctx, mongo.Pipeline{},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
}

func (r *BookingRepository) Insert(ctx context.Context, b *Booking) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, b)
	return err
}

// Update sets exactly the mutable fields of an existing booking.
func (r *BookingRepository) Update(ctx context.Context, b *Booking) error {
	update := bson.M{
		"$set": bson.M{
			"title":    b.Title,
			"room":     b.Room,
			"start":    b.Start,
			"end":      b.End,
			"group_id": b.GroupID,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": b.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
