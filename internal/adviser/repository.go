package adviser

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RequestRepository struct {
	collection *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{collection: db.Collection("adviser_requests")}
}

func (r *RequestRepository) Create(ctx context.Context, req *AdviserRequest) error {
	_, err := r.collection.InsertOne(ctx, req)
	return err
}

func (r *RequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*AdviserRequest, error) {
	var req AdviserRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// FindPendingByGroup returns the group's open request, if one exists. A group
// keeps at most one request pending at a time.
func (r *RequestRepository) FindPendingByGroup(ctx context.Context, groupID string) (*AdviserRequest, error) {
	var req AdviserRequest
	err := r.collection.FindOne(ctx, bson.M{"group_id": groupID, "status": StatusPending}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) FindByAdviser(ctx context.Context, adviserUID string) ([]*AdviserRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"adviser_uid": adviserUID})
	if err != nil {
		return nil, err
	}
	var requests []*AdviserRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepository) FindByGroup(ctx context.Context, groupID string) ([]*AdviserRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return nil, err
	}
	var requests []*AdviserRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepository) Update(ctx context.Context, req *AdviserRequest) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("adviser request not found")
	}
	return nil
}
