package proposal

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProposalRepository struct {
	collection *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{collection: db.Collection("proposals")}
}

func (r *ProposalRepository) Create(ctx context.Context, p *Proposal) error {
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *ProposalRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Proposal, error) {
	var p Proposal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProposalRepository) FindByGroup(ctx context.Context, groupID string) ([]*Proposal, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return nil, err
	}
	var proposals []*Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *ProposalRepository) FindByStatus(ctx context.Context, status string) ([]*Proposal, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	var proposals []*Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

// FindAcceptedByGroup returns the group's accepted proposal, if any.
func (r *ProposalRepository) FindAcceptedByGroup(ctx context.Context, groupID string) (*Proposal, error) {
	var p Proposal
	err := r.collection.FindOne(ctx, bson.M{"group_id": groupID, "status": StatusAccepted}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProposalRepository) Update(ctx context.Context, p *Proposal) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("proposal not found")
	}
	return nil
}

func (r *ProposalRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("proposal not found")
	}
	return nil
}
