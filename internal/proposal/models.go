package proposal

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

// Proposal is a thesis-topic submission owned by a student group. Students
// move a draft to submitted; teachers accept or reject submitted proposals.
// An accepted proposal unlocks adviser matching.
type Proposal struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Client          string             `bson:"client" json:"client"`
	Field           string             `bson:"field" json:"field"`
	GroupID         string             `bson:"group_id" json:"groupID"`
	Status          string             `bson:"status" json:"status"`
	RejectionReason string             `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	Comment         string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Adviser         string             `bson:"adviser,omitempty" json:"adviser,omitempty"`
	AdviserUID      string             `bson:"adviser_uid,omitempty" json:"adviserUID,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateProposalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Client      string `json:"client"`
	Field       string `json:"field"`
	GroupID     string `json:"groupID"`
}

type RejectProposalRequest struct {
	Reason string `json:"reason"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}
