package adviser

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// MemberSnapshot freezes a group member's identity at request time, so the
// adviser sees the roster as it was even if profiles change later.
type MemberSnapshot struct {
	UID   string `bson:"uid" json:"uid"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// ProposalSnapshot freezes the approved proposal the request is about.
type ProposalSnapshot struct {
	ProposalID string `bson:"proposal_id" json:"proposalID"`
	Title      string `bson:"title" json:"title"`
	Field      string `bson:"field" json:"field"`
	Client     string `bson:"client" json:"client"`
}

// AdviserRequest is a pending match offer from a student group to a
// prospective adviser. Only that adviser resolves it; acceptance stamps the
// adviser identity onto the approved proposal.
type AdviserRequest struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdviserUID       string             `bson:"adviser_uid" json:"adviserUID"`
	GroupID          string             `bson:"group_id" json:"groupID"`
	Status           string             `bson:"status" json:"status"`
	Members          []MemberSnapshot   `bson:"members" json:"members"`
	ApprovedProposal ProposalSnapshot   `bson:"approved_proposal" json:"approvedProposal"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	ResolvedAt       *time.Time         `bson:"resolved_at,omitempty" json:"resolvedAt,omitempty"`
}

type CreateRequestRequest struct {
	GroupID    string `json:"groupID"`
	AdviserUID string `json:"adviserUID"`
}
