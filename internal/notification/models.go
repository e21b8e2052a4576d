package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a scheduled email reminder, typically announcing an
// upcoming defense slot to the affected groups or roles.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message   string             `bson:"message" json:"message"`
	SendTime  time.Time          `bson:"send_time" json:"sendTime"`
	Roles     []string           `bson:"roles" json:"roles"`
	GroupIDs  []string           `bson:"group_ids" json:"groupIDs"`
	Status    string             `bson:"status" json:"status"` // scheduled, sent, failed
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
	SentTo    []string           `bson:"sent_to" json:"sentTo"`
}
