package booking

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when an edit or delete targets a booking id that no
// longer exists in the collection.
var ErrNotFound = errors.New("booking not found")

// Booking is a room+time reservation tied to a student group. Title is derived
// as "room - group" at save time. Intervals are half-open [start, end).
type Booking struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Room    string             `bson:"room" json:"room"`
	Start   time.Time          `bson:"start" json:"start"`
	End     time.Time          `bson:"end" json:"end"`
	GroupID string             `bson:"group_id" json:"groupID"`
}

// Rooms is the fixed set of bookable defense rooms. Not user-extensible.
var Rooms = []string{
	"Room-101",
	"Room-102",
	"Room-103",
	"Room-104",
	"Room-105",
}

func ValidRoom(room string) bool {
	for _, r := range Rooms {
		if r == room {
			return true
		}
	}
	return false
}

// ValidationError blocks a save locally before any store write.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing or invalid required field: " + e.Field
}

// ConflictError blocks a save that would overlap an existing booking in the
// same room, naming the colliding entry.
type ConflictError struct {
	Conflicting Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflicts with %q", e.Conflicting.Title)
}
