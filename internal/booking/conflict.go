package booking

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Covers all four relations: a starting inside b,
// a ending inside b, a containing b, and b containing a. Touching endpoints
// do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DetectConflict returns the first booking in mirror order that shares the
// candidate's room, has an id different from excludeID, and overlaps the
// candidate's interval. Returns nil when the slot is free. excludeID carries
// the candidate's own id on edits so a booking never conflicts with itself.
func DetectConflict(candidate Booking, existing []Booking, excludeID primitive.ObjectID) *Booking {
	for i := range existing {
		b := &existing[i]
		if b.Room != candidate.Room {
			continue
		}
		if !excludeID.IsZero() && b.ID == excludeID {
			continue
		}
		if overlaps(candidate.Start, candidate.End, b.Start, b.End) {
			return b
		}
	}
	return nil
}
