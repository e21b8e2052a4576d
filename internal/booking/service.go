package booking

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the write side of the booking collection; the mirror covers reads.
type Store interface {
	Insert(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ConflictSource provides the bookings a candidate is checked against.
type ConflictSource interface {
	Bookings() []Booking
}

// Service mediates all booking creation, edit and deletion.
type Service struct {
	store  Store
	mirror ConflictSource
	events EventSink
}

func NewService(repo *BookingRepository, mirror *Mirror) *Service {
	return &Service{store: repo, mirror: mirror, events: LogSink{}}
}

// NewServiceWith wires explicit collaborators; used by tests.
func NewServiceWith(store Store, mirror ConflictSource, events EventSink) *Service {
	return &Service{store: store, mirror: mirror, events: events}
}

// Save validates the candidate, checks it against the in-memory mirror and
// persists it. The conflict check deliberately reads the mirror rather than
// the server: two sessions saving at once can slip past each other and the
// last write wins, matching the system's accepted consistency model. Callers
// see the new booking only once the change stream delivers it.
func (s *Service) Save(ctx context.Context, candidate Booking) (*Booking, error) {
	if candidate.Room == "" || !ValidRoom(candidate.Room) {
		return nil, &ValidationError{Field: "room"}
	}
	if candidate.GroupID == "" {
		return nil, &ValidationError{Field: "group"}
	}
	if !candidate.End.After(candidate.Start) {
		return nil, &ValidationError{Field: "end"}
	}

	candidate.Title = candidate.Room + " - " + candidate.GroupID

	if conflict := DetectConflict(candidate, s.mirror.Bookings(), candidate.ID); conflict != nil {
		err := &ConflictError{Conflicting: *conflict}
		s.events.Publish(Event{Kind: "failure", Message: err.Error()})
		return nil, err
	}

	var err error
	if candidate.ID.IsZero() {
		err = s.store.Insert(ctx, &candidate)
	} else {
		err = s.store.Update(ctx, &candidate)
	}
	if err != nil {
		log.Println("Booking save failed:", err)
		s.events.Publish(Event{Kind: "failure", Message: "failed to save booking"})
		return nil, err
	}

	s.events.Publish(Event{Kind: "success", Message: "booking saved: " + candidate.Title})
	return &candidate, nil
}

// Delete removes a booking by id. No conflict pre-check.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		log.Println("Booking delete failed:", err)
		s.events.Publish(Event{Kind: "failure", Message: "failed to delete booking"})
		return err
	}
	s.events.Publish(Event{Kind: "success", Message: "booking deleted"})
	return nil
}
