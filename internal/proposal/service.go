package proposal

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store abstracts the proposal collection for the service and its tests.
type Store interface {
	Create(ctx context.Context, p *Proposal) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Proposal, error)
	FindByGroup(ctx context.Context, groupID string) ([]*Proposal, error)
	FindByStatus(ctx context.Context, status string) ([]*Proposal, error)
	FindAcceptedByGroup(ctx context.Context, groupID string) (*Proposal, error)
	Update(ctx context.Context, p *Proposal) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Service struct {
	repo Store
}

func NewService(repo *ProposalRepository) *Service {
	return &Service{repo: repo}
}

func NewServiceWithStore(repo Store) *Service {
	return &Service{repo: repo}
}

// CreateDraft starts a proposal for the group in draft status.
func (s *Service) CreateDraft(ctx context.Context, req CreateProposalRequest) (*Proposal, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.GroupID == "" {
		return nil, errors.New("group is required")
	}
	now := time.Now()
	p := &Proposal{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Client:      req.Client,
		Field:       req.Field,
		GroupID:     req.GroupID,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Submit moves a draft into the teacher's review queue.
func (s *Service) Submit(ctx context.Context, id primitive.ObjectID) (*Proposal, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("proposal not found")
	}
	if p.Status != StatusDraft {
		return nil, errors.New("only drafts can be submitted")
	}
	p.Status = StatusSubmitted
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Accept approves a submitted proposal. A group carries at most one accepted
// proposal; accepting a second one is refused.
func (s *Service) Accept(ctx context.Context, id primitive.ObjectID) (*Proposal, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("proposal not found")
	}
	if p.Status != StatusSubmitted {
		return nil, errors.New("only submitted proposals can be accepted")
	}
	existing, err := s.repo.FindAcceptedByGroup(ctx, p.GroupID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("group already has an accepted proposal")
	}
	p.Status = StatusAccepted
	p.RejectionReason = ""
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Reject turns down a submitted proposal with a reason for the group.
func (s *Service) Reject(ctx context.Context, id primitive.ObjectID, reason string) (*Proposal, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("proposal not found")
	}
	if p.Status != StatusSubmitted {
		return nil, errors.New("only submitted proposals can be rejected")
	}
	p.Status = StatusRejected
	p.RejectionReason = reason
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Comment attaches reviewer remarks without changing status.
func (s *Service) Comment(ctx context.Context, id primitive.ObjectID, comment string) (*Proposal, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("proposal not found")
	}
	p.Comment = comment
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]*Proposal, error) {
	return s.repo.FindByGroup(ctx, groupID)
}

func (s *Service) ListSubmitted(ctx context.Context) ([]*Proposal, error) {
	return s.repo.FindByStatus(ctx, StatusSubmitted)
}

// AcceptedForGroup is consumed by adviser matching when snapshotting the
// approved proposal into a request.
func (s *Service) AcceptedForGroup(ctx context.Context, groupID string) (*Proposal, error) {
	return s.repo.FindAcceptedByGroup(ctx, groupID)
}

// AssignAdviser stamps the adviser identity onto an accepted proposal. Invoked
// when the adviser accepts the group's request.
func (s *Service) AssignAdviser(ctx context.Context, id primitive.ObjectID, adviserUID, adviserName string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return errors.New("proposal not found")
	}
	if p.Status != StatusAccepted {
		return errors.New("adviser can only be assigned to an accepted proposal")
	}
	p.AdviserUID = adviserUID
	p.Adviser = adviserName
	p.UpdatedAt = time.Now()
	return s.repo.Update(ctx, p)
}
