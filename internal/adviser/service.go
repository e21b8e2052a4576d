package adviser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ThesisTrack/internal/auth"
	"ThesisTrack/internal/authz"
	"ThesisTrack/internal/config"
	"ThesisTrack/internal/proposal"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store abstracts the request collection for the service and its tests.
type Store interface {
	Create(ctx context.Context, req *AdviserRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*AdviserRequest, error)
	FindPendingByGroup(ctx context.Context, groupID string) (*AdviserRequest, error)
	FindByAdviser(ctx context.Context, adviserUID string) ([]*AdviserRequest, error)
	FindByGroup(ctx context.Context, groupID string) ([]*AdviserRequest, error)
	Update(ctx context.Context, req *AdviserRequest) error
}

// Service runs the group-to-adviser matching workflow on top of the user and
// proposal services.
type Service struct {
	repo         Store
	users        auth.UserStore
	proposals    *proposal.Service
	emailService *config.EmailService
}

func NewService(repo *RequestRepository, users *auth.UserRepository, proposals *proposal.Service, emailService *config.EmailService) *Service {
	return &Service{repo: repo, users: users, proposals: proposals, emailService: emailService}
}

// NewServiceWith wires explicit collaborators; used by tests.
func NewServiceWith(repo Store, users auth.UserStore, proposals *proposal.Service, emailService *config.EmailService) *Service {
	return &Service{repo: repo, users: users, proposals: proposals, emailService: emailService}
}

// CreateRequest opens a match offer from a group to an adviser. Requires an
// accepted proposal, no other pending request for the group, and a real
// adviser profile. Members and the approved proposal are snapshotted in.
func (s *Service) CreateRequest(ctx context.Context, req CreateRequestRequest) (*AdviserRequest, error) {
	if req.GroupID == "" || req.AdviserUID == "" {
		return nil, errors.New("group and adviser are required")
	}

	adviserUser, err := s.users.FindByID(ctx, req.AdviserUID)
	if err != nil {
		return nil, err
	}
	if adviserUser == nil || adviserUser.Role != authz.RoleAdviser {
		return nil, errors.New("adviser not found")
	}

	approved, err := s.proposals.AcceptedForGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if approved == nil {
		return nil, errors.New("group has no accepted proposal")
	}
	if approved.AdviserUID != "" {
		return nil, errors.New("group already has an adviser")
	}

	pending, err := s.repo.FindPendingByGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, errors.New("group already has a pending adviser request")
	}

	members, err := s.users.FindByGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	snapshot := make([]MemberSnapshot, 0, len(members))
	for _, m := range members {
		snapshot = append(snapshot, MemberSnapshot{
			UID:   m.ID.Hex(),
			Name:  m.Name,
			Email: m.Email,
		})
	}

	request := &AdviserRequest{
		ID:         primitive.NewObjectID(),
		AdviserUID: req.AdviserUID,
		GroupID:    req.GroupID,
		Status:     StatusPending,
		Members:    snapshot,
		ApprovedProposal: ProposalSnapshot{
			ProposalID: approved.ID.Hex(),
			Title:      approved.Title,
			Field:      approved.Field,
			Client:     approved.Client,
		},
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		body := fmt.Sprintf("Group %s requests you as thesis adviser for %q.", req.GroupID, approved.Title)
		if err := s.emailService.SendEmail(adviserUser.Email, "New Adviser Request", body); err != nil {
			log.Println("Adviser request email failed:", err)
		}
	}
	return request, nil
}

// Accept resolves a pending request in the group's favor and stamps the
// adviser onto the approved proposal. Only the addressed adviser may accept.
func (s *Service) Accept(ctx context.Context, requestID primitive.ObjectID, adviserUID string) (*AdviserRequest, error) {
	request, err := s.resolvable(ctx, requestID, adviserUID)
	if err != nil {
		return nil, err
	}

	adviserUser, err := s.users.FindByID(ctx, adviserUID)
	if err != nil {
		return nil, err
	}
	if adviserUser == nil {
		return nil, errors.New("adviser not found")
	}

	proposalID, err := primitive.ObjectIDFromHex(request.ApprovedProposal.ProposalID)
	if err != nil {
		return nil, errors.New("request carries an invalid proposal id")
	}
	if err := s.proposals.AssignAdviser(ctx, proposalID, adviserUID, adviserUser.Name); err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = StatusAccepted
	request.ResolvedAt = &now
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Reject resolves a pending request against the group, freeing it to ask
// another adviser.
func (s *Service) Reject(ctx context.Context, requestID primitive.ObjectID, adviserUID string) (*AdviserRequest, error) {
	request, err := s.resolvable(ctx, requestID, adviserUID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	request.Status = StatusRejected
	request.ResolvedAt = &now
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *Service) resolvable(ctx context.Context, requestID primitive.ObjectID, adviserUID string) (*AdviserRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("adviser request not found")
	}
	if request.AdviserUID != adviserUID {
		return nil, errors.New("request addressed to a different adviser")
	}
	if request.Status != StatusPending {
		return nil, errors.New("request already resolved")
	}
	return request, nil
}

func (s *Service) ListForAdviser(ctx context.Context, adviserUID string) ([]*AdviserRequest, error) {
	return s.repo.FindByAdviser(ctx, adviserUID)
}

func (s *Service) ListForGroup(ctx context.Context, groupID string) ([]*AdviserRequest, error) {
	return s.repo.FindByGroup(ctx, groupID)
}
