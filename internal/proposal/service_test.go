package proposal

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	proposals map[primitive.ObjectID]*Proposal
}

func newFakeStore() *fakeStore {
	return &fakeStore{proposals: make(map[primitive.ObjectID]*Proposal)}
}

func (f *fakeStore) Create(ctx context.Context, p *Proposal) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.proposals[p.ID] = p
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Proposal, error) {
	return f.proposals[id], nil
}

func (f *fakeStore) FindByGroup(ctx context.Context, groupID string) ([]*Proposal, error) {
	var out []*Proposal
	for _, p := range f.proposals {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByStatus(ctx context.Context, status string) ([]*Proposal, error) {
	var out []*Proposal
	for _, p := range f.proposals {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindAcceptedByGroup(ctx context.Context, groupID string) (*Proposal, error) {
	for _, p := range f.proposals {
		if p.GroupID == groupID && p.Status == StatusAccepted {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Update(ctx context.Context, p *Proposal) error {
	if _, ok := f.proposals[p.ID]; !ok {
		return errors.New("proposal not found")
	}
	f.proposals[p.ID] = p
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.proposals[id]; !ok {
		return errors.New("proposal not found")
	}
	delete(f.proposals, id)
	return nil
}

func TestProposalLifecycle(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	ctx := context.Background()

	p, err := svc.CreateDraft(ctx, CreateProposalRequest{
		Title: "Smart Irrigation", Description: "IoT-driven watering", Client: "City Farm",
		Field: "Embedded Systems", GroupID: "4",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Status != StatusDraft {
		t.Fatalf("new proposal should be a draft, got %q", p.Status)
	}

	if _, err := svc.Accept(ctx, p.ID); err == nil {
		t.Fatal("accepting a draft should fail")
	}

	if _, err := svc.Submit(ctx, p.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Submit(ctx, p.ID); err == nil {
		t.Fatal("double submit should fail")
	}

	accepted, err := svc.Accept(ctx, p.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %q", accepted.Status)
	}

	got, err := svc.AcceptedForGroup(ctx, "4")
	if err != nil || got == nil || got.ID != p.ID {
		t.Fatalf("accepted proposal not found for group: %v %+v", err, got)
	}
}

func TestRejectCarriesReason(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	ctx := context.Background()

	p, _ := svc.CreateDraft(ctx, CreateProposalRequest{Title: "X", GroupID: "4"})
	svc.Submit(ctx, p.ID)

	rejected, err := svc.Reject(ctx, p.ID, "scope too broad")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != StatusRejected || rejected.RejectionReason != "scope too broad" {
		t.Fatalf("rejection state wrong: %+v", rejected)
	}
}

func TestOneAcceptedProposalPerGroup(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	ctx := context.Background()

	first, _ := svc.CreateDraft(ctx, CreateProposalRequest{Title: "A", GroupID: "4"})
	svc.Submit(ctx, first.ID)
	if _, err := svc.Accept(ctx, first.ID); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	second, _ := svc.CreateDraft(ctx, CreateProposalRequest{Title: "B", GroupID: "4"})
	svc.Submit(ctx, second.ID)
	if _, err := svc.Accept(ctx, second.ID); err == nil {
		t.Fatal("second accepted proposal for the same group should be refused")
	}
}

func TestCreateDraftValidation(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	ctx := context.Background()

	if _, err := svc.CreateDraft(ctx, CreateProposalRequest{GroupID: "4"}); err == nil {
		t.Fatal("missing title accepted")
	}
	if _, err := svc.CreateDraft(ctx, CreateProposalRequest{Title: "X"}); err == nil {
		t.Fatal("missing group accepted")
	}
}

func TestAssignAdviserOnlyOnAccepted(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	ctx := context.Background()

	p, _ := svc.CreateDraft(ctx, CreateProposalRequest{Title: "X", GroupID: "4"})
	if err := svc.AssignAdviser(ctx, p.ID, "adv-1", "Dr. Gray"); err == nil {
		t.Fatal("adviser assigned to a draft")
	}

	svc.Submit(ctx, p.ID)
	svc.Accept(ctx, p.ID)
	if err := svc.AssignAdviser(ctx, p.ID, "adv-1", "Dr. Gray"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	got, _ := svc.AcceptedForGroup(ctx, "4")
	if got.AdviserUID != "adv-1" || got.Adviser != "Dr. Gray" {
		t.Fatalf("adviser identity not stamped: %+v", got)
	}
}

func TestCommentDoesNotChangeStatus(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	ctx := context.Background()

	p, _ := svc.CreateDraft(ctx, CreateProposalRequest{Title: "X", GroupID: "4"})
	svc.Submit(ctx, p.ID)

	commented, err := svc.Comment(ctx, p.ID, "tighten the scope")
	if err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	if commented.Comment != "tighten the scope" || commented.Status != StatusSubmitted {
		t.Fatalf("comment state wrong: %+v", commented)
	}
}
