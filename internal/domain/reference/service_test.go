package reference

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// -- Mock Repository --

type mockRepo struct {
	coverage  map[string]*BenefitCoverage
	medicines map[string]*MedicineRule
	dx        map[string]*DxTxMapping
	members   map[string]*MemberStatus
	failWith  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		coverage:  make(map[string]*BenefitCoverage),
		medicines: make(map[string]*MedicineRule),
		dx:        make(map[string]*DxTxMapping),
		members:   make(map[string]*MemberStatus),
	}
}

func (m *mockRepo) GetCoverage(_ context.Context, code string) (*BenefitCoverage, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if bc, ok := m.coverage[code]; ok {
		return bc, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetMedicineRule(_ context.Context, code string) (*MedicineRule, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if mr, ok := m.medicines[code]; ok {
		return mr, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetDxMapping(_ context.Context, icd string) (*DxTxMapping, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if d, ok := m.dx[icd]; ok {
		return d, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetMemberStatus(_ context.Context, nhisID string) (*MemberStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if ms, ok := m.members[nhisID]; ok {
		return ms, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) ListCoverage(_ context.Context) ([]*BenefitCoverage, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*BenefitCoverage
	for _, bc := range m.coverage {
		out = append(out, bc)
	}
	return out, nil
}

func (m *mockRepo) ListMedicineRules(_ context.Context) ([]*MedicineRule, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*MedicineRule
	for _, mr := range m.medicines {
		out = append(out, mr)
	}
	return out, nil
}

func (m *mockRepo) ListDxMappings(_ context.Context) ([]*DxTxMapping, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*DxTxMapping
	for _, d := range m.dx {
		out = append(out, d)
	}
	return out, nil
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, zerolog.New(os.Stderr))
}

func TestService_Coverage_Found(t *testing.T) {
	repo := newMockRepo()
	repo.coverage["BEN-1"] = &BenefitCoverage{Code: "BEN-1", IsCovered: true}
	svc := newTestService(repo)

	res := svc.Coverage(context.Background(), "BEN-1")
	if res.State != StateFound {
		t.Fatalf("expected StateFound, got %v", res.State)
	}
	if !res.Rec.IsCovered {
		t.Error("expected covered benefit")
	}
}

func TestService_Coverage_Unknown(t *testing.T) {
	svc := newTestService(newMockRepo())
	res := svc.Coverage(context.Background(), "MISSING")
	if res.State != StateUnknown {
		t.Errorf("expected StateUnknown, got %v", res.State)
	}
	if res.Rec != nil || res.Err != nil {
		t.Error("unknown result must carry no record and no error")
	}
}

func TestService_Coverage_Fault(t *testing.T) {
	repo := newMockRepo()
	repo.failWith = errors.New("connection refused")
	svc := newTestService(repo)

	res := svc.Coverage(context.Background(), "BEN-1")
	if res.State != StateFault {
		t.Errorf("expected StateFault, got %v", res.State)
	}
	if res.Err == nil {
		t.Error("fault result must carry the cause")
	}
}

func TestService_Member_Found(t *testing.T) {
	repo := newMockRepo()
	repo.members["12345"] = &MemberStatus{NHISID: "12345", Status: "ACTIVE"}
	svc := newTestService(repo)

	res := svc.Member(context.Background(), "12345")
	if res.State != StateFound || res.Rec.Status != "ACTIVE" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestService_Medicine_Unknown(t *testing.T) {
	svc := newTestService(newMockRepo())
	if res := svc.Medicine(context.Background(), "MED-X"); res.State != StateUnknown {
		t.Errorf("expected StateUnknown, got %v", res.State)
	}
}
