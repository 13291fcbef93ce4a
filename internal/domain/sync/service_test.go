package sync

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhisvet/vetting/internal/domain/claims"
	"github.com/nhisvet/vetting/internal/domain/reference"
)

// -- Mocks --

type mockStore struct {
	claims   []*claims.Claim
	items    []*claims.ClaimItem
	failWith error
}

func (m *mockStore) CreateClaim(_ context.Context, cl *claims.Claim) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.claims = append(m.claims, cl)
	return nil
}

func (m *mockStore) AddItem(_ context.Context, item *claims.ClaimItem) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.items = append(m.items, item)
	return nil
}

type mockLists struct {
	benefits  []*reference.BenefitCoverage
	medicines []*reference.MedicineRule
	mappings  []*reference.DxTxMapping
	failWith  error
}

func (m *mockLists) ListCoverage(_ context.Context) ([]*reference.BenefitCoverage, error) {
	return m.benefits, m.failWith
}

func (m *mockLists) ListMedicineRules(_ context.Context) ([]*reference.MedicineRule, error) {
	return m.medicines, m.failWith
}

func (m *mockLists) ListDxMappings(_ context.Context) ([]*reference.DxTxMapping, error) {
	return m.mappings, m.failWith
}

type mockTx struct {
	store     *mockStore
	commits   int
	rollbacks int
}

func (m *mockTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	claimsLen, itemsLen := len(m.store.claims), len(m.store.items)
	if err := fn(ctx); err != nil {
		m.store.claims = m.store.claims[:claimsLen]
		m.store.items = m.store.items[:itemsLen]
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

func newTestService(store *mockStore, lists *mockLists) (*Service, *mockTx) {
	tx := &mockTx{store: store}
	return NewService(store, lists, tx, zerolog.New(os.Stderr)), tx
}

// -- Tests --

func TestPush(t *testing.T) {
	store := &mockStore{}
	svc, tx := newTestService(store, &mockLists{})

	batch := []ClaimBatch{
		{
			Claim: claims.Claim{FacilityID: "FAC-1"},
			Items: []*claims.ClaimItem{
				{NHISID: "12345", Code: "MED-1"},
				{NHISID: "12345", Code: "MED-2"},
			},
		},
		{Claim: claims.Claim{FacilityID: "FAC-2"}},
	}
	received, err := svc.Push(context.Background(), batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received != 2 {
		t.Errorf("expected received=2, got %d", received)
	}
	if len(store.claims) != 2 || len(store.items) != 2 {
		t.Errorf("expected 2 claims and 2 items stored, got %d/%d", len(store.claims), len(store.items))
	}
	for i, item := range store.items {
		if item.ClaimID == uuid.Nil {
			t.Error("items must be attached to their claim")
		}
		if item.Seq != i+1 {
			t.Errorf("expected seq %d, got %d", i+1, item.Seq)
		}
	}
	if tx.commits != 1 {
		t.Errorf("expected one commit, got %d", tx.commits)
	}
}

func TestPush_Empty(t *testing.T) {
	store := &mockStore{}
	svc, tx := newTestService(store, &mockLists{})

	received, err := svc.Push(context.Background(), nil)
	if err != nil || received != 0 {
		t.Errorf("expected 0 received, got %d, %v", received, err)
	}
	if tx.commits != 0 {
		t.Error("empty push must not open a transaction")
	}
}

func TestPush_StoreFaultRollsBack(t *testing.T) {
	store := &mockStore{failWith: errors.New("disk full")}
	svc, tx := newTestService(store, &mockLists{})

	_, err := svc.Push(context.Background(), []ClaimBatch{{Claim: claims.Claim{}}})
	if err == nil {
		t.Fatal("expected storage fault to surface")
	}
	if tx.rollbacks != 1 || len(store.claims) != 0 {
		t.Error("batch must roll back on failure")
	}
}

func TestPull(t *testing.T) {
	lists := &mockLists{
		benefits:  []*reference.BenefitCoverage{{Code: "BEN-1", IsCovered: true}},
		medicines: []*reference.MedicineRule{{Code: "MED-1"}},
		mappings:  []*reference.DxTxMapping{{ICD: "A09", Recommended: "ORS"}},
	}
	svc, _ := newTestService(&mockStore{}, lists)

	snap, err := svc.Pull(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.BenefitList) != 1 || len(snap.MedicineRules) != 1 || len(snap.DxTxMap) != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestPull_EmptyTablesAreArrays(t *testing.T) {
	svc, _ := newTestService(&mockStore{}, &mockLists{})

	snap, err := svc.Pull(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.BenefitList == nil || snap.MedicineRules == nil || snap.DxTxMap == nil {
		t.Error("empty tables must serialize as arrays, not null")
	}
}

func TestPull_Fault(t *testing.T) {
	svc, _ := newTestService(&mockStore{}, &mockLists{failWith: errors.New("db down")})
	if _, err := svc.Pull(context.Background()); err == nil {
		t.Error("expected list fault to surface")
	}
}
