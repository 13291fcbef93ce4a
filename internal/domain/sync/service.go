package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhisvet/vetting/internal/domain/claims"
	"github.com/nhisvet/vetting/internal/domain/reference"
)

// ItemStore is the slice of claim persistence the push side needs.
// claims.ItemRepository satisfies it.
type ItemStore interface {
	CreateClaim(ctx context.Context, cl *claims.Claim) error
	AddItem(ctx context.Context, item *claims.ClaimItem) error
}

// ReferenceLists is the read surface the pull side serves from.
// reference.Service satisfies it.
type ReferenceLists interface {
	ListCoverage(ctx context.Context) ([]*reference.BenefitCoverage, error)
	ListMedicineRules(ctx context.Context) ([]*reference.MedicineRule, error)
	ListDxMappings(ctx context.Context) ([]*reference.DxTxMapping, error)
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ClaimBatch is one claim with its items as facilities push them.
type ClaimBatch struct {
	Claim claims.Claim        `json:"claim"`
	Items []*claims.ClaimItem `json:"items"`
}

// Snapshot is the full reference-table contents clients cache locally.
type Snapshot struct {
	BenefitList   []*reference.BenefitCoverage `json:"benefit_list"`
	MedicineRules []*reference.MedicineRule    `json:"medicine_rules"`
	DxTxMap       []*reference.DxTxMapping     `json:"dx_tx_map"`
}

// Service implements the push/pull boundary between facility nodes and
// the central store. Validation and correction logic are unaware of it.
type Service struct {
	store  ItemStore
	refs   ReferenceLists
	tx     TxRunner
	logger zerolog.Logger
}

func NewService(store ItemStore, refs ReferenceLists, tx TxRunner, logger zerolog.Logger) *Service {
	return &Service{store: store, refs: refs, tx: tx, logger: logger}
}

// Push persists a batch of claims and reports how many were received.
// The whole batch commits or rolls back together.
func (s *Service) Push(ctx context.Context, batch []ClaimBatch) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		for i := range batch {
			cl := batch[i].Claim
			if cl.ID == uuid.Nil {
				cl.ID = uuid.New()
			}
			if err := s.store.CreateClaim(ctx, &cl); err != nil {
				return fmt.Errorf("store claim %s: %w", cl.ID, err)
			}
			for j, item := range batch[i].Items {
				item.ClaimID = cl.ID
				if item.Seq == 0 {
					item.Seq = j + 1
				}
				if err := s.store.AddItem(ctx, item); err != nil {
					return fmt.Errorf("store item %d of claim %s: %w", j, cl.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int("claims", len(batch)).Msg("sync push received")
	return len(batch), nil
}

// Pull returns the current reference tables for local caching.
func (s *Service) Pull(ctx context.Context) (*Snapshot, error) {
	benefits, err := s.refs.ListCoverage(ctx)
	if err != nil {
		return nil, fmt.Errorf("list benefit coverage: %w", err)
	}
	medicines, err := s.refs.ListMedicineRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list medicine rules: %w", err)
	}
	mappings, err := s.refs.ListDxMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dx mappings: %w", err)
	}
	if benefits == nil {
		benefits = []*reference.BenefitCoverage{}
	}
	if medicines == nil {
		medicines = []*reference.MedicineRule{}
	}
	if mappings == nil {
		mappings = []*reference.DxTxMapping{}
	}
	return &Snapshot{BenefitList: benefits, MedicineRules: medicines, DxTxMap: mappings}, nil
}
