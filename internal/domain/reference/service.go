package reference

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Service wraps the repository with the lookup contract the validation
// engine relies on: a miss is never an error, and a broken lookup is
// reported as a Fault result rather than propagated.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func resolve[T any](s *Service, what, key string, rec *T, err error) Result[T] {
	if err == nil {
		return found(rec)
	}
	if errors.Is(err, ErrNotFound) {
		return unknown[T]()
	}
	s.logger.Warn().Err(err).Str("lookup", what).Str("key", key).Msg("reference lookup failed")
	return fault[T](err)
}

func (s *Service) Coverage(ctx context.Context, code string) Result[BenefitCoverage] {
	rec, err := s.repo.GetCoverage(ctx, code)
	return resolve(s, "coverage", code, rec, err)
}

func (s *Service) Medicine(ctx context.Context, code string) Result[MedicineRule] {
	rec, err := s.repo.GetMedicineRule(ctx, code)
	return resolve(s, "medicine", code, rec, err)
}

func (s *Service) Recommended(ctx context.Context, icd string) Result[DxTxMapping] {
	rec, err := s.repo.GetDxMapping(ctx, icd)
	return resolve(s, "dx", icd, rec, err)
}

func (s *Service) Member(ctx context.Context, nhisID string) Result[MemberStatus] {
	rec, err := s.repo.GetMemberStatus(ctx, nhisID)
	return resolve(s, "member", nhisID, rec, err)
}

// List accessors back the sync pull endpoint; faults surface here.

func (s *Service) ListCoverage(ctx context.Context) ([]*BenefitCoverage, error) {
	return s.repo.ListCoverage(ctx)
}

func (s *Service) ListMedicineRules(ctx context.Context) ([]*MedicineRule, error) {
	return s.repo.ListMedicineRules(ctx)
}

func (s *Service) ListDxMappings(ctx context.Context) ([]*DxTxMapping, error) {
	return s.repo.ListDxMappings(ctx)
}
