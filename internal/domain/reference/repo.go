package reference

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a reference row is absent.
var ErrNotFound = errors.New("reference record not found")

type Repository interface {
	GetCoverage(ctx context.Context, code string) (*BenefitCoverage, error)
	GetMedicineRule(ctx context.Context, code string) (*MedicineRule, error)
	GetDxMapping(ctx context.Context, icd string) (*DxTxMapping, error)
	GetMemberStatus(ctx context.Context, nhisID string) (*MemberStatus, error)

	ListCoverage(ctx context.Context) ([]*BenefitCoverage, error)
	ListMedicineRules(ctx context.Context) ([]*MedicineRule, error)
	ListDxMappings(ctx context.Context) ([]*DxTxMapping, error)
}
