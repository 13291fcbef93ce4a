package reference

// BenefitCoverage maps to the benefit_list table.
type BenefitCoverage struct {
	Code      string `db:"code" json:"code"`
	IsCovered bool   `db:"is_covered" json:"is_covered"`
}

// MedicineRule maps to the medicine_rules table. MaxQty and MaxAgeYears
// are nil when the tariff sets no limit.
type MedicineRule struct {
	Code        string `db:"code" json:"code"`
	MaxQty      *int   `db:"max_qty" json:"max_qty,omitempty"`
	MaxAgeYears *int   `db:"max_age_years" json:"max_age_years,omitempty"`
	AdultOnly   bool   `db:"adult_only" json:"adult_only"`
}

// DxTxMapping maps to the dx_tx_map table. Recommended is a free-text
// list of treatment codes for the diagnosis.
type DxTxMapping struct {
	ICD         string `db:"icd" json:"icd"`
	Recommended string `db:"recommended" json:"recommended"`
}

// MemberStatus maps to the member_status table.
type MemberStatus struct {
	NHISID string `db:"nhis_id" json:"nhis_id"`
	Status string `db:"status" json:"status"`
}

// LookupState distinguishes a hit, a clean miss, and a broken lookup.
// Validation treats Unknown and Fault identically (the dependent check
// is skipped), but callers and tests can tell them apart.
type LookupState int

const (
	StateFound LookupState = iota
	StateUnknown
	StateFault
)

// Result is the outcome of a single reference lookup. Rec is non-nil
// only when State is StateFound; Err is non-nil only for StateFault.
type Result[T any] struct {
	State LookupState
	Rec   *T
	Err   error
}

func found[T any](rec *T) Result[T]    { return Result[T]{State: StateFound, Rec: rec} }
func unknown[T any]() Result[T]        { return Result[T]{State: StateUnknown} }
func fault[T any](err error) Result[T] { return Result[T]{State: StateFault, Err: err} }
