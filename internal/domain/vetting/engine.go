package vetting

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhisvet/vetting/internal/domain/claims"
	"github.com/nhisvet/vetting/internal/domain/reference"
)

// ItemSource loads the items of one claim. claims.Service satisfies it.
type ItemSource interface {
	ListItemsByClaim(ctx context.Context, claimID uuid.UUID) ([]*claims.ClaimItem, error)
}

// Lookups is the read-only reference surface the engine checks against.
// reference.Service satisfies it. A lookup never fails the engine: a
// miss or fault simply means the dependent check does not fire.
type Lookups interface {
	Coverage(ctx context.Context, code string) reference.Result[reference.BenefitCoverage]
	Medicine(ctx context.Context, code string) reference.Result[reference.MedicineRule]
	Recommended(ctx context.Context, icd string) reference.Result[reference.DxTxMapping]
	Member(ctx context.Context, nhisID string) reference.Result[reference.MemberStatus]
}

// Engine runs the vetting rules for a claim. It only reads: reference
// data and items are never mutated, so repeated runs over an unchanged
// claim return identical results.
type Engine struct {
	items  ItemSource
	refs   Lookups
	logger zerolog.Logger
}

func NewEngine(items ItemSource, refs Lookups, logger zerolog.Logger) *Engine {
	return &Engine{items: items, refs: refs, logger: logger}
}

var nhisIDPattern = regexp.MustCompile(`^\d{5}$`)

// Validate evaluates every item of the claim and returns the items that
// have at least one issue, in claim order. Only a failure to load the
// item list is fatal; a fault inside a single check skips that check
// for that item and the run continues.
func (e *Engine) Validate(ctx context.Context, claimID uuid.UUID) ([]ItemIssues, error) {
	items, err := e.items.ListItemsByClaim(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("load claim items: %w", err)
	}

	byPatientVisit := make(map[string][]*claims.ClaimItem)
	for _, it := range items {
		key := it.NHISID + "|" + it.VisitDate
		byPatientVisit[key] = append(byPatientVisit[key], it)
	}

	results := []ItemIssues{}
	for _, it := range items {
		var issues []Issue
		age, ageOK := AgeYears(it.DOB, it.VisitDate)

		issues = append(issues, e.runCheck(ctx, "nhis_id", it, func() []Issue {
			return checkNHISID(it)
		})...)
		issues = append(issues, e.runCheck(ctx, "gdrg_age", it, func() []Issue {
			return checkGDRGAge(it, age, ageOK)
		})...)
		issues = append(issues, e.runCheck(ctx, "coverage", it, func() []Issue {
			return e.checkCoverage(ctx, it)
		})...)
		issues = append(issues, e.runCheck(ctx, "member", it, func() []Issue {
			return e.checkMemberStatus(ctx, it)
		})...)
		issues = append(issues, e.runCheck(ctx, "duplicate", it, func() []Issue {
			return checkDuplicate(it, byPatientVisit)
		})...)
		issues = append(issues, e.runCheck(ctx, "medicine", it, func() []Issue {
			return e.checkMedicine(ctx, it, age, ageOK)
		})...)
		issues = append(issues, e.runCheck(ctx, "quantity", it, func() []Issue {
			return checkQuantity(it)
		})...)
		issues = append(issues, e.runCheck(ctx, "dx_tx", it, func() []Issue {
			return e.checkTreatmentDiagnosis(ctx, it)
		})...)

		if len(issues) > 0 {
			results = append(results, ItemIssues{Item: it, Issues: issues})
		}
	}
	return results, nil
}

// runCheck isolates a single check so a panic inside it degrades to
// "no issue" for this item instead of aborting the whole run.
func (e *Engine) runCheck(_ context.Context, name string, it *claims.ClaimItem, fn func() []Issue) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("check", name).
				Str("item_id", it.ID.String()).
				Interface("panic", r).
				Msg("check skipped after panic")
			issues = nil
		}
	}()
	return fn()
}

func checkNHISID(it *claims.ClaimItem) []Issue {
	if !nhisIDPattern.MatchString(it.NHISID) {
		return []Issue{{Code: CodeInvalidNHISID, Message: "NHIS ID must be 5 digits"}}
	}
	return nil
}

func checkGDRGAge(it *claims.ClaimItem, age int, ageOK bool) []Issue {
	if it.GDRG == "" || !ageOK {
		return nil
	}
	last := strings.ToUpper(it.GDRG[len(it.GDRG)-1:])
	switch {
	case last == "C" && age >= 12:
		return []Issue{{Code: CodeGDRGAgeMismatch, Message: "GDRG ending C expected age < 12"}}
	case last == "A" && age < 12:
		return []Issue{{Code: CodeGDRGAgeMismatch, Message: "GDRG ending A expected age >= 12"}}
	}
	return nil
}

// checkCoverage flags only an explicit not-covered row. Unknown and
// fault lookups are indistinguishable from "no data" here.
func (e *Engine) checkCoverage(ctx context.Context, it *claims.ClaimItem) []Issue {
	res := e.refs.Coverage(ctx, it.Code)
	if res.State == reference.StateFound && !res.Rec.IsCovered {
		return []Issue{{Code: CodeNotCovered, Message: "Benefit not covered under NHIS"}}
	}
	return nil
}

func (e *Engine) checkMemberStatus(ctx context.Context, it *claims.ClaimItem) []Issue {
	res := e.refs.Member(ctx, it.NHISID)
	if res.State == reference.StateFound && res.Rec.Status != "" &&
		!strings.EqualFold(res.Rec.Status, "ACTIVE") {
		return []Issue{{Code: CodeInactiveMember, Message: "Member status not ACTIVE"}}
	}
	return nil
}

func checkDuplicate(it *claims.ClaimItem, byPatientVisit map[string][]*claims.ClaimItem) []Issue {
	group := byPatientVisit[it.NHISID+"|"+it.VisitDate]
	dup := 0
	for _, other := range group {
		if other.Code == it.Code {
			dup++
		}
	}
	if dup > 1 {
		return []Issue{{Code: CodeDuplicateItem, Message: "Duplicate claim/medicine detected for same patient/visit/code"}}
	}
	return nil
}

// checkMedicine runs either the missing-code check or the rule-based
// medicine checks, never both.
func (e *Engine) checkMedicine(ctx context.Context, it *claims.ClaimItem, age int, ageOK bool) []Issue {
	if strings.TrimSpace(it.Code) == "" {
		return []Issue{{Code: CodeMissingMedCode, Message: "Medicine code missing"}}
	}
	res := e.refs.Medicine(ctx, it.Code)
	if res.State != reference.StateFound {
		return nil
	}
	mr := res.Rec
	var issues []Issue
	if mr.MaxQty != nil && *mr.MaxQty > 0 && it.Quantity != nil && *it.Quantity > 0 && *it.Quantity > *mr.MaxQty {
		issues = append(issues, Issue{
			Code:    CodeOversupply,
			Message: fmt.Sprintf("Quantity %d exceeds max %d", *it.Quantity, *mr.MaxQty),
		})
	}
	if mr.MaxAgeYears != nil && *mr.MaxAgeYears >= 0 && ageOK && age > *mr.MaxAgeYears {
		issues = append(issues, Issue{
			Code:    CodeAgeMedMismatch,
			Message: fmt.Sprintf("Medicine %s max age %d", it.Code, *mr.MaxAgeYears),
		})
	}
	if mr.AdultOnly && ageOK && age < 12 {
		issues = append(issues, Issue{
			Code:    CodeAgeMedAdultOnly,
			Message: fmt.Sprintf("Medicine %s for adults only", it.Code),
		})
	}
	return issues
}

func checkQuantity(it *claims.ClaimItem) []Issue {
	est, ok := EstimateQuantity(it.Dose, it.Frequency, it.Duration)
	if !ok || it.Quantity == nil {
		return nil
	}
	if est != *it.Quantity {
		return []Issue{{
			Code:    CodeQtyMismatch,
			Message: fmt.Sprintf("Dispensed %d vs Rx-estimate %d", *it.Quantity, est),
		}}
	}
	return nil
}

func (e *Engine) checkTreatmentDiagnosis(ctx context.Context, it *claims.ClaimItem) []Issue {
	if it.Diagnosis == "" || it.Treatment == "" {
		return nil
	}
	res := e.refs.Recommended(ctx, it.Diagnosis)
	if res.State != reference.StateFound || res.Rec.Recommended == "" {
		return nil
	}
	if !strings.Contains(res.Rec.Recommended, it.Treatment) {
		return []Issue{{Code: CodeTreatmentDxMismatch, Message: "Treatment not in recommended list for diagnosis"}}
	}
	return nil
}
