package vetting

import "github.com/nhisvet/vetting/internal/domain/claims"

// Issue codes flagged by the rule engine.
const (
	CodeInvalidNHISID       = "INVALID_NHIS_ID"
	CodeGDRGAgeMismatch     = "GDRG_AGE_MISMATCH"
	CodeNotCovered          = "NOT_COVERED"
	CodeInactiveMember      = "INACTIVE_MEMBER"
	CodeDuplicateItem       = "DUPLICATE_ITEM"
	CodeMissingMedCode      = "MISSING_MED_CODE"
	CodeOversupply          = "OVERSUPPLY"
	CodeAgeMedMismatch      = "AGE_MED_MISMATCH"
	CodeAgeMedAdultOnly     = "AGE_MED_ADULTONLY"
	CodeQtyMismatch         = "QTY_MISMATCH"
	CodeTreatmentDxMismatch = "TREATMENT_DIAGNOSIS_MISMATCH"
)

// Issue is one finding against a claim item. Issues are produced fresh
// on every validation run and never persisted.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ItemIssues pairs an item with the issues flagged on it. Items with no
// issues never appear in a result.
type ItemIssues struct {
	Item   *claims.ClaimItem `json:"item"`
	Issues []Issue           `json:"issues"`
}
