package claims

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Claim maps to the claims table. One claim groups the line items a
// facility submitted for a single reimbursement cycle.
type Claim struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FacilityID string    `db:"facility_id" json:"facility_id,omitempty"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ClaimItem maps to the claim_items table. Dates are stored as ISO-8601
// date strings (YYYY-MM-DD) because facilities submit them as text and
// corrections replace them as text.
type ClaimItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ClaimID   uuid.UUID `db:"claim_id" json:"claim_id"`
	Seq       int       `db:"seq" json:"seq"`
	NHISID    string    `db:"nhis_id" json:"nhis_id"`
	DOB       string    `db:"dob" json:"dob,omitempty"`
	VisitDate string    `db:"visit_date" json:"visit_date,omitempty"`
	Code      string    `db:"code" json:"code"`
	Diagnosis string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Treatment string    `db:"treatment" json:"treatment,omitempty"`
	Quantity  *int      `db:"quantity" json:"quantity,omitempty"`
	Dose      string    `db:"dose" json:"dose,omitempty"`
	Frequency string    `db:"frequency" json:"frequency,omitempty"`
	Duration  string    `db:"duration" json:"duration,omitempty"`
	GDRG      string    `db:"gdrg" json:"gdrg,omitempty"`
	Corrected bool      `db:"corrected" json:"corrected"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// correctableFields is the fixed allow-list of item columns a reviewer
// may change, in the order updates are applied. Field names double as
// column names; anything outside this list never reaches SQL.
var correctableFields = []string{
	"nhis_id", "dob", "visit_date", "code", "diagnosis", "treatment",
	"quantity", "dose", "frequency", "duration", "gdrg",
}

var correctableSet = func() map[string]bool {
	m := make(map[string]bool, len(correctableFields))
	for _, f := range correctableFields {
		m[f] = true
	}
	return m
}()

// CorrectableFields returns the allow-listed field names in update order.
func CorrectableFields() []string {
	out := make([]string, len(correctableFields))
	copy(out, correctableFields)
	return out
}

// IsCorrectable reports whether field is on the allow-list.
func IsCorrectable(field string) bool { return correctableSet[field] }

// FieldValue returns the item's current value for an allow-listed field,
// rendered as text the way audit rows store it. Unknown fields yield "".
func (it *ClaimItem) FieldValue(field string) string {
	switch field {
	case "nhis_id":
		return it.NHISID
	case "dob":
		return it.DOB
	case "visit_date":
		return it.VisitDate
	case "code":
		return it.Code
	case "diagnosis":
		return it.Diagnosis
	case "treatment":
		return it.Treatment
	case "quantity":
		if it.Quantity == nil {
			return ""
		}
		return strconv.Itoa(*it.Quantity)
	case "dose":
		return it.Dose
	case "frequency":
		return it.Frequency
	case "duration":
		return it.Duration
	case "gdrg":
		return it.GDRG
	}
	return ""
}
