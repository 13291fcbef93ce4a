package correction

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one row of the corrections_audit table: a single field
// change on a single item. Rows are append-only.
type AuditRecord struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ItemID    uuid.UUID `db:"item_id" json:"item_id"`
	Field     string    `db:"field" json:"field"`
	OldValue  string    `db:"old_value" json:"old_value"`
	NewValue  string    `db:"new_value" json:"new_value"`
	User      string    `db:"user" json:"user"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
