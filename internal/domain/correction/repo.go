package correction

import (
	"context"

	"github.com/google/uuid"
)

type AuditRepository interface {
	Insert(ctx context.Context, rec *AuditRecord) error
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*AuditRecord, error)
}
