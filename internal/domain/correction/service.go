package correction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhisvet/vetting/internal/domain/claims"
)

// ErrInvalidInput marks a malformed correction payload. It is rejected
// before any storage access.
var ErrInvalidInput = errors.New("invalid corrections")

// DefaultUser is recorded when the caller supplies no user id.
const DefaultUser = "system"

// TxRunner runs a function inside one transaction. db.Runner satisfies it.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service applies reviewer corrections to claim items and records one
// audit row per changed field. It never re-runs validation; that is the
// caller's decision.
type Service struct {
	items  claims.ItemRepository
	audit  AuditRepository
	tx     TxRunner
	logger zerolog.Logger
}

func NewService(items claims.ItemRepository, audit AuditRepository, tx TxRunner, logger zerolog.Logger) *Service {
	return &Service{items: items, audit: audit, tx: tx, logger: logger}
}

// fieldChange is one validated correction, with the value both in its
// storage form and as the text the audit row records.
type fieldChange struct {
	field string
	value any
	text  string
}

// Apply validates corrections against the field allow-list, updates the
// item, and appends the audit trail — update and audit rows commit or
// roll back together. Concurrent corrections to the same item are
// last-writer-wins; there is no expected-old-value precondition.
func (s *Service) Apply(ctx context.Context, itemID uuid.UUID, corrections map[string]any, user, reason string) error {
	changes, err := validateCorrections(corrections)
	if err != nil {
		return err
	}
	if user == "" {
		user = DefaultUser
	}

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	fields := make(map[string]any, len(changes))
	for _, ch := range changes {
		fields[ch.field] = ch.value
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.items.UpdateItemFields(ctx, itemID, fields); err != nil {
			return err
		}
		for _, ch := range changes {
			rec := &AuditRecord{
				ItemID:   itemID,
				Field:    ch.field,
				OldValue: item.FieldValue(ch.field),
				NewValue: ch.text,
				User:     user,
				Reason:   reason,
			}
			if err := s.audit.Insert(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("item_id", itemID.String()).
		Int("fields", len(changes)).
		Str("user", user).
		Msg("correction applied")
	return nil
}

// AuditTrail returns the audit rows for an item, oldest first.
func (s *Service) AuditTrail(ctx context.Context, itemID uuid.UUID) ([]*AuditRecord, error) {
	return s.audit.ListByItem(ctx, itemID)
}

// validateCorrections enforces the non-empty and allow-list contract and
// normalizes values. Changes come back in the fixed field order so audit
// rows are deterministic.
func validateCorrections(corrections map[string]any) ([]fieldChange, error) {
	if len(corrections) == 0 {
		return nil, fmt.Errorf("%w: corrections object required", ErrInvalidInput)
	}
	for f := range corrections {
		if !claims.IsCorrectable(f) {
			return nil, fmt.Errorf("%w: field %q is not correctable", ErrInvalidInput, f)
		}
	}
	var changes []fieldChange
	for _, f := range claims.CorrectableFields() {
		v, ok := corrections[f]
		if !ok {
			continue
		}
		ch, err := normalize(f, v)
		if err != nil {
			return nil, err
		}
		changes = append(changes, ch)
	}
	return changes, nil
}

func normalize(field string, v any) (fieldChange, error) {
	if field == "quantity" {
		switch n := v.(type) {
		case int:
			return fieldChange{field: field, value: n, text: strconv.Itoa(n)}, nil
		case float64:
			if n != math.Trunc(n) {
				return fieldChange{}, fmt.Errorf("%w: quantity must be a whole number", ErrInvalidInput)
			}
			q := int(n)
			return fieldChange{field: field, value: q, text: strconv.Itoa(q)}, nil
		default:
			return fieldChange{}, fmt.Errorf("%w: quantity must be a number", ErrInvalidInput)
		}
	}
	s, ok := v.(string)
	if !ok {
		return fieldChange{}, fmt.Errorf("%w: field %q must be a string", ErrInvalidInput, field)
	}
	return fieldChange{field: field, value: s, text: s}, nil
}
