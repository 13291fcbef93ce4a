package claims

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a claim or claim item does not exist.
var ErrNotFound = errors.New("not found")

type ItemRepository interface {
	GetItem(ctx context.Context, id uuid.UUID) (*ClaimItem, error)
	ListItemsByClaim(ctx context.Context, claimID uuid.UUID) ([]*ClaimItem, error)
	// UpdateItemFields sets exactly the allow-listed fields present in
	// fields and flips the corrected flag. Keys outside the allow-list
	// are ignored; callers validate before reaching the repository.
	UpdateItemFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	CreateClaim(ctx context.Context, cl *Claim) error
	AddItem(ctx context.Context, item *ClaimItem) error
}
