package claims

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	items ItemRepository
}

func NewService(items ItemRepository) *Service {
	return &Service{items: items}
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*ClaimItem, error) {
	return s.items.GetItem(ctx, id)
}

func (s *Service) ListItemsByClaim(ctx context.Context, claimID uuid.UUID) ([]*ClaimItem, error) {
	return s.items.ListItemsByClaim(ctx, claimID)
}
