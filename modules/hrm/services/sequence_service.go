package services

import (
	"context"

	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
)

// SequenceService fronts the per-tenant counters. It is the only path the
// rest of the application uses to reach them, and it implements
// sequence.Allocator itself so pipeline components can take it directly.
type SequenceService struct {
	repo sequence.Allocator
}

func NewSequenceService(repo sequence.Allocator) *SequenceService {
	return &SequenceService{repo: repo}
}

func (s *SequenceService) Allocate(ctx context.Context, class sequence.EntityClass) (int64, error) {
	return s.repo.Allocate(ctx, class)
}

func (s *SequenceService) Peek(ctx context.Context, class sequence.EntityClass) (int64, error) {
	return s.repo.Peek(ctx, class)
}

var _ sequence.Allocator = (*SequenceService)(nil)
