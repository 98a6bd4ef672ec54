package sequence

import (
	"context"

	"github.com/go-faster/errors"
)

// EntityClass names one per-tenant counter.
type EntityClass string

const ClassEmployee EntityClass = "employee"

// ErrStorageUnavailable signals an infrastructure failure; callers must treat
// it as fatal and never fall back to a locally computed value.
var ErrStorageUnavailable = errors.New("sequence storage unavailable")

// Allocator hands out strictly increasing numbers per (tenant, entity class).
// The tenant is taken from the context. No other component may touch the
// counter storage directly.
type Allocator interface {
	// Allocate atomically increments the counter and returns the new value.
	// Concurrent callers never observe the same value and no value is
	// skipped by the allocator itself; a value handed out for a row that
	// later fails to persist is burned permanently.
	Allocate(ctx context.Context, class EntityClass) (int64, error)

	// Peek returns the value the next Allocate would return without
	// reserving it. A concurrent Allocate invalidates the preview
	// immediately, so it is suitable for UI display only.
	Peek(ctx context.Context, class EntityClass) (int64, error)
}
