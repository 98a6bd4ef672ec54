package employee

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrgate/hrgate/pkg/composables"
)

// CreatedEvent is published after an employee is persisted, both for manual
// creation and for each row of a bulk import.
type CreatedEvent struct {
	TenantID uuid.UUID
	Result   Employee
}

func NewCreatedEvent(ctx context.Context, result Employee) (*CreatedEvent, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return &CreatedEvent{
		TenantID: tenantID,
		Result:   result,
	}, nil
}
