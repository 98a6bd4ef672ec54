package bulkimport

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrgate/hrgate/pkg/composables"
)

// ImportCompletedEvent is published once per import call, after ingestion has
// finished or been aborted. Partial outcomes publish too.
type ImportCompletedEvent struct {
	TenantID     uuid.UUID
	TotalRows    int
	SuccessCount int
	FailedCount  int
}

func NewImportCompletedEvent(ctx context.Context, result *UploadResult) (*ImportCompletedEvent, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return &ImportCompletedEvent{
		TenantID:     tenantID,
		TotalRows:    result.TotalRows,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
	}, nil
}
