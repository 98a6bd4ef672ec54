package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
	"github.com/hrgate/hrgate/pkg/composables"
)

// PgSequenceRepository implements sequence.Allocator on top of a per-tenant
// counter row. The increment is a single upsert statement so the
// read-modify-write is atomic at the storage level; correctness does not
// depend on application locks and therefore survives multiple service
// instances.
type PgSequenceRepository struct{}

func NewSequenceRepository() sequence.Allocator {
	return &PgSequenceRepository{}
}

func (r *PgSequenceRepository) Allocate(ctx context.Context, class sequence.EntityClass) (int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(sequence.ErrStorageUnavailable, err.Error())
	}

	query := `
		INSERT INTO entity_sequences (tenant_id, entity_class, seq, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (tenant_id, entity_class)
		DO UPDATE SET seq = entity_sequences.seq + 1, updated_at = now()
		RETURNING seq
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, tenantID.String(), string(class)).Scan(&seq); err != nil {
		return 0, errors.Wrap(sequence.ErrStorageUnavailable, err.Error())
	}
	return seq, nil
}

func (r *PgSequenceRepository) Peek(ctx context.Context, class sequence.EntityClass) (int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(sequence.ErrStorageUnavailable, err.Error())
	}

	var seq int64
	query := `SELECT seq FROM entity_sequences WHERE tenant_id = $1 AND entity_class = $2`
	if err := tx.QueryRow(ctx, query, tenantID.String(), string(class)).Scan(&seq); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Counter is created lazily on first allocation.
			return 1, nil
		}
		return 0, errors.Wrap(sequence.ErrStorageUnavailable, err.Error())
	}
	return seq + 1, nil
}
