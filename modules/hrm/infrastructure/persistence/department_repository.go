package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/hrgate/hrgate/modules/hrm/domain/entities/department"
	"github.com/hrgate/hrgate/modules/hrm/infrastructure/persistence/models"
	"github.com/hrgate/hrgate/pkg/composables"
)

var ErrDepartmentNotFound = errors.New("department not found")

const departmentFindQuery = `SELECT id, tenant_id, name, created_at FROM departments`

type PgDepartmentRepository struct{}

func NewDepartmentRepository() department.Repository {
	return &PgDepartmentRepository{}
}

func (r *PgDepartmentRepository) GetAll(ctx context.Context) ([]*department.Department, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryDepartments(ctx, departmentFindQuery+` WHERE tenant_id = $1 ORDER BY name`, tenantID.String())
}

func (r *PgDepartmentRepository) GetByID(ctx context.Context, id uint) (*department.Department, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := r.queryDepartments(ctx, departmentFindQuery+` WHERE tenant_id = $1 AND id = $2`, tenantID.String(), int64(id))
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return nil, ErrDepartmentNotFound
	}
	return departments[0], nil
}

func (r *PgDepartmentRepository) Create(ctx context.Context, data *department.Department) (*department.Department, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var newID int64
	query := `INSERT INTO departments (tenant_id, name, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRow(ctx, query, tenantID.String(), data.Name(), data.CreatedAt()).Scan(&newID); err != nil {
		return nil, errors.Wrap(err, "failed to create department")
	}
	return r.GetByID(ctx, uint(newID))
}

func (r *PgDepartmentRepository) queryDepartments(ctx context.Context, query string, args ...any) ([]*department.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var departments []*department.Department
	for rows.Next() {
		var m models.Department
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan department row")
		}
		entity, err := toDomainDepartment(&m)
		if err != nil {
			return nil, err
		}
		departments = append(departments, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return departments, nil
}
