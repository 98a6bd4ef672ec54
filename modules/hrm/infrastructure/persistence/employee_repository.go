package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/infrastructure/persistence/models"
	"github.com/hrgate/hrgate/pkg/composables"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmployeeExists is returned when an insert hits the per-tenant
	// email or code uniqueness constraint.
	ErrEmployeeExists = errors.New("employee already exists")
)

const (
	employeeFindQuery = `
		SELECT id, tenant_id, code, first_name, last_name, middle_name, email, phone,
		       birth_date, gender, marital_status, employment_type, department_id,
		       position, salary::text, hire_date, created_at, updated_at
		FROM employees`

	uniqueViolationCode = "23505"
)

type PgEmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &PgEmployeeRepository{}
}

func (r *PgEmployeeRepository) Count(ctx context.Context) (int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE tenant_id = $1`, tenantID.String()).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count employees")
	}
	return count, nil
}

func (r *PgEmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryEmployees(ctx, employeeFindQuery+` WHERE tenant_id = $1 ORDER BY id`, tenantID.String())
}

func (r *PgEmployeeRepository) GetPaginated(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	if params == nil {
		params = &employee.FindParams{}
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	query := employeeFindQuery + ` WHERE tenant_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.queryEmployees(ctx, query, tenantID.String(), limit, offset)
}

func (r *PgEmployeeRepository) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := r.queryEmployees(ctx, employeeFindQuery+` WHERE tenant_id = $1 AND id = $2`, tenantID.String(), int64(id))
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, ErrEmployeeNotFound
	}
	return employees[0], nil
}

func (r *PgEmployeeRepository) FindByEmails(ctx context.Context, emails []string) ([]employee.Employee, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	lowered := make([]string, 0, len(emails))
	for _, email := range emails {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(email)))
	}
	query := employeeFindQuery + ` WHERE tenant_id = $1 AND lower(email) = ANY($2) ORDER BY id`
	return r.queryEmployees(ctx, query, tenantID.String(), lowered)
}

func (r *PgEmployeeRepository) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO employees (
			tenant_id, code, first_name, last_name, middle_name, email, phone,
			birth_date, gender, marital_status, employment_type, department_id,
			position, salary, hire_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	var middleName any
	if data.MiddleName() != "" {
		middleName = data.MiddleName()
	}

	var newID int64
	if err := tx.QueryRow(
		ctx,
		query,
		tenantID.String(),
		data.Code(),
		data.FirstName(),
		data.LastName(),
		middleName,
		strings.ToLower(data.Email()),
		data.Phone(),
		data.BirthDate(),
		string(data.Gender()),
		string(data.MaritalStatus()),
		string(data.EmploymentType()),
		int64(data.DepartmentID()),
		data.Position(),
		data.Salary().String(),
		data.HireDate(),
		data.CreatedAt(),
		data.UpdatedAt(),
	).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeExists, data.Email())
		}
		return nil, errors.Wrap(err, "failed to create employee")
	}

	return r.GetByID(ctx, uint(newID))
}

func (r *PgEmployeeRepository) queryEmployees(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var m models.Employee
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.Code,
			&m.FirstName,
			&m.LastName,
			&m.MiddleName,
			&m.Email,
			&m.Phone,
			&m.BirthDate,
			&m.Gender,
			&m.MaritalStatus,
			&m.EmploymentType,
			&m.DepartmentID,
			&m.Position,
			&m.Salary,
			&m.HireDate,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan employee row")
		}
		entity, err := toDomainEmployee(&m)
		if err != nil {
			return nil, err
		}
		employees = append(employees, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return employees, nil
}
