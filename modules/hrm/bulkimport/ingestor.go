package bulkimport

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
	"github.com/hrgate/hrgate/modules/hrm/infrastructure/persistence"
	"github.com/hrgate/hrgate/pkg/composables"
	"github.com/hrgate/hrgate/pkg/eventbus"
)

// CreatedEmployee is the success record for one ingested row.
type CreatedEmployee struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Ingestor persists eligible rows one by one, in file order, so codes are
// assigned in the same relative order as the source spreadsheet. The batch is
// deliberately non-transactional: each row-create is atomic on its own and a
// single row's failure never aborts the batch.
type Ingestor struct {
	allocator   sequence.Allocator
	employees   employee.Repository
	publisher   eventbus.EventBus
	codePrefix  string
	codePadding int
}

func NewIngestor(
	allocator sequence.Allocator,
	employees employee.Repository,
	publisher eventbus.EventBus,
	codePrefix string,
	codePadding int,
) *Ingestor {
	return &Ingestor{
		allocator:   allocator,
		employees:   employees,
		publisher:   publisher,
		codePrefix:  codePrefix,
		codePadding: codePadding,
	}
}

// Ingest processes rows until done, the context expires, or an infrastructure
// failure occurs. Completed creates are always returned, also alongside a
// non-nil error, so the caller can report partial progress. A sequence number
// allocated for a row that then fails to persist is burned; codes are allowed
// to have gaps.
func (i *Ingestor) Ingest(ctx context.Context, rows []EligibleRow) ([]CreatedEmployee, []RowError, error) {
	var created []CreatedEmployee
	var rowErrs []RowError

	for idx, row := range rows {
		if ctx.Err() != nil {
			rowErrs = append(rowErrs, timeoutErrors(rows[idx:])...)
			break
		}

		seq, err := i.allocator.Allocate(ctx, sequence.ClassEmployee)
		if err != nil {
			if budgetExpired(ctx, err) {
				rowErrs = append(rowErrs, timeoutErrors(rows[idx:])...)
				break
			}
			return created, rowErrs, errors.Wrap(err, "identifier allocation failed")
		}
		code := employee.FormatCode(i.codePrefix, i.codePadding, seq)

		entity, err := buildEmployee(row, code)
		if err != nil {
			// Should not happen for a row that passed validation.
			rowErrs = append(rowErrs, newRowError(row.Ordinal, "", CodeCreateFailed, err.Error(), ""))
			continue
		}

		persisted, err := i.employees.Create(ctx, entity)
		if err != nil {
			if errors.Is(err, persistence.ErrEmployeeExists) {
				// Lost a race against a concurrent writer between the
				// consistency check and this insert. The allocated
				// number is burned; move on.
				rowErrs = append(rowErrs, newRowError(row.Ordinal, FieldEmail, CodeCreateFailed,
					"an employee with this email was created concurrently", row.Get(FieldEmail)))
				continue
			}
			if budgetExpired(ctx, err) {
				rowErrs = append(rowErrs, timeoutErrors(rows[idx:])...)
				break
			}
			return created, rowErrs, errors.Wrap(err, "employee persistence failed")
		}

		created = append(created, CreatedEmployee{
			Code: persisted.Code(),
			Name: persisted.DisplayName(),
		})
		if i.publisher != nil {
			if ev, evErr := employee.NewCreatedEvent(ctx, persisted); evErr == nil {
				i.publisher.Publish(ev)
			} else {
				composables.UseLogger(ctx).WithError(evErr).Warn("skipping created event")
			}
		}
	}

	return created, rowErrs, nil
}

// budgetExpired reports whether a row-level call failed because the batch ran
// out of processing budget rather than because of an infrastructure fault.
// Such rows are a timeout outcome for the user, not a server error.
func budgetExpired(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func timeoutErrors(rows []EligibleRow) []RowError {
	out := make([]RowError, 0, len(rows))
	for _, row := range rows {
		out = append(out, newRowError(row.Ordinal, "", CodeTimeout,
			"processing budget exceeded before this row completed", ""))
	}
	return out
}

// buildEmployee turns a validated row into the aggregate. Employment type
// and marital status fall back to their documented defaults when blank.
func buildEmployee(row EligibleRow, code string) (employee.Employee, error) {
	birthDate, err := time.Parse(time.DateOnly, row.Get(FieldBirthDate))
	if err != nil {
		return nil, errors.Wrap(err, FieldBirthDate)
	}
	hireDate, err := time.Parse(time.DateOnly, row.Get(FieldHireDate))
	if err != nil {
		return nil, errors.Wrap(err, FieldHireDate)
	}
	gender, err := employee.ParseGender(row.Get(FieldGender))
	if err != nil {
		return nil, err
	}

	maritalStatus := employee.MaritalSingle
	if raw := row.Get(FieldMaritalStatus); raw != "" {
		maritalStatus, err = employee.ParseMaritalStatus(raw)
		if err != nil {
			return nil, err
		}
	}

	employmentType := employee.EmploymentFullTime
	if raw := row.Get(FieldEmploymentType); raw != "" {
		employmentType, err = employee.ParseEmploymentType(raw)
		if err != nil {
			return nil, err
		}
	}

	salary := decimal.Zero
	if raw := row.Get(FieldSalary); raw != "" {
		salary, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.Wrap(err, FieldSalary)
		}
	}

	return employee.New(
		row.Get(FieldFirstName),
		row.Get(FieldLastName),
		row.Get(FieldEmail),
		employee.WithCode(code),
		employee.WithMiddleName(row.Get(FieldMiddleName)),
		employee.WithPhone(row.Get(FieldPhone)),
		employee.WithBirthDate(birthDate),
		employee.WithGender(gender),
		employee.WithMaritalStatus(maritalStatus),
		employee.WithEmploymentType(employmentType),
		employee.WithDepartmentID(row.DepartmentID),
		employee.WithPosition(row.Get(FieldPosition)),
		employee.WithSalary(salary),
		employee.WithHireDate(hireDate),
	), nil
}
