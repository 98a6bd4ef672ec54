package bulkimport

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/department"
)

// EligibleRow is a row that survived every check, with its department
// reference already resolved to the stored identifier.
type EligibleRow struct {
	Row
	DepartmentID uint
}

// ConsistencyChecker runs the batch-wide checks: reference integrity against
// department data, intra-file duplicate detection, and conflicts with
// already-persisted employees. It is the only stage that reads stored state,
// and it does so with a constant number of bulk queries per call.
type ConsistencyChecker struct {
	departments department.Repository
	employees   employee.Repository
}

func NewConsistencyChecker(departments department.Repository, employees employee.Repository) *ConsistencyChecker {
	return &ConsistencyChecker{
		departments: departments,
		employees:   employees,
	}
}

// Check appends batch-level errors to the per-row error lists and partitions
// the rows. A row is eligible iff it has accumulated zero errors across the
// validator stage and all three checks here.
func (c *ConsistencyChecker) Check(ctx context.Context, rows []Row, rowErrs []RowError) ([]EligibleRow, []RowError, error) {
	deptIndex, err := c.departmentIndex(ctx)
	if err != nil {
		return nil, nil, err
	}

	errs := rowErrs
	failed := make(map[int]bool, len(rows))
	for _, e := range rowErrs {
		failed[e.Row] = true
	}

	deptByRow := make(map[int]uint, len(rows))
	for _, row := range rows {
		name := row.Get(FieldDepartment)
		if name == "" {
			continue // already reported as missing by the validator
		}
		id, ok := deptIndex[strings.ToLower(name)]
		if !ok {
			failed[row.Ordinal] = true
			errs = append(errs, newRowError(row.Ordinal, FieldDepartment, CodeReferenceNotFound,
				fmt.Sprintf("department %q does not exist", name), name))
			continue
		}
		deptByRow[row.Ordinal] = id
	}

	errs = c.checkDuplicatesInFile(rows, errs, failed)

	errs, err = c.checkStoreConflicts(ctx, rows, errs, failed)
	if err != nil {
		return nil, nil, err
	}

	var eligible []EligibleRow
	for _, row := range rows {
		if failed[row.Ordinal] {
			continue
		}
		eligible = append(eligible, EligibleRow{
			Row:          row,
			DepartmentID: deptByRow[row.Ordinal],
		})
	}
	return eligible, errs, nil
}

// AvailableDepartments lists the reference values a file may use, for the
// dry-run response.
func (c *ConsistencyChecker) AvailableDepartments(ctx context.Context) ([]string, error) {
	departments, err := c.departments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(departments))
	for _, d := range departments {
		names = append(names, d.Name())
	}
	return names, nil
}

func (c *ConsistencyChecker) departmentIndex(ctx context.Context) (map[string]uint, error) {
	departments, err := c.departments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]uint, len(departments))
	for _, d := range departments {
		index[strings.ToLower(strings.TrimSpace(d.Name()))] = d.ID()
	}
	return index, nil
}

// checkDuplicatesInFile groups rows by lower-cased email and flags every
// member of a conflicting group, not just the later ones. The symmetry is
// deliberate: after the user fixes one of two duplicate rows, the other no
// longer carries a stale one-sided error on re-validation.
func (c *ConsistencyChecker) checkDuplicatesInFile(rows []Row, errs []RowError, failed map[int]bool) []RowError {
	groups := make(map[string][]int)
	for _, row := range rows {
		email := strings.ToLower(row.Get(FieldEmail))
		if email == "" {
			continue
		}
		groups[email] = append(groups[email], row.Ordinal)
	}

	keys := make([]string, 0, len(groups))
	for email := range groups {
		keys = append(keys, email)
	}
	sort.Strings(keys)

	for _, email := range keys {
		ordinals := groups[email]
		if len(ordinals) < 2 {
			continue
		}
		for _, ordinal := range ordinals {
			others := make([]string, 0, len(ordinals)-1)
			for _, other := range ordinals {
				if other != ordinal {
					others = append(others, fmt.Sprintf("%d", other))
				}
			}
			failed[ordinal] = true
			errs = append(errs, newRowError(ordinal, FieldEmail, CodeDuplicateInFile,
				fmt.Sprintf("email also appears on row(s) %s", strings.Join(others, ", ")), email))
		}
	}
	return errs
}

// checkStoreConflicts issues one batched lookup for all candidate emails.
// Only keyless rows and emails already duplicated in-file are exempt: a row
// that failed a field rule still gets its store conflict reported in the same
// pass, so the user sees every problem in one round-trip.
func (c *ConsistencyChecker) checkStoreConflicts(ctx context.Context, rows []Row, errs []RowError, failed map[int]bool) ([]RowError, error) {
	rowByEmail := make(map[string][]int)
	for _, row := range rows {
		email := strings.ToLower(row.Get(FieldEmail))
		if email == "" {
			continue
		}
		rowByEmail[email] = append(rowByEmail[email], row.Ordinal)
	}

	var candidates []string
	for email, ordinals := range rowByEmail {
		if len(ordinals) > 1 {
			// Already flagged as in-file duplicates; a store conflict on top
			// would only repeat the noise.
			continue
		}
		candidates = append(candidates, email)
	}
	sort.Strings(candidates)
	if len(candidates) == 0 {
		return errs, nil
	}

	existing, err := c.employees.FindByEmails(ctx, candidates)
	if err != nil {
		return nil, err
	}
	for _, emp := range existing {
		email := strings.ToLower(emp.Email())
		for _, ordinal := range rowByEmail[email] {
			failed[ordinal] = true
			errs = append(errs, newRowError(ordinal, FieldEmail, CodeAlreadyExists,
				fmt.Sprintf("an employee with this email already exists (%s)", emp.Code()), email))
		}
	}
	return errs, nil
}
