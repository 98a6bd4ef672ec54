package bulkimport_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hrgate/hrgate/modules/hrm/bulkimport"
	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/department"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
	"github.com/hrgate/hrgate/pkg/composables"
)

func tenantContext() context.Context {
	return composables.WithTenantID(context.Background(), uuid.New())
}

// validFields returns a row payload that passes every field-level check.
func validFields(email string) map[string]string {
	return map[string]string{
		bulkimport.FieldFirstName:      "Jane",
		bulkimport.FieldLastName:       "Doe",
		bulkimport.FieldEmail:          email,
		bulkimport.FieldPhone:          "+1 555 0100",
		bulkimport.FieldBirthDate:      "1990-04-12",
		bulkimport.FieldGender:         "female",
		bulkimport.FieldDepartment:     "Engineering",
		bulkimport.FieldPosition:       "Backend Engineer",
		bulkimport.FieldSalary:         "95000.00",
		bulkimport.FieldHireDate:       "2024-02-01",
		bulkimport.FieldMaritalStatus:  "married",
		bulkimport.FieldEmploymentType: "full_time",
	}
}

func validRow(ordinal int, email string) bulkimport.Row {
	return bulkimport.Row{Ordinal: ordinal, Fields: validFields(email)}
}

// memAllocator is an in-memory Allocator with the same contract as the
// database-backed one: atomic increments, permanent burns.
type memAllocator struct {
	mu      sync.Mutex
	seqs    map[sequence.EntityClass]int64
	failAt  int64
	failErr error
}

func newMemAllocator() *memAllocator {
	return &memAllocator{seqs: map[sequence.EntityClass]int64{}}
}

func (a *memAllocator) Allocate(_ context.Context, class sequence.EntityClass) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failErr != nil && a.seqs[class] >= a.failAt {
		return 0, a.failErr
	}
	a.seqs[class]++
	return a.seqs[class], nil
}

func (a *memAllocator) Peek(_ context.Context, class sequence.EntityClass) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seqs[class] + 1, nil
}

type departmentRepositoryMock struct {
	departments []*department.Department
	err         error
}

func (m *departmentRepositoryMock) GetAll(context.Context) ([]*department.Department, error) {
	return m.departments, m.err
}

func (m *departmentRepositoryMock) GetByID(_ context.Context, id uint) (*department.Department, error) {
	for _, d := range m.departments {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, m.err
}

func (m *departmentRepositoryMock) Create(_ context.Context, data *department.Department) (*department.Department, error) {
	m.departments = append(m.departments, data)
	return data, nil
}

type employeeRepositoryMock struct {
	mu       sync.Mutex
	existing []employee.Employee
	created  []employee.Employee
	// createErrs maps a lower-cased email to the error its create returns.
	createErrs map[string]error
	findErr    error
}

func (m *employeeRepositoryMock) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.existing) + len(m.created)), nil
}

func (m *employeeRepositoryMock) GetAll(context.Context) ([]employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(append([]employee.Employee{}, m.existing...), m.created...), nil
}

func (m *employeeRepositoryMock) GetPaginated(ctx context.Context, _ *employee.FindParams) ([]employee.Employee, error) {
	return m.GetAll(ctx)
}

func (m *employeeRepositoryMock) GetByID(_ context.Context, id uint) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range append(append([]employee.Employee{}, m.existing...), m.created...) {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, nil
}

func (m *employeeRepositoryMock) FindByEmails(_ context.Context, emails []string) ([]employee.Employee, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[string]bool, len(emails))
	for _, e := range emails {
		wanted[strings.ToLower(e)] = true
	}
	var out []employee.Employee
	for _, e := range append(append([]employee.Employee{}, m.existing...), m.created...) {
		if wanted[strings.ToLower(e.Email())] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *employeeRepositoryMock) Create(_ context.Context, data employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.createErrs[strings.ToLower(data.Email())]; ok {
		return nil, err
	}
	m.created = append(m.created, data)
	return data, nil
}

func (m *employeeRepositoryMock) createdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}
