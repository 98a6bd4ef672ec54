package persistence

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/department"
	"github.com/hrgate/hrgate/modules/hrm/infrastructure/persistence/models"
)

func toDomainEmployee(m *models.Employee) (employee.Employee, error) {
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant id on employee row")
	}
	gender, err := employee.ParseGender(m.Gender)
	if err != nil {
		return nil, err
	}
	maritalStatus, err := employee.ParseMaritalStatus(m.MaritalStatus)
	if err != nil {
		return nil, err
	}
	employmentType, err := employee.ParseEmploymentType(m.EmploymentType)
	if err != nil {
		return nil, err
	}
	salary, err := decimal.NewFromString(m.Salary)
	if err != nil {
		return nil, errors.Wrap(err, "invalid salary on employee row")
	}

	return employee.New(
		m.FirstName,
		m.LastName,
		m.Email,
		employee.WithID(uint(m.ID)),
		employee.WithTenantID(tenantID),
		employee.WithCode(m.Code),
		employee.WithMiddleName(m.MiddleName.String),
		employee.WithPhone(m.Phone),
		employee.WithBirthDate(m.BirthDate),
		employee.WithGender(gender),
		employee.WithMaritalStatus(maritalStatus),
		employee.WithEmploymentType(employmentType),
		employee.WithDepartmentID(uint(m.DepartmentID)),
		employee.WithPosition(m.Position),
		employee.WithSalary(salary),
		employee.WithHireDate(m.HireDate),
		employee.WithCreatedAt(m.CreatedAt),
		employee.WithUpdatedAt(m.UpdatedAt),
	), nil
}

func toDomainDepartment(m *models.Department) (*department.Department, error) {
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant id on department row")
	}
	return department.New(
		m.Name,
		department.WithID(uint(m.ID)),
		department.WithTenantID(tenantID),
		department.WithCreatedAt(m.CreatedAt),
	), nil
}
