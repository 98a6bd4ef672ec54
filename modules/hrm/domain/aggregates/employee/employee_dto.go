package employee

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var dtoValidator = validator.New(validator.WithRequiredStructEnabled())

// CreateDTO carries the fields for a manual single-employee creation. The
// code is not part of the DTO; it is derived from the sequence allocator at
// save time.
type CreateDTO struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	MiddleName     string `json:"middleName"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	BirthDate      string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"required"`
	MaritalStatus  string `json:"maritalStatus"`
	EmploymentType string `json:"employmentType"`
	DepartmentID   uint   `json:"departmentId" validate:"required"`
	Position       string `json:"position" validate:"required"`
	Salary         string `json:"salary"`
	HireDate       string `json:"hireDate" validate:"required,datetime=2006-01-02"`
}

// Ok reports field-level validation problems keyed by field name.
func (d *CreateDTO) Ok() (map[string]string, bool) {
	errorsMap := map[string]string{}
	if err := dtoValidator.Struct(d); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errorsMap[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	if d.Gender != "" {
		if _, err := ParseGender(d.Gender); err != nil {
			errorsMap["Gender"] = "invalid"
		}
	}
	if d.MaritalStatus != "" {
		if _, err := ParseMaritalStatus(d.MaritalStatus); err != nil {
			errorsMap["MaritalStatus"] = "invalid"
		}
	}
	if d.EmploymentType != "" {
		if _, err := ParseEmploymentType(d.EmploymentType); err != nil {
			errorsMap["EmploymentType"] = "invalid"
		}
	}
	if d.Salary != "" {
		if _, err := decimal.NewFromString(d.Salary); err != nil {
			errorsMap["Salary"] = "numeric"
		}
	}
	return errorsMap, len(errorsMap) == 0
}

// ToEntity builds the aggregate. The code is not carried by the DTO; the
// caller passes WithCode with the value obtained from the allocator.
func (d *CreateDTO) ToEntity(extra ...Option) (Employee, error) {
	birthDate, err := time.Parse(time.DateOnly, d.BirthDate)
	if err != nil {
		return nil, err
	}
	hireDate, err := time.Parse(time.DateOnly, d.HireDate)
	if err != nil {
		return nil, err
	}
	gender, err := ParseGender(d.Gender)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithMiddleName(d.MiddleName),
		WithPhone(d.Phone),
		WithBirthDate(birthDate),
		WithGender(gender),
		WithDepartmentID(d.DepartmentID),
		WithPosition(d.Position),
		WithHireDate(hireDate),
	}
	if d.MaritalStatus != "" {
		status, err := ParseMaritalStatus(d.MaritalStatus)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMaritalStatus(status))
	}
	if d.EmploymentType != "" {
		t, err := ParseEmploymentType(d.EmploymentType)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithEmploymentType(t))
	}
	if d.Salary != "" {
		salary, err := decimal.NewFromString(d.Salary)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSalary(salary))
	}
	opts = append(opts, extra...)
	return New(d.FirstName, d.LastName, d.Email, opts...), nil
}
