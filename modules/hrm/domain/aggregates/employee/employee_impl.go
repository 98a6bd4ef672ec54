package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type entity struct {
	id             uint
	tenantID       uuid.UUID
	code           string
	firstName      string
	lastName       string
	middleName     string
	email          string
	phone          string
	birthDate      time.Time
	gender         Gender
	maritalStatus  MaritalStatus
	employmentType EmploymentType
	departmentID   uint
	position       string
	salary         decimal.Decimal
	hireDate       time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

type Option func(*entity)

func WithID(id uint) Option {
	return func(e *entity) {
		e.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(e *entity) {
		e.tenantID = tenantID
	}
}

func WithCode(code string) Option {
	return func(e *entity) {
		e.code = code
	}
}

func WithMiddleName(middleName string) Option {
	return func(e *entity) {
		e.middleName = middleName
	}
}

func WithPhone(phone string) Option {
	return func(e *entity) {
		e.phone = phone
	}
}

func WithBirthDate(birthDate time.Time) Option {
	return func(e *entity) {
		e.birthDate = birthDate
	}
}

func WithGender(gender Gender) Option {
	return func(e *entity) {
		e.gender = gender
	}
}

func WithMaritalStatus(status MaritalStatus) Option {
	return func(e *entity) {
		e.maritalStatus = status
	}
}

func WithEmploymentType(t EmploymentType) Option {
	return func(e *entity) {
		e.employmentType = t
	}
}

func WithDepartmentID(id uint) Option {
	return func(e *entity) {
		e.departmentID = id
	}
}

func WithPosition(position string) Option {
	return func(e *entity) {
		e.position = position
	}
}

func WithSalary(salary decimal.Decimal) Option {
	return func(e *entity) {
		e.salary = salary
	}
}

func WithHireDate(hireDate time.Time) Option {
	return func(e *entity) {
		e.hireDate = hireDate
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(e *entity) {
		e.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(e *entity) {
		e.updatedAt = updatedAt
	}
}

func New(firstName, lastName, email string, opts ...Option) Employee {
	e := &entity{
		firstName:      firstName,
		lastName:       lastName,
		email:          strings.ToLower(strings.TrimSpace(email)),
		maritalStatus:  MaritalSingle,
		employmentType: EmploymentFullTime,
		salary:         decimal.Zero,
		createdAt:      time.Now(),
		updatedAt:      time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *entity) ID() uint                       { return e.id }
func (e *entity) TenantID() uuid.UUID            { return e.tenantID }
func (e *entity) Code() string                   { return e.code }
func (e *entity) FirstName() string              { return e.firstName }
func (e *entity) LastName() string               { return e.lastName }
func (e *entity) MiddleName() string             { return e.middleName }
func (e *entity) Email() string                  { return e.email }
func (e *entity) Phone() string                  { return e.phone }
func (e *entity) BirthDate() time.Time           { return e.birthDate }
func (e *entity) Gender() Gender                 { return e.gender }
func (e *entity) MaritalStatus() MaritalStatus   { return e.maritalStatus }
func (e *entity) EmploymentType() EmploymentType { return e.employmentType }
func (e *entity) DepartmentID() uint             { return e.departmentID }
func (e *entity) Position() string               { return e.position }
func (e *entity) Salary() decimal.Decimal        { return e.salary }
func (e *entity) HireDate() time.Time            { return e.hireDate }
func (e *entity) CreatedAt() time.Time           { return e.createdAt }
func (e *entity) UpdatedAt() time.Time           { return e.updatedAt }

func (e *entity) DisplayName() string {
	return strings.TrimSpace(e.firstName + " " + e.lastName)
}
