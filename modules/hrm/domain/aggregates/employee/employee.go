package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidGender         = errors.New("invalid gender")
	ErrInvalidMaritalStatus  = errors.New("invalid marital status")
	ErrInvalidEmploymentType = errors.New("invalid employment type")
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(raw string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(GenderMale):
		return GenderMale, nil
	case string(GenderFemale):
		return GenderFemale, nil
	default:
		return "", errors.Wrap(ErrInvalidGender, raw)
	}
}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

func ParseMaritalStatus(raw string) (MaritalStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(MaritalSingle):
		return MaritalSingle, nil
	case string(MaritalMarried):
		return MaritalMarried, nil
	case string(MaritalDivorced):
		return MaritalDivorced, nil
	case string(MaritalWidowed):
		return MaritalWidowed, nil
	default:
		return "", errors.Wrap(ErrInvalidMaritalStatus, raw)
	}
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

func ParseEmploymentType(raw string) (EmploymentType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(EmploymentFullTime):
		return EmploymentFullTime, nil
	case string(EmploymentPartTime):
		return EmploymentPartTime, nil
	case string(EmploymentContract):
		return EmploymentContract, nil
	case string(EmploymentIntern):
		return EmploymentIntern, nil
	default:
		return "", errors.Wrap(ErrInvalidEmploymentType, raw)
	}
}

// FormatCode renders a sequence number as the externally visible employee
// code, e.g. FormatCode("EMP", 5, 7) == "EMP00007". Codes are assigned once
// at creation time and never change.
func FormatCode(prefix string, padding int, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, padding, seq)
}

// Employee is the persisted aggregate. Uniquely keyed per tenant by both
// business email and code.
type Employee interface {
	ID() uint
	TenantID() uuid.UUID
	Code() string
	FirstName() string
	LastName() string
	MiddleName() string
	Email() string
	Phone() string
	BirthDate() time.Time
	Gender() Gender
	MaritalStatus() MaritalStatus
	EmploymentType() EmploymentType
	DepartmentID() uint
	Position() string
	Salary() decimal.Decimal
	HireDate() time.Time
	CreatedAt() time.Time
	UpdatedAt() time.Time

	DisplayName() string
}
