package bulkimport

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
)

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// requiredFields must be present and non-blank on every row.
var requiredFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldBirthDate,
	FieldGender,
	FieldDepartment,
	FieldPosition,
	FieldHireDate,
}

// ValidateRow applies the field-level schema rules to a single row. It is a
// pure function of the row's contents: no lookups, no shared state, so rows
// can be validated in any order with identical results.
func ValidateRow(row Row) []RowError {
	var errs []RowError

	for _, field := range requiredFields {
		if row.Get(field) == "" {
			errs = append(errs, newRowError(row.Ordinal, field, CodeMissingField,
				fmt.Sprintf("%s is required", field), ""))
		}
	}

	if email := row.Get(FieldEmail); email != "" {
		if err := fieldValidator.Var(email, "email"); err != nil {
			errs = append(errs, newRowError(row.Ordinal, FieldEmail, CodeInvalidEmail,
				"not a valid email address", email))
		}
	}

	for _, field := range []string{FieldBirthDate, FieldHireDate} {
		if raw := row.Get(field); raw != "" {
			if _, err := time.Parse(time.DateOnly, raw); err != nil {
				errs = append(errs, newRowError(row.Ordinal, field, CodeInvalidDate,
					"expected an ISO date (YYYY-MM-DD)", raw))
			}
		}
	}

	if raw := row.Get(FieldGender); raw != "" {
		if _, err := employee.ParseGender(raw); err != nil {
			errs = append(errs, newRowError(row.Ordinal, FieldGender, CodeInvalidEnum,
				fmt.Sprintf("must be one of: %s, %s", employee.GenderMale, employee.GenderFemale), raw))
		}
	}

	if raw := row.Get(FieldMaritalStatus); raw != "" {
		if _, err := employee.ParseMaritalStatus(raw); err != nil {
			errs = append(errs, newRowError(row.Ordinal, FieldMaritalStatus, CodeInvalidEnum,
				"unknown marital status", raw))
		}
	}

	// Employment type is optional and defaults to full_time at ingestion;
	// only a present-but-unknown value is an error.
	if raw := row.Get(FieldEmploymentType); raw != "" {
		if _, err := employee.ParseEmploymentType(raw); err != nil {
			errs = append(errs, newRowError(row.Ordinal, FieldEmploymentType, CodeInvalidEnum,
				"unknown employment type", raw))
		}
	}

	if raw := row.Get(FieldSalary); raw != "" {
		if _, err := decimal.NewFromString(raw); err != nil {
			errs = append(errs, newRowError(row.Ordinal, FieldSalary, CodeInvalidNumber,
				"not a valid number", raw))
		}
	}

	return errs
}
