package models

import (
	"database/sql"
	"time"
)

type Employee struct {
	ID             int64
	TenantID       string
	Code           string
	FirstName      string
	LastName       string
	MiddleName     sql.NullString
	Email          string
	Phone          string
	BirthDate      time.Time
	Gender         string
	MaritalStatus  string
	EmploymentType string
	DepartmentID   int64
	Position       string
	Salary         string
	HireDate       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Department struct {
	ID        int64
	TenantID  string
	Name      string
	CreatedAt time.Time
}
