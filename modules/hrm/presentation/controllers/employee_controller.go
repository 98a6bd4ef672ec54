package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/infrastructure/persistence"
	"github.com/hrgate/hrgate/modules/hrm/services"
	"github.com/hrgate/hrgate/pkg/composables"
	"github.com/hrgate/hrgate/pkg/httpapi"
)

type EmployeeController struct {
	service  *services.EmployeeService
	basePath string
}

func NewEmployeeController(service *services.EmployeeService) *EmployeeController {
	return &EmployeeController{
		service:  service,
		basePath: "/hrm/employees",
	}
}

func (c *EmployeeController) Key() string {
	return c.basePath
}

func (c *EmployeeController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("/next-code", c.nextCode).Methods(http.MethodGet)
}

type employeeResponse struct {
	ID             uint   `json:"id"`
	Code           string `json:"code"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	MiddleName     string `json:"middleName,omitempty"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BirthDate      string `json:"birthDate"`
	Gender         string `json:"gender"`
	MaritalStatus  string `json:"maritalStatus"`
	EmploymentType string `json:"employmentType"`
	DepartmentID   uint   `json:"departmentId"`
	Position       string `json:"position"`
	Salary         string `json:"salary"`
	HireDate       string `json:"hireDate"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	return employeeResponse{
		ID:             e.ID(),
		Code:           e.Code(),
		FirstName:      e.FirstName(),
		LastName:       e.LastName(),
		MiddleName:     e.MiddleName(),
		Email:          e.Email(),
		Phone:          e.Phone(),
		BirthDate:      e.BirthDate().Format("2006-01-02"),
		Gender:         string(e.Gender()),
		MaritalStatus:  string(e.MaritalStatus()),
		EmploymentType: string(e.EmploymentType()),
		DepartmentID:   e.DepartmentID(),
		Position:       e.Position(),
		Salary:         e.Salary().String(),
		HireDate:       e.HireDate().Format("2006-01-02"),
	}
}

func (c *EmployeeController) list(w http.ResponseWriter, r *http.Request) {
	params := &employee.FindParams{Limit: 50}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	employees, err := c.service.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("list employees failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "EMPLOYEES_LIST_FAILED",
			"failed to list employees", nil)
		return
	}
	total, err := c.service.Count(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("count employees failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "EMPLOYEES_LIST_FAILED",
			"failed to list employees", nil)
		return
	}

	items := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, toEmployeeResponse(e))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *EmployeeController) create(w http.ResponseWriter, r *http.Request) {
	dto := &employee.CreateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY",
			"request body is not valid JSON", nil)
		return
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED",
			"employee payload failed validation", fieldErrs)
		return
	}

	created, err := c.service.Create(r.Context(), dto)
	if err != nil {
		if errors.Is(err, persistence.ErrEmployeeExists) {
			_ = httpapi.WriteError(w, http.StatusConflict, "EMPLOYEE_EXISTS",
				"an employee with this email already exists", nil)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("create employee failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "EMPLOYEE_CREATE_FAILED",
			"failed to create the employee", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toEmployeeResponse(created))
}

func (c *EmployeeController) nextCode(w http.ResponseWriter, r *http.Request) {
	code, err := c.service.NextCode(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("next code preview failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "NEXT_CODE_FAILED",
			"failed to preview the next employee code", nil)
		return
	}
	// The preview is not a reservation; a concurrent create may take the
	// number before this client saves.
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"nextCode": code})
}
