package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/gorilla/mux"
)

// DeletedMessage is the body returned by a successful delete.
const DeletedMessage = "Employee deleted successfully!."

var (
	errInvalidID   = errors.New("employee id must be a positive integer")
	errInvalidBody = errors.New("invalid JSON body")
)

// EmployeeService is the business layer consumed by the employee handlers.
type EmployeeService interface {
	SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	GetAllEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, employeeID int64) (models.Employee, bool, error)
	UpdateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID int64) error
}

// Route maps a method and path template to a handler.
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// EmployeeHandler serves the employees resource.
type EmployeeHandler struct {
	log     *slog.Logger
	service EmployeeService
}

func NewEmployeeHandler(log *slog.Logger, svc EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		log:     log.With(slog.String("division", "http")),
		service: svc,
	}
}

// Routes returns the route table of the employees resource.
func (h *EmployeeHandler) Routes() []Route {
	return []Route{
		{Name: "create_employee", Method: http.MethodPost, Path: "/employees", Handler: h.createEmployee},
		{Name: "list_employees", Method: http.MethodGet, Path: "/employees", Handler: h.listEmployees},
		{Name: "get_employee", Method: http.MethodGet, Path: "/employees/{id}", Handler: h.getEmployee},
		{Name: "update_employee", Method: http.MethodPut, Path: "/employees/{id}", Handler: h.updateEmployee},
		{Name: "delete_employee", Method: http.MethodDelete, Path: "/employees/{id}", Handler: h.deleteEmployee},
	}
}

type employeeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (h *EmployeeHandler) createEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := DecodeEmployee(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.SaveEmployee(r.Context(), employee)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *EmployeeHandler) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.GetAllEmployees(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) getEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := EmployeeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, found, err := h.service.GetEmployeeByID(r.Context(), employeeID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := EmployeeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	changes, err := DecodeEmployee(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, found, err := h.service.GetEmployeeByID(r.Context(), employeeID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	existing.FirstName = changes.FirstName
	existing.LastName = changes.LastName
	existing.Email = changes.Email

	updated, err := h.service.UpdateEmployee(r.Context(), existing)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *EmployeeHandler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := EmployeeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = h.service.DeleteEmployee(r.Context(), employeeID); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, DeletedMessage)
}

func (h *EmployeeHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "Unexpected error",
			"method", r.Method, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), sl.Err(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// EmployeeID extracts the numeric {id} path parameter.
func EmployeeID(r *http.Request) (int64, error) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return 0, errInvalidID
	}

	employeeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || employeeID <= 0 {
		return 0, errInvalidID
	}

	return employeeID, nil
}

// DecodeEmployee reads the employee fields from a JSON request body.
// Any id in the body is ignored.
func DecodeEmployee(r *http.Request) (models.Employee, error) {
	if r.Body == nil {
		return models.Employee{}, fmt.Errorf("%w: request body is required", errInvalidBody)
	}

	var req employeeRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		return models.Employee{}, errInvalidBody
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return models.Employee{}, errInvalidBody
	}

	return models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}
