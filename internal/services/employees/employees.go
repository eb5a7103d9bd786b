package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

// Staff owns the employee business rules and orchestrates repository calls.
type Staff struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: metrics}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// SaveEmployee creates a new employee unless another one already uses the same email,
// in which case an error wrapping models.ErrDuplicateEmail is returned and nothing is stored.
// A client-supplied ID is ignored.
func (s *Staff) SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.SaveEmployee"
	log := s.initLogger(opn)

	existing, err := s.repo.FindByEmail(ctx, employee.Email)
	switch {
	case err == nil:
		log.InfoContext(ctx, "Rejected employee with taken email", "email", employee.Email, "owner_id", existing.ID)
		s.metrics.DuplicateEmailRejections.Inc()
		return models.Employee{}, fmt.Errorf("%w: %s", models.ErrDuplicateEmail, employee.Email)
	case !errors.Is(err, models.ErrEmployeeNotFound):
		return models.Employee{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	employee.ID = 0
	saved, err := s.repo.Save(ctx, employee)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			// lost a race with a concurrent create; the unique constraint caught it
			s.metrics.DuplicateEmailRejections.Inc()
		}
		return models.Employee{}, fmt.Errorf("failed to save new employee: %w", err)
	}

	s.metrics.EmployeesCreated.Inc()
	log.DebugContext(ctx, "Employee created", "id", saved.ID)

	return saved, nil
}

// GetAllEmployees returns every stored employee.
func (s *Staff) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID reports whether an employee with the given ID exists and returns it.
// Absence is not an error.
func (s *Staff) GetEmployeeByID(ctx context.Context, employeeID int64) (models.Employee, bool, error) {
	employee, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, models.ErrEmployeeNotFound) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, true, nil
}

// UpdateEmployee persists the employee as-is, keyed by its ID.
func (s *Staff) UpdateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	updated, err := s.repo.Save(ctx, employee)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return updated, nil
}

// DeleteEmployee removes the employee with the given ID. Missing IDs are ignored.
func (s *Staff) DeleteEmployee(ctx context.Context, employeeID int64) error {
	const opn = "Employee.DeleteEmployee"

	if err := s.repo.DeleteByID(ctx, employeeID); err != nil {
		s.initLogger(opn).ErrorContext(ctx, "Failed to delete employee", "id", employeeID, sl.Err(err))
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.metrics.EmployeesDeleted.Inc()

	return nil
}
