package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation       = "23505"
	emailUniqueConstraint = "employees_email_key"
)

const (
	insertEmployeeQuery = `
		INSERT INTO employees (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, email;
	`
	upsertEmployeeQuery = `
		INSERT INTO employees (id, first_name, last_name, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, email = EXCLUDED.email
		RETURNING id, first_name, last_name, email;
	`
	findAllEmployeesQuery    = `SELECT id, first_name, last_name, email FROM employees ORDER BY id`
	findEmployeeByIDQuery    = `SELECT id, first_name, last_name, email FROM employees WHERE id = $1`
	findEmployeeByEmailQuery = `SELECT id, first_name, last_name, email FROM employees WHERE email = $1`
	findEmployeeByNameQuery  = `
		SELECT id, first_name, last_name, email FROM employees
		WHERE first_name = $1 AND last_name = $2
		ORDER BY id LIMIT 1
	`
	findEmployeeByNameNamedQuery = `
		SELECT id, first_name, last_name, email FROM employees
		WHERE first_name = @firstName AND last_name = @lastName
		ORDER BY id LIMIT 1
	`
	findEmployeeNativeQuery = `SELECT * FROM employees e WHERE e.first_name = $1 AND e.last_name = $2 ORDER BY e.id LIMIT 1`
	deleteEmployeeByIDQuery = `DELETE FROM employees WHERE id = $1`
	deleteAllEmployeesQuery = `DELETE FROM employees`
)

// Save inserts the employee when its ID is zero and returns it with the generated identifier.
// Otherwise it upserts the row keyed by ID.
func (r *Repository) Save(ctx context.Context, employee models.Employee) (models.Employee, error) {
	var result models.Employee
	var row pgx.Row

	if employee.ID == 0 {
		defer r.metrics.ObserveQuery("insert_employee", time.Now())
		row = r.db.QueryRow(ctx, insertEmployeeQuery, employee.FirstName, employee.LastName, employee.Email)
	} else {
		defer r.metrics.ObserveQuery("upsert_employee", time.Now())
		row = r.db.QueryRow(ctx, upsertEmployeeQuery,
			employee.ID, employee.FirstName, employee.LastName, employee.Email)
	}

	if err := row.Scan(&result.ID, &result.FirstName, &result.LastName, &result.Email); err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", mapError(err))
	}

	return result, nil
}

// FindAll returns every employee in storage order.
func (r *Repository) FindAll(ctx context.Context) ([]models.Employee, error) {
	defer r.metrics.ObserveQuery("find_all_employees", time.Now())

	rows, err := r.db.Query(ctx, findAllEmployeesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}

	employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Employee])
	if err != nil {
		return nil, fmt.Errorf("failed to collect employees: %w", err)
	}

	if employees == nil {
		employees = []models.Employee{}
	}

	return employees, nil
}

// FindByID retrieves an employee from the database by their ID.
func (r *Repository) FindByID(ctx context.Context, identifier int64) (models.Employee, error) {
	defer r.metrics.ObserveQuery("find_employee_by_id", time.Now())

	return r.queryOne(ctx, "failed to get employee by id", findEmployeeByIDQuery, identifier)
}

// FindByEmail retrieves the employee owning the given email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (models.Employee, error) {
	defer r.metrics.ObserveQuery("find_employee_by_email", time.Now())

	return r.queryOne(ctx, "failed to get employee by email", findEmployeeByEmailQuery, email)
}

// FindByFirstNameAndLastName looks an employee up by both names using positional parameters.
// When several employees share the names, the one with the lowest ID is returned.
func (r *Repository) FindByFirstNameAndLastName(
	ctx context.Context,
	firstName, lastName string,
) (models.Employee, error) {
	defer r.metrics.ObserveQuery("find_employee_by_name", time.Now())

	return r.queryOne(ctx, "failed to get employee by name", findEmployeeByNameQuery, firstName, lastName)
}

// FindByFirstNameAndLastNameNamedParams behaves like FindByFirstNameAndLastName but binds named parameters.
func (r *Repository) FindByFirstNameAndLastNameNamedParams(
	ctx context.Context,
	firstName, lastName string,
) (models.Employee, error) {
	defer r.metrics.ObserveQuery("find_employee_by_name_named", time.Now())

	return r.queryOne(ctx, "failed to get employee by name", findEmployeeByNameNamedQuery, pgx.NamedArgs{
		"firstName": firstName,
		"lastName":  lastName,
	})
}

// FindByNativeSQL behaves like FindByFirstNameAndLastName but selects every column
// and maps the row onto the struct by column name.
func (r *Repository) FindByNativeSQL(ctx context.Context, firstName, lastName string) (models.Employee, error) {
	defer r.metrics.ObserveQuery("find_employee_native", time.Now())

	rows, err := r.db.Query(ctx, findEmployeeNativeQuery, firstName, lastName)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by name: %w", err)
	}

	employee, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Employee])
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by name: %w", mapError(err))
	}

	return employee, nil
}

// Delete removes the given employee.
func (r *Repository) Delete(ctx context.Context, employee models.Employee) error {
	defer r.metrics.ObserveQuery("delete_employee", time.Now())

	if _, err := r.db.Exec(ctx, deleteEmployeeByIDQuery, employee.ID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// DeleteByID removes the employee with the given ID. Deleting a missing ID is not an error.
func (r *Repository) DeleteByID(ctx context.Context, identifier int64) error {
	defer r.metrics.ObserveQuery("delete_employee_by_id", time.Now())

	if _, err := r.db.Exec(ctx, deleteEmployeeByIDQuery, identifier); err != nil {
		return fmt.Errorf("failed to delete employee by id: %w", err)
	}

	return nil
}

// DeleteAll removes every employee.
func (r *Repository) DeleteAll(ctx context.Context) error {
	defer r.metrics.ObserveQuery("delete_all_employees", time.Now())

	if _, err := r.db.Exec(ctx, deleteAllEmployeesQuery); err != nil {
		return fmt.Errorf("failed to delete employees: %w", err)
	}

	return nil
}

func (r *Repository) queryOne(ctx context.Context, errMsg, query string, args ...any) (models.Employee, error) {
	var result models.Employee

	err := r.db.QueryRow(ctx, query, args...).Scan(&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if err != nil {
		return models.Employee{}, fmt.Errorf("%s: %w", errMsg, mapError(err))
	}

	return result, nil
}

// mapError translates driver errors into domain errors, leaving anything else untouched.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailUniqueConstraint {
		return models.ErrDuplicateEmail
	}

	return err
}
