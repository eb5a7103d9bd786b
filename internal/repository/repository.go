package repository

import (
	"context"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
// Lookups that match nothing return models.ErrEmployeeNotFound.
type EmployeeRepoIface interface {
	Save(ctx context.Context, employee models.Employee) (models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, identifier int64) (models.Employee, error)
	FindByEmail(ctx context.Context, email string) (models.Employee, error)
	FindByFirstNameAndLastName(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByFirstNameAndLastNameNamedParams(ctx context.Context, firstName, lastName string) (models.Employee, error)
	FindByNativeSQL(ctx context.Context, firstName, lastName string) (models.Employee, error)
	Delete(ctx context.Context, employee models.Employee) error
	DeleteByID(ctx context.Context, identifier int64) error
	DeleteAll(ctx context.Context) error
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}
