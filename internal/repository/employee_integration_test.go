package repository_test

import (
	"testing"

	"github.com/UnknownOlympus/hestia/internal/lib/testdb"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
)

func TestEmployeeRepository_Postgres(t *testing.T) {
	pool := testdb.Start(t)
	repo := repository.NewEmployeeRepository(pool, metrics.NewMetrics(prometheus.NewRegistry()))
	ctx := t.Context()

	reset := func(t *testing.T) {
		t.Helper()
		require.NoError(t, repo.DeleteAll(ctx))
	}

	t.Run("save assigns id", func(t *testing.T) {
		reset(t)

		saved, err := repo.Save(ctx, models.Employee{FirstName: "John", LastName: "Luther", Email: randomail.GenerateRandomEmail()})

		require.NoError(t, err)
		assert.Positive(t, saved.ID)
	})

	t.Run("find all returns every employee", func(t *testing.T) {
		reset(t)

		_, err := repo.Save(ctx, models.Employee{FirstName: "Tom", LastName: "Cruise", Email: "tom@gmail.com"})
		require.NoError(t, err)
		_, err = repo.Save(ctx, models.Employee{FirstName: "Tony", LastName: "Stark", Email: "tony@gmail.com"})
		require.NoError(t, err)

		employees, err := repo.FindAll(ctx)

		require.NoError(t, err)
		assert.Len(t, employees, 2)
	})

	t.Run("find by id and email", func(t *testing.T) {
		reset(t)

		saved, err := repo.Save(ctx, models.Employee{FirstName: "Tony", LastName: "Stark", Email: "tonystark@gmail.com"})
		require.NoError(t, err)

		byID, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved, byID)

		byEmail, err := repo.FindByEmail(ctx, "tonystark@gmail.com")
		require.NoError(t, err)
		assert.Equal(t, saved, byEmail)

		_, err = repo.FindByID(ctx, saved.ID+1000)
		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
	})

	t.Run("upsert keeps id and overwrites fields", func(t *testing.T) {
		reset(t)

		saved, err := repo.Save(ctx, models.Employee{FirstName: "Ram", LastName: "Jadhav", Email: "ram@gmail.com"})
		require.NoError(t, err)

		saved.FirstName, saved.LastName, saved.Email = "Ramesh", "J", "ramesh@gmail.com"
		updated, err := repo.Save(ctx, saved)
		require.NoError(t, err)

		assert.Equal(t, saved, updated)
		employees, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, employees, 1)
	})

	t.Run("duplicate email violates the unique constraint", func(t *testing.T) {
		reset(t)

		_, err := repo.Save(ctx, models.Employee{FirstName: "A", LastName: "B", Email: "same@gmail.com"})
		require.NoError(t, err)

		_, err = repo.Save(ctx, models.Employee{FirstName: "C", LastName: "D", Email: "same@gmail.com"})
		require.ErrorIs(t, err, models.ErrDuplicateEmail)
	})

	t.Run("name queries agree and prefer the lowest id", func(t *testing.T) {
		reset(t)

		first, err := repo.Save(ctx, models.Employee{FirstName: "John", LastName: "Cena", Email: "cena1@gmail.com"})
		require.NoError(t, err)
		_, err = repo.Save(ctx, models.Employee{FirstName: "John", LastName: "Cena", Email: "cena2@gmail.com"})
		require.NoError(t, err)

		positional, err := repo.FindByFirstNameAndLastName(ctx, "John", "Cena")
		require.NoError(t, err)
		named, err := repo.FindByFirstNameAndLastNameNamedParams(ctx, "John", "Cena")
		require.NoError(t, err)
		native, err := repo.FindByNativeSQL(ctx, "John", "Cena")
		require.NoError(t, err)

		assert.Equal(t, first, positional)
		assert.Equal(t, first, named)
		assert.Equal(t, first, native)

		_, err = repo.FindByNativeSQL(ctx, "John", "Doe")
		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		reset(t)

		saved, err := repo.Save(ctx, models.Employee{FirstName: "Gone", LastName: "Soon", Email: "gone@gmail.com"})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteByID(ctx, saved.ID))
		require.NoError(t, repo.DeleteByID(ctx, saved.ID))

		_, err = repo.FindByID(ctx, saved.ID)
		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
	})
}
