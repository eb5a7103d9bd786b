package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

// Migrate applies the goose migrations found in dir to the database behind the pool.
func Migrate(pool *pgxpool.Pool, dir string) error {
	dtb := stdlib.OpenDBFromPool(pool)
	defer dtb.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(dtb, dir); err != nil {
		return fmt.Errorf("failed to apply migrations from %s: %w", dir, err)
	}

	return nil
}
