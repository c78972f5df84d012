package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads book rows from Postgres for deployments that keep the
// catalog in a database instead of a CSV export.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
