package db

import (
	"context"

	"github.com/go-pg/pg/v10"
)

// DB wraps pg.DB to expose connection options and health checks to the app layer.
type DB struct {
	*pg.DB
	opts *pg.Options
}

func New(opts *pg.Options) DB {
	return DB{
		DB:   pg.Connect(opts),
		opts: opts,
	}
}

// Ping tests postgresql connection.
func (d DB) Ping(ctx context.Context) error {
	_, err := d.ExecContext(ctx, "SELECT 1")
	return err
}

// Options returns connection options the DB was created with.
func (d DB) Options() *pg.Options {
	return d.opts
}

// Version returns postgresql server version.
func (d DB) Version(ctx context.Context) (string, error) {
	var v string
	_, err := d.QueryOneContext(ctx, pg.Scan(&v), "SELECT version()")
	return v, err
}
