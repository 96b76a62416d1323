package storage

import (
	"context"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates the application tables and indexes. Every statement
// is idempotent, so running it against an initialized database is safe.
func (db *DB) ApplySchema(ctx context.Context) error {
	if _, err := db.Pool().Exec(ctx, schemaSQL); err != nil {
		return &QueryError{Query: "apply schema", Err: err}
	}
	return nil
}
