package store

import (
	"context"
	"fmt"
)

// migrate runs all database migrations
func (s *Store) migrate(ctx context.Context) error {
	docType := "TEXT"
	if s.driver == DriverPostgres {
		docType = "JSONB"
	}

	migrations := []string{
		migrationCreateUsers,
		fmt.Sprintf(migrationCreateDocuments, "clients", docType),
		fmt.Sprintf(migrationCreateDocuments, "invoices", docType),
		fmt.Sprintf(migrationCreateDocuments, "meetings", docType),
		fmt.Sprintf(migrationCreateDocuments, "projects", docType),
	}
	for _, table := range documentTables {
		migrations = append(migrations, fmt.Sprintf(migrationIndexDocuments, table))
	}

	for i, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

var documentTables = []string{"clients", "invoices", "meetings", "projects"}

const migrationCreateUsers = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL
);
`

// Timestamps are unix microseconds. client_id is a weak reference with no
// foreign key: deleting a client leaves dangling references.
const migrationCreateDocuments = `
CREATE TABLE IF NOT EXISTS %s (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    client_id TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    doc %s NOT NULL
);
`

const migrationIndexDocuments = `
CREATE INDEX IF NOT EXISTS idx_%[1]s_owner ON %[1]s(owner_id, created_at);
`
