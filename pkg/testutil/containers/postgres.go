//go:build integration

package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// usersSchema mirrors the production users table. Integration suites apply
// it once per container; production schema management lives outside this
// repository.
const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	email TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	nationality TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL,
	school TEXT NOT NULL DEFAULT '',
	grade TEXT NOT NULL DEFAULT '',
	dietary_type TEXT NOT NULL DEFAULT '',
	dietary_other TEXT NOT NULL DEFAULT '',
	has_allergies TEXT NOT NULL DEFAULT '',
	allergies_details TEXT NOT NULL DEFAULT '',
	emergency_contact_name TEXT NOT NULL DEFAULT '',
	emergency_contact_phone TEXT NOT NULL DEFAULT '',
	agree_terms BOOLEAN NOT NULL DEFAULT FALSE,
	agree_photos BOOLEAN NOT NULL DEFAULT FALSE,
	delegate_data JSONB,
	chair_data JSONB,
	admin_data JSONB,
	payment_proof_url TEXT NOT NULL DEFAULT '',
	payment_proof_file_name TEXT NOT NULL DEFAULT '',
	payment_proof_uploaded_at TIMESTAMPTZ,
	registration_status TEXT NOT NULL DEFAULT 'pending',
	payment_status TEXT NOT NULL DEFAULT 'unpaid',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS school_delegations (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	school_name TEXT NOT NULL,
	school_address TEXT NOT NULL,
	school_email TEXT NOT NULL,
	school_country TEXT NOT NULL,
	director_name TEXT NOT NULL,
	director_email TEXT NOT NULL,
	director_phone TEXT NOT NULL,
	num_faculty INTEGER NOT NULL,
	num_delegates INTEGER NOT NULL,
	additional_requests TEXT,
	heard_about TEXT,
	terms_accepted BOOLEAN NOT NULL,
	spreadsheet_file_name TEXT NOT NULL,
	spreadsheet_storage_path TEXT NOT NULL,
	spreadsheet_mime_type TEXT NOT NULL,
	spreadsheet_url TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a PostgreSQL container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("vofmun_test"),
		tcpostgres.WithUsername("vofmun"),
		tcpostgres.WithPassword("vofmun"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres pool: %v", err)
	}

	if _, err := pool.Exec(ctx, usersSchema); err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	pc := &PostgresContainer{
		Container: container,
		DSN:       dsn,
		Pool:      pool,
	}

	t.Cleanup(func() {
		pc.Pool.Close()
		_ = pc.Container.Terminate(context.Background())
	})

	return pc
}

// TruncateTables empties the given tables. Use between tests for isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}
