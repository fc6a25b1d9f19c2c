package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists school delegations in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL-backed delegation store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Insert(ctx context.Context, row DelegationRow) (int64, error) {
	query := `
		INSERT INTO school_delegations (
			school_name, school_address, school_email, school_country,
			director_name, director_email, director_phone,
			num_faculty, num_delegates,
			additional_requests, heard_about, terms_accepted,
			spreadsheet_file_name, spreadsheet_storage_path, spreadsheet_mime_type, spreadsheet_url
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9,
			$10, $11, $12,
			$13, $14, $15, $16
		)
		RETURNING id
	`
	var id int64
	err := s.pool.QueryRow(ctx, query,
		row.SchoolName, row.SchoolAddress, row.SchoolEmail, row.SchoolCountry,
		row.DirectorName, row.DirectorEmail, row.DirectorPhone,
		row.NumFaculty, row.NumDelegates,
		nullableText(row.AdditionalRequests), nullableText(row.HeardAbout), row.TermsAccepted,
		row.SpreadsheetFileName, row.SpreadsheetStoragePath, row.SpreadsheetMimeType, nullableText(row.SpreadsheetURL),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert school delegation: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]DelegationRow, error) {
	query := `
		SELECT id, school_name, school_address, school_email, school_country,
			director_name, director_email, director_phone,
			num_faculty, num_delegates,
			COALESCE(additional_requests, ''), COALESCE(heard_about, ''), terms_accepted,
			spreadsheet_file_name, spreadsheet_storage_path, spreadsheet_mime_type,
			COALESCE(spreadsheet_url, ''), created_at
		FROM school_delegations
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list school delegations: %w", err)
	}
	defer rows.Close()

	var out []DelegationRow
	for rows.Next() {
		var row DelegationRow
		err := rows.Scan(
			&row.ID, &row.SchoolName, &row.SchoolAddress, &row.SchoolEmail, &row.SchoolCountry,
			&row.DirectorName, &row.DirectorEmail, &row.DirectorPhone,
			&row.NumFaculty, &row.NumDelegates,
			&row.AdditionalRequests, &row.HeardAbout, &row.TermsAccepted,
			&row.SpreadsheetFileName, &row.SpreadsheetStoragePath, &row.SpreadsheetMimeType,
			&row.SpreadsheetURL, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan school delegation: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list school delegations: %w", err)
	}
	return out, nil
}

func nullableText(v string) any {
	if v == "" {
		return nil
	}
	return v
}
