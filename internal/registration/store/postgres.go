package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vofmun/pkg/platform/sentinel"
)

// PostgresStore persists registrants in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL-backed user store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Insert(ctx context.Context, row UserRow) (int64, error) {
	query := `
		INSERT INTO users (
			email, first_name, last_name, phone, nationality, role,
			school, grade, dietary_type, dietary_other,
			has_allergies, allergies_details,
			emergency_contact_name, emergency_contact_phone,
			agree_terms, agree_photos,
			delegate_data, chair_data, admin_data,
			payment_proof_url, payment_proof_file_name, payment_proof_uploaded_at,
			registration_status, payment_status
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12,
			$13, $14,
			$15, $16,
			$17, $18, $19,
			$20, $21, $22,
			$23, $24
		)
		RETURNING id
	`
	var id int64
	err := s.pool.QueryRow(ctx, query,
		row.Email, row.FirstName, row.LastName, row.Phone, row.Nationality, row.Role,
		row.School, row.Grade, row.DietaryType, row.DietaryOther,
		row.HasAllergies, row.AllergiesDetails,
		row.EmergencyContactName, row.EmergencyContactPhone,
		row.AgreeTerms, row.AgreePhotos,
		nullableJSON(row.DelegateData), nullableJSON(row.ChairData), nullableJSON(row.AdminData),
		row.PaymentProofURL, row.PaymentProofFileName, row.PaymentProofUploadedAt,
		row.RegistrationStatus, row.PaymentStatus,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("insert user %s: %w", row.Email, sentinel.ErrConflict)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]UserRow, error) {
	query := `
		SELECT id, email, first_name, last_name, phone, nationality, role,
			school, grade, dietary_type, dietary_other,
			has_allergies, allergies_details,
			emergency_contact_name, emergency_contact_phone,
			agree_terms, agree_photos,
			delegate_data, chair_data, admin_data,
			payment_proof_url, payment_proof_file_name, payment_proof_uploaded_at,
			registration_status, payment_status, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []UserRow
	for rows.Next() {
		var row UserRow
		err := rows.Scan(
			&row.ID, &row.Email, &row.FirstName, &row.LastName, &row.Phone, &row.Nationality, &row.Role,
			&row.School, &row.Grade, &row.DietaryType, &row.DietaryOther,
			&row.HasAllergies, &row.AllergiesDetails,
			&row.EmergencyContactName, &row.EmergencyContactPhone,
			&row.AgreeTerms, &row.AgreePhotos,
			&row.DelegateData, &row.ChairData, &row.AdminData,
			&row.PaymentProofURL, &row.PaymentProofFileName, &row.PaymentProofUploadedAt,
			&row.RegistrationStatus, &row.PaymentStatus, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE users SET payment_status = $2 WHERE id = $1 RETURNING id`
	err := s.pool.QueryRow(ctx, query, id, status).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
		}
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

// nullableJSON maps an empty role-payload slot to SQL NULL so the
// exactly-one-populated invariant is visible in the row itself.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
