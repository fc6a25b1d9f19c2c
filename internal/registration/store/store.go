// Package store persists registrants. The mapper translates the validated
// domain object into the flat snake_case row shape; the store implementations
// only move rows.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// UserRow is the storage shape of a registrant: flat, snake_case naming,
// role payload attached under exactly one of the three JSON slots.
type UserRow struct {
	ID                    int64           `json:"id"`
	Email                 string          `json:"email"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	Phone                 string          `json:"phone"`
	Nationality           string          `json:"nationality"`
	Role                  string          `json:"role"`
	School                string          `json:"school"`
	Grade                 string          `json:"grade"`
	DietaryType           string          `json:"dietary_type"`
	DietaryOther          string          `json:"dietary_other"`
	HasAllergies          string          `json:"has_allergies"`
	AllergiesDetails      string          `json:"allergies_details"`
	EmergencyContactName  string          `json:"emergency_contact_name"`
	EmergencyContactPhone string          `json:"emergency_contact_phone"`
	AgreeTerms            bool            `json:"agree_terms"`
	AgreePhotos           bool            `json:"agree_photos"`
	DelegateData          json.RawMessage `json:"delegate_data,omitempty"`
	ChairData             json.RawMessage `json:"chair_data,omitempty"`
	AdminData             json.RawMessage `json:"admin_data,omitempty"`
	PaymentProofURL       string          `json:"payment_proof_url,omitempty"`
	PaymentProofFileName  string          `json:"payment_proof_file_name,omitempty"`
	PaymentProofUploadedAt *time.Time     `json:"payment_proof_uploaded_at,omitempty"`
	RegistrationStatus    string          `json:"registration_status"`
	PaymentStatus         string          `json:"payment_status"`
	CreatedAt             time.Time       `json:"created_at"`
}

// UserStore is the registrant persistence capability.
type UserStore interface {
	// Insert writes a new row and returns its ID. A duplicate email
	// surfaces as sentinel.ErrConflict (wrapped); the creation marker is
	// assigned here, once, at write time.
	Insert(ctx context.Context, row UserRow) (int64, error)
	// List returns all rows, newest first.
	List(ctx context.Context) ([]UserRow, error)
	// UpdatePaymentStatus patches one row's payment status;
	// sentinel.ErrNotFound when no such row exists.
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
}
