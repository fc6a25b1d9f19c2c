// Package store persists school delegation rows.
package store

import (
	"context"
	"time"
)

// DelegationRow is the storage shape of a school delegation.
type DelegationRow struct {
	ID                     int64     `json:"id"`
	SchoolName             string    `json:"school_name"`
	SchoolAddress          string    `json:"school_address"`
	SchoolEmail            string    `json:"school_email"`
	SchoolCountry          string    `json:"school_country"`
	DirectorName           string    `json:"director_name"`
	DirectorEmail          string    `json:"director_email"`
	DirectorPhone          string    `json:"director_phone"`
	NumFaculty             int       `json:"num_faculty"`
	NumDelegates           int       `json:"num_delegates"`
	AdditionalRequests     string    `json:"additional_requests,omitempty"`
	HeardAbout             string    `json:"heard_about,omitempty"`
	TermsAccepted          bool      `json:"terms_accepted"`
	SpreadsheetFileName    string    `json:"spreadsheet_file_name"`
	SpreadsheetStoragePath string    `json:"spreadsheet_storage_path"`
	SpreadsheetMimeType    string    `json:"spreadsheet_mime_type"`
	SpreadsheetURL         string    `json:"spreadsheet_url,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// DelegationStore is the delegation persistence capability.
type DelegationStore interface {
	// Insert writes a new row; CreatedAt is assigned at write time.
	Insert(ctx context.Context, row DelegationRow) (int64, error)
	// List returns all rows, newest first.
	List(ctx context.Context) ([]DelegationRow, error)
}
