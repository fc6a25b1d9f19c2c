// Package models defines the school delegation submission shapes.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt is an integer that also accepts its JSON string form, since the
// delegation form serializes counts as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		s = strings.TrimSpace(raw)
	}
	if s == "" || s == "null" {
		return fmt.Errorf("expected a number")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("expected a whole number, got %q", s)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}

// Spreadsheet is the delegate roster file attached to a submission.
type Spreadsheet struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataUrl"`
}

// SubmissionRequest is the wire shape of a school delegation submission.
type SubmissionRequest struct {
	SchoolName    string      `json:"schoolName"`
	SchoolAddress string      `json:"schoolAddress"`
	SchoolEmail   string      `json:"schoolEmail"`
	SchoolCountry string      `json:"schoolCountry"`
	DirectorName  string      `json:"directorName"`
	DirectorEmail string      `json:"directorEmail"`
	DirectorPhone string      `json:"directorPhone"`
	NumFaculty    *FlexInt    `json:"numFaculty"`
	NumDelegates  *FlexInt    `json:"numDelegates"`
	Requests      string      `json:"requests"`
	HeardAbout    string      `json:"heardAbout"`
	TermsAccepted bool        `json:"termsAccepted"`
	Spreadsheet   Spreadsheet `json:"spreadsheet"`
}

// Delegation is one validated school delegation: trimmed fields plus the
// decoded roster bytes.
type Delegation struct {
	SchoolName    string
	SchoolAddress string
	SchoolEmail   string
	SchoolCountry string
	DirectorName  string
	DirectorEmail string
	DirectorPhone string
	NumFaculty    int
	NumDelegates  int
	Requests      string
	HeardAbout    string
	TermsAccepted bool

	SpreadsheetFileName string
	SpreadsheetMimeType string
	SpreadsheetData     []byte
}
