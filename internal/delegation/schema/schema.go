// Package schema validates school delegation submissions. Unlike signup,
// every violation is collected and the messages are joined into a single
// advisory string for the response.
package schema

import (
	"encoding/base64"
	"strings"

	"github.com/asaskevich/govalidator"

	"vofmun/internal/delegation/models"
)

const dataURLMarker = ";base64,"

// Validate checks a submission and returns the validated delegation or the
// full list of violation messages.
func Validate(req models.SubmissionRequest) (*models.Delegation, []string) {
	var msgs []string
	add := func(m string) { msgs = append(msgs, m) }

	if strings.TrimSpace(req.SchoolName) == "" {
		add("School name is required")
	}
	if strings.TrimSpace(req.SchoolAddress) == "" {
		add("School address is required")
	}
	if !govalidator.IsEmail(strings.TrimSpace(req.SchoolEmail)) {
		add("Enter a valid school email address")
	}
	if strings.TrimSpace(req.SchoolCountry) == "" {
		add("School country is required")
	}
	if strings.TrimSpace(req.DirectorName) == "" {
		add("Director name is required")
	}
	if !govalidator.IsEmail(strings.TrimSpace(req.DirectorEmail)) {
		add("Enter a valid director email address")
	}
	if strings.TrimSpace(req.DirectorPhone) == "" {
		add("Director phone number is required")
	}
	if req.NumFaculty == nil || int(*req.NumFaculty) < 0 {
		add("Number of faculty must be zero or higher")
	}
	if req.NumDelegates == nil || int(*req.NumDelegates) < 0 {
		add("Number of delegates must be zero or higher")
	}
	if !req.TermsAccepted {
		add("Terms and conditions must be accepted")
	}

	var data []byte
	if strings.TrimSpace(req.Spreadsheet.FileName) == "" {
		add("Spreadsheet file name is required")
	}
	if strings.TrimSpace(req.Spreadsheet.MimeType) == "" {
		add("Spreadsheet MIME type is required")
	}
	if decoded, ok := decodeDataURL(req.Spreadsheet.DataURL); ok {
		data = decoded
	} else {
		add("Invalid spreadsheet payload received")
	}

	if len(msgs) > 0 {
		return nil, msgs
	}

	return &models.Delegation{
		SchoolName:          strings.TrimSpace(req.SchoolName),
		SchoolAddress:       strings.TrimSpace(req.SchoolAddress),
		SchoolEmail:         strings.TrimSpace(req.SchoolEmail),
		SchoolCountry:       strings.TrimSpace(req.SchoolCountry),
		DirectorName:        strings.TrimSpace(req.DirectorName),
		DirectorEmail:       strings.TrimSpace(req.DirectorEmail),
		DirectorPhone:       strings.TrimSpace(req.DirectorPhone),
		NumFaculty:          int(*req.NumFaculty),
		NumDelegates:        int(*req.NumDelegates),
		Requests:            strings.TrimSpace(req.Requests),
		HeardAbout:          strings.TrimSpace(req.HeardAbout),
		TermsAccepted:       true,
		SpreadsheetFileName: req.Spreadsheet.FileName,
		SpreadsheetMimeType: req.Spreadsheet.MimeType,
		SpreadsheetData:     data,
	}, nil
}

func decodeDataURL(dataURL string) ([]byte, bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, false
	}
	idx := strings.Index(dataURL, dataURLMarker)
	if idx < 0 {
		return nil, false
	}
	payload := dataURL[idx+len(dataURLMarker):]
	if payload == "" {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return decoded, true
}
