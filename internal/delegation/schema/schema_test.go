package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vofmun/internal/delegation/models"
)

func flexInt(n int) *models.FlexInt {
	f := models.FlexInt(n)
	return &f
}

func validRequest() models.SubmissionRequest {
	return models.SubmissionRequest{
		SchoolName:    "Gulf International Academy",
		SchoolAddress: "12 Corniche Road, Abu Dhabi",
		SchoolEmail:   "office@gia.example.org",
		SchoolCountry: "United Arab Emirates",
		DirectorName:  "Maha Khouri",
		DirectorEmail: "mkhouri@gia.example.org",
		DirectorPhone: "+971501112233",
		NumFaculty:    flexInt(2),
		NumDelegates:  flexInt(14),
		TermsAccepted: true,
		Spreadsheet: models.Spreadsheet{
			FileName: "roster.xlsx",
			MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			DataURL:  "data:application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;base64,UEsDBA==",
		},
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	req := validRequest()
	req.SchoolName = "  Gulf International Academy  "
	req.Requests = " vegetarian lunches "

	d, msgs := Validate(req)
	require.Empty(t, msgs)
	assert.Equal(t, "Gulf International Academy", d.SchoolName)
	assert.Equal(t, "vegetarian lunches", d.Requests)
	assert.Equal(t, 14, d.NumDelegates)
	assert.NotEmpty(t, d.SpreadsheetData)
}

func TestValidateCollectsAllMessages(t *testing.T) {
	req := validRequest()
	req.SchoolName = "  "
	req.DirectorEmail = "not-an-email"
	req.TermsAccepted = false

	_, msgs := Validate(req)
	assert.Equal(t, []string{
		"School name is required",
		"Enter a valid director email address",
		"Terms and conditions must be accepted",
	}, msgs)
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SubmissionRequest)
		want   string
	}{
		{"missing school email", func(r *models.SubmissionRequest) { r.SchoolEmail = "" }, "Enter a valid school email address"},
		{"missing director phone", func(r *models.SubmissionRequest) { r.DirectorPhone = " " }, "Director phone number is required"},
		{"missing faculty count", func(r *models.SubmissionRequest) { r.NumFaculty = nil }, "Number of faculty must be zero or higher"},
		{"negative faculty count", func(r *models.SubmissionRequest) { r.NumFaculty = flexInt(-1) }, "Number of faculty must be zero or higher"},
		{"negative delegate count", func(r *models.SubmissionRequest) { r.NumDelegates = flexInt(-3) }, "Number of delegates must be zero or higher"},
		{"missing spreadsheet name", func(r *models.SubmissionRequest) { r.Spreadsheet.FileName = "" }, "Spreadsheet file name is required"},
		{"missing mime type", func(r *models.SubmissionRequest) { r.Spreadsheet.MimeType = "" }, "Spreadsheet MIME type is required"},
		{"not a data url", func(r *models.SubmissionRequest) { r.Spreadsheet.DataURL = "UEsDBA==" }, "Invalid spreadsheet payload received"},
		{"empty payload", func(r *models.SubmissionRequest) { r.Spreadsheet.DataURL = "data:text/csv;base64," }, "Invalid spreadsheet payload received"},
		{"bad base64", func(r *models.SubmissionRequest) { r.Spreadsheet.DataURL = "data:text/csv;base64,$$$$" }, "Invalid spreadsheet payload received"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, msgs := Validate(req)
			require.Len(t, msgs, 1)
			assert.Equal(t, tc.want, msgs[0])
		})
	}
}

func TestZeroCountsAreAllowed(t *testing.T) {
	req := validRequest()
	req.NumFaculty = flexInt(0)

	_, msgs := Validate(req)
	assert.Empty(t, msgs)
}

func TestFlexIntAcceptsStringForm(t *testing.T) {
	var req models.SubmissionRequest
	raw := []byte(`{"numFaculty": "3", "numDelegates": 12}`)
	require.NoError(t, json.Unmarshal(raw, &req))
	assert.Equal(t, 3, int(*req.NumFaculty))
	assert.Equal(t, 12, int(*req.NumDelegates))

	err := json.Unmarshal([]byte(`{"numFaculty": "twelve"}`), &req)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"numFaculty": 2.5}`), &req)
	assert.Error(t, err)
}
