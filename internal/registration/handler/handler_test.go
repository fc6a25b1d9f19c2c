package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vofmun/internal/registration/handler"
	"vofmun/internal/registration/service"
	"vofmun/internal/registration/store"
	"vofmun/internal/storage"
)

const proofBucket = "payment-proofs"

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	users := store.NewMemoryStore()
	objects := storage.NewInMemoryStore(proofBucket)
	svc := service.New(users, objects, proofBucket)

	r := chi.NewRouter()
	handler.New(svc, slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func validSignupBody() map[string]any {
	return map[string]any{
		"formData": map[string]any{
			"email":            "dana@example.org",
			"firstName":        "Dana",
			"lastName":         "Haddad",
			"phone":            "+971501234567",
			"nationality":      "AE",
			"school":           "Gulf International Academy",
			"grade":            "11",
			"dietaryType":      "vegetarian",
			"hasAllergies":     "no",
			"emergencyContact": "Rami Haddad",
			"emergencyPhone":   "+971507654321",
			"agreeTerms":       true,
			"agreePhotos":      true,
		},
		"selectedRole": "delegate",
		"delegateData": map[string]any{
			"experience": "beginner",
			"committee1": "who",
		},
		"paymentConfirmation": map[string]any{
			"fullName": "Dana Haddad",
			"role":     "delegate",
			"fileName": "receipt.png",
			"mimeType": "image/png",
			"dataUrl":  "data:image/png;base64,iVBORw0KGgo=",
		},
	}
}

func postSignup(t *testing.T, r chi.Router, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSignupCreated(t *testing.T) {
	r := newRouter(t)

	rec := postSignup(t, r, validSignupBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string `json:"message"`
		UserID  int64  `json:"userId"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Registration submitted successfully!", resp.Message)
	assert.Positive(t, resp.UserID)
}

func TestSignupValidationError(t *testing.T) {
	r := newRouter(t)

	body := validSignupBody()
	form := body["formData"].(map[string]any)
	form["email"] = ""

	rec := postSignup(t, r, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Message)
}

func TestSignupMismatchedRolePayload(t *testing.T) {
	r := newRouter(t)

	body := validSignupBody()
	delete(body, "delegateData")
	body["chairData"] = map[string]any{
		"experiences": []map[string]any{{"conference": "DIAMUN", "position": "Chair", "year": "2024"}},
	}

	rec := postSignup(t, r, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newRouter(t)

	rec := postSignup(t, r, validSignupBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postSignup(t, r, validSignupBody())
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "An account with this email already exists", resp.Message)
}

func TestSignupMalformedBody(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
