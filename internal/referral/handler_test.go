package referral_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vofmun/internal/referral"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	referral.NewHandler(slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func validate(t *testing.T, code string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/referral-codes/validate?code="+code, nil)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandlerValidateExactMatch(t *testing.T) {
	status, body := validate(t, "ag7kq")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "Ansh Gupta", body["owner"])
	assert.Empty(t, body["suggestions"])
}

func TestHandlerValidateNearMiss(t *testing.T) {
	status, body := validate(t, "AG7KX")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["valid"])
	assert.NotContains(t, body, "owner")

	suggestions, ok := body["suggestions"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, suggestions)
	first, ok := suggestions[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AG7KQ", first["code"])
	assert.Equal(t, float64(1), first["distance"])
}

func TestHandlerValidateNoMatch(t *testing.T) {
	status, body := validate(t, "ZZZZZZZZZ")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, []any{}, body["suggestions"])
}

func TestHandlerValidateBlankCode(t *testing.T) {
	status, body := validate(t, "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, []any{}, body["suggestions"])
}
