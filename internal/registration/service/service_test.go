package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vofmun/internal/registration/models"
	"vofmun/internal/registration/store"
	"vofmun/internal/storage"
	dErrors "vofmun/pkg/domain-errors"
	"vofmun/pkg/requestcontext"
)

const proofBucket = "payment-proofs"

func validSignup() models.SignupRequest {
	return models.SignupRequest{
		FormData: models.FormData{
			Email:            "dana@example.org",
			FirstName:        "Dana",
			LastName:         "Haddad",
			Phone:            "+971501234567",
			Nationality:      "ae",
			School:           "Gulf International Academy",
			Grade:            "11",
			DietaryType:      "vegetarian",
			HasAllergies:     "no",
			EmergencyContact: "Rami Haddad",
			EmergencyPhone:   "+971507654321",
			AgreeTerms:       true,
			AgreePhotos:      true,
		},
		SelectedRole: "delegate",
		DelegateData: &models.DelegateProfile{
			Experience: models.ExperienceBeginner,
			Committee1: "who",
		},
		PaymentConfirmation: &models.PaymentConfirmationRequest{
			FullName: "Dana Haddad",
			Role:     "delegate",
			FileName: "receipt.png",
			MimeType: "image/png",
			DataURL:  "data:image/png;base64,iVBORw0KGgo=",
		},
	}
}

func newService(t *testing.T) (*Service, *store.MemoryStore, *storage.InMemoryStore) {
	t.Helper()
	users := store.NewMemoryStore()
	objects := storage.NewInMemoryStore(proofBucket)
	return New(users, objects, proofBucket), users, objects
}

func TestSubmitPersistsRegistrantAndProof(t *testing.T) {
	svc, users, objects := newService(t)
	ctx := requestcontext.WithTime(context.Background(), time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))

	id, err := svc.Submit(ctx, validSignup())
	require.NoError(t, err)
	assert.Positive(t, id)

	rows, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "dana@example.org", rows[0].Email)
	assert.Equal(t, "AE", rows[0].Nationality)
	assert.NotEmpty(t, rows[0].PaymentProofURL)
	assert.Equal(t, "receipt.png", rows[0].PaymentProofFileName)
	require.NotNil(t, rows[0].PaymentProofUploadedAt)

	require.Equal(t, 1, objects.ObjectCount(proofBucket))
	for key, obj := range objects.Objects(proofBucket) {
		assert.True(t, strings.HasPrefix(key, "2026-01-15/"), "key %q should be date-prefixed", key)
		assert.True(t, strings.HasSuffix(key, "-receipt.png"))
		assert.Equal(t, "image/png", obj.ContentType)
	}
}

func TestSubmitRejectsInvalidRequest(t *testing.T) {
	svc, users, objects := newService(t)

	req := validSignup()
	req.FormData.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	rows, _ := users.List(context.Background())
	assert.Empty(t, rows)
	assert.Zero(t, objects.ObjectCount(proofBucket))
}

func TestSubmitDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Submit(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validSignup())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Equal(t, "An account with this email already exists", dErrors.MessageOf(err))
}

func TestSubmitFailedUploadWritesNoRow(t *testing.T) {
	svc, users, objects := newService(t)
	objects.FailUploads = true

	_, err := svc.Submit(context.Background(), validSignup())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	rows, _ := users.List(context.Background())
	assert.Empty(t, rows, "a failed proof upload must not persist the registrant")
}

func TestSubmitMissingBucketIsUnavailable(t *testing.T) {
	users := store.NewMemoryStore()
	objects := storage.NewInMemoryStore() // bucket never declared
	svc := New(users, objects, proofBucket)

	_, err := svc.Submit(context.Background(), validSignup())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))

	rows, _ := users.List(context.Background())
	assert.Empty(t, rows)
}
