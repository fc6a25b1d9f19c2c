package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vofmun/pkg/domain-errors"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)

	tok, err := svc.IssueToken()
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "portal", claims.Subject)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", -time.Minute)

	tok, err := svc.IssueToken()
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Equal(t, "token has expired", dErrors.MessageOf(err))
}

func TestValidateRejectsWrongKey(t *testing.T) {
	tok, err := NewService("key-one", time.Hour).IssueToken()
	require.NoError(t, err)

	_, err = NewService("key-two", time.Hour).ValidateToken(tok)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)

	_, err := svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}
