package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key", "15m")

	token, expiresAt, err := svc.GenerateAccessToken("emp-1", "company-1", "2024-0001")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	employeeID, companyID, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
	assert.Equal(t, "company-1", companyID)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "15m")
	verifier := NewJWTService("secret-b", "15m")

	token, _, err := issuer.GenerateAccessToken("emp-1", "company-1", "2024-0001")
	require.NoError(t, err)

	_, _, err = verifier.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret-key", "15m")

	_, _, err := svc.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("emp-1", "company-1", "2024-0001")
	assert.Error(t, err)
}
