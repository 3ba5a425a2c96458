// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTokenRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	id := uuid.New()
	token, err := GenerateUserToken(id, 1)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "stillore", claims.Issuer)
}

func TestAdminTokenRole(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateAdminToken(uuid.New(), 1)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("unit-test-secret")
	token, err := GenerateUserToken(uuid.New(), 1)
	require.NoError(t, err)

	SetJWTSecret("a-different-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	SetJWTSecret("unit-test-secret")
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
