package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcs-crm/internal/pkg/config"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

func setup(t *testing.T, accessTTL int) {
	t.Helper()
	config.GlobalConfig = &config.Config{Auth: config.AuthConfig{
		JWT: config.JWTConfig{Secret: "jwt-test-secret", AccessTokenExpire: accessTTL, RefreshTokenExpire: 3600},
	}}
}

func TestGenerateAndValidate(t *testing.T) {
	setup(t, 600)
	id := Identity{UserID: 42, Email: "e@pcs.test", Name: "Eve", Role: constants.RoleEmployee, AuthType: constants.AuthTypeLocal}

	access, err := GenerateAccessToken(id)
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(id)
	require.NoError(t, err)

	claims, err := ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, constants.JWTTypeAccess, claims.Type)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, id, claims.Identity())

	claims, err = ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, constants.JWTTypeRefresh, claims.Type)
}

func TestValidateToken_Expired(t *testing.T) {
	setup(t, -60)

	token, err := GenerateAccessToken(Identity{UserID: 1})
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, pkgErrors.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setup(t, 600)
	token, err := GenerateAccessToken(Identity{UserID: 1})
	require.NoError(t, err)

	config.GlobalConfig.Auth.JWT.Secret = "another-secret"
	_, err = ParseToken(token)
	require.Error(t, err)
	assert.Equal(t, pkgErrors.CodeUnauthorized, pkgErrors.CodeOf(err))
}

func TestParseToken_RejectsNone(t *testing.T) {
	setup(t, 600)
	claims := UserClaims{UserID: 1, Type: constants.JWTTypeAccess, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}
