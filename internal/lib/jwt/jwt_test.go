package jwt

import (
	"testing"
	"time"

	"github.com/14kear/csi-portal/internal/entity"
	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	user := entity.User{ID: 42, Email: "lead@example.com", Role: entity.RoleITLead}

	token, err := NewAccessToken(user, secret, time.Minute)
	require.NoError(t, err)

	actor, err := ParseAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), actor.ID)
	assert.Equal(t, "lead@example.com", actor.Email)
	assert.Equal(t, entity.RoleITLead, actor.Role)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	token, err := NewAccessToken(entity.User{ID: 1, Role: entity.RoleAdmin}, secret, time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_Expired(t *testing.T) {
	token, err := NewAccessToken(entity.User{ID: 1, Role: entity.RoleAdmin}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_WrongType(t *testing.T) {
	token := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, jwtGo.MapClaims{
		"uid":  1,
		"role": "admin",
		"typ":  "refresh",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
