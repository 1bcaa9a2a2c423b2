package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

func NewAccessToken(user entity.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["uid"] = user.ID
	claims["email"] = user.Email
	claims["role"] = string(user.Role)
	claims["typ"] = "access"
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates signature, type and expiry and returns the caller.
func ParseAccessToken(accessToken, secret string) (entity.Actor, error) {
	token, err := jwt.ParseWithClaims(accessToken, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return entity.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return entity.Actor{}, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	if typ, ok := claims["typ"].(string); !ok || typ != "access" {
		return entity.Actor{}, fmt.Errorf("%w: expected access token, got %v", ErrInvalidToken, claims["typ"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return entity.Actor{}, fmt.Errorf("%w: exp claim is missing", ErrInvalidToken)
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return entity.Actor{}, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return entity.Actor{}, fmt.Errorf("%w: uid claim is missing", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if !entity.Role(role).Valid() {
		return entity.Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}

	return entity.Actor{ID: int64(uid), Email: email, Role: entity.Role(role)}, nil
}
