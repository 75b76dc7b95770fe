package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every authentication failure: bad signature,
// expired or not-yet-valid token, malformed input. Callers must not
// distinguish between them.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by an access token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Handle string `json:"handle"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewManager creates a token manager. The secret must be non-empty.
func NewManager(secret string, tokenTTL time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Manager{secret: []byte(secret), tokenTTL: tokenTTL}, nil
}

// Issue returns a signed access token for the given user.
func (m *Manager) Issue(userID int64, handle string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Handle: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "postapi",
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies a token and yields the user id it was issued for.
func (m *Manager) Authenticate(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC before touching the signature
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
