package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"meetgrid/internal/domain"
)

type editClaims struct {
	jwt.RegisteredClaims
	EventID string `json:"event_id"`
}

// EditTokens issues and verifies response edit tokens: HS256 JWTs whose
// subject is the response ID.
type EditTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ domain.EditTokenIssuer   = (*EditTokens)(nil)
	_ domain.EditTokenVerifier = (*EditTokens)(nil)
)

// NewEditTokens returns an issuer/verifier signing with secret. A zero ttl
// issues tokens that do not expire; the response lives only as long as its event.
func NewEditTokens(secret string, ttl time.Duration) *EditTokens {
	return &EditTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (e *EditTokens) Issue(responseID, eventID string) (string, error) {
	now := e.now()
	claims := editClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  responseID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		EventID: eventID,
	}
	if e.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(e.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(e.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (e *EditTokens) Verify(tokenString string) (string, error) {
	claims := &editClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return e.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(e.now))
	if err != nil {
		return "", fmt.Errorf("invalid edit token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("invalid edit token: missing subject")
	}
	return claims.Subject, nil
}
