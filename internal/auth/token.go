package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hongminglow/grocery-cli/internal/models"
)

// ErrInvalidTicket is returned for tickets that fail signature or claim checks.
var ErrInvalidTicket = errors.New("invalid session ticket")

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs sessions into tickets so the role chosen at login cannot change afterwards.
type TokenManager struct {
	secret []byte
	issuer string
}

// NewTokenManager creates a manager with the provided secret and issuer.
// An empty secret is replaced by random bytes that live as long as the process.
func NewTokenManager(secret, issuer string) (*TokenManager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return &TokenManager{secret: key, issuer: issuer}, nil
}

// Issue signs a new session for username with the given role.
func (t *TokenManager) Issue(username string, role models.Role, now time.Time) (string, error) {
	claims := sessionClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   t.issuer,
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies a ticket and returns the session it carries.
func (t *TokenManager) Parse(ticket string) (models.Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(ticket, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer))
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	session := models.Session{ID: claims.ID, Username: claims.Subject, Role: role}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}
