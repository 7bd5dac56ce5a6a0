package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

type sessionClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens with a shared secret.
// It holds no state besides its configuration, so it is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a token for subjectID with the given role.
func (t *TokenIssuer) Issue(subjectID string, role domain.Role) (*domain.Session, error) {
	if len(t.secret) == 0 {
		return nil, errors.New("issue token: empty signing secret")
	}
	if subjectID == "" || !role.Valid() {
		return nil, fmt.Errorf("issue token: invalid subject or role %q", role)
	}

	now := t.now().UTC()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.Session{Token: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Decode verifies token and returns its claims. Every failure collapses to
// domain.ErrInvalidToken.
func (t *TokenIssuer) Decode(token string) (*domain.SessionClaims, error) {
	if token == "" || len(t.secret) == 0 {
		return nil, domain.ErrInvalidToken
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.SessionClaims{
		SubjectID: claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return out, nil
}
