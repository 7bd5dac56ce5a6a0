package ports

import "github.com/ferreteria-epa/backoffice/internal/core/domain"

// SessionIssuer mints and decodes self-contained session tokens.
type SessionIssuer interface {
	Issue(subjectID string, role domain.Role) (*domain.Session, error)
	// Decode returns domain.ErrInvalidToken for any bad signature, malformed
	// structure, unknown role or expired token.
	Decode(token string) (*domain.SessionClaims, error)
}

// PasswordVerifier compares a plaintext password with a stored hash.
type PasswordVerifier interface {
	Verify(plaintext, hash string) bool
}

// PasswordHasher produces the stored form of a new password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}
