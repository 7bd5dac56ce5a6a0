package ports

import (
	"context"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

// AuthService turns an email/password pair into a signed session.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

// RegistrationService creates directory accounts with hashed passwords.
type RegistrationService interface {
	RegisterEmployee(ctx context.Context, in RegisterInput) (*domain.Account, error)
	RegisterClient(ctx context.Context, in RegisterInput) (*domain.Account, error)
}

// RegisterInput carries the fields accepted by the registration endpoints.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}
