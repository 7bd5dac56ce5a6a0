package ports

import (
	"context"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

// Directory is a collection of accounts that can log in. Employees and
// customers each have their own.
type Directory interface {
	// FindByEmail returns domain.ErrPrincipalNotFound when no account has the email.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Create returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}
