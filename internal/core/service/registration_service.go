package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// RegistrationService creates employee and customer accounts.
type RegistrationService struct {
	employees ports.Directory
	customers ports.Directory
	hasher    ports.PasswordHasher
	log       zerolog.Logger
}

func NewRegistrationService(employees, customers ports.Directory, hasher ports.PasswordHasher, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{employees: employees, customers: customers, hasher: hasher, log: log}
}

func (s *RegistrationService) RegisterEmployee(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.register(ctx, s.employees, domain.RoleEmployee, in)
}

func (s *RegistrationService) RegisterClient(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.register(ctx, s.customers, domain.RoleClient, in)
}

func (s *RegistrationService) register(ctx context.Context, dir ports.Directory, role domain.Role, in ports.RegisterInput) (*domain.Account, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" || len(in.Password) > maxPasswordBytes {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register %s: hash password: %w", role, err)
	}

	created, err := dir.Create(ctx, &domain.Account{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("role", string(role)).Str("id", created.ID).Msg("account registered")
	return created, nil
}
