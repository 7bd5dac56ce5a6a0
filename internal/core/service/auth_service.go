package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

// AdminCredentials is the single administrator account, supplied by
// configuration rather than stored in a directory. An empty Email disables it.
type AdminCredentials struct {
	Email    string
	Password string
}

// AuthDependencies groups the collaborators of AuthService.
type AuthDependencies struct {
	Employees ports.Directory
	Customers ports.Directory
	Passwords ports.PasswordVerifier
	Sessions  ports.SessionIssuer
	Audit     ports.AuditRecorder // optional
}

// AuthService resolves logins across the administrator, employee and client
// tiers, in that order.
type AuthService struct {
	admin AdminCredentials
	deps  AuthDependencies
	log   zerolog.Logger
	now   func() time.Time
}

func NewAuthService(admin AdminCredentials, deps AuthDependencies, log zerolog.Logger) *AuthService {
	return &AuthService{admin: admin, deps: deps, log: log, now: time.Now}
}

type tier int

const (
	tierNone tier = iota
	tierAdmin
	tierEmployee
	tierClient
)

// resolution is the outcome of looking an email up across the tiers.
// account is nil for tierAdmin and tierNone.
type resolution struct {
	tier    tier
	account *domain.Account
}

func (r resolution) principal() domain.Principal {
	switch r.tier {
	case tierAdmin:
		return domain.Principal{ID: domain.AdminSubjectID, Role: domain.RoleAdmin}
	case tierEmployee:
		return domain.Principal{ID: r.account.ID, Role: domain.RoleEmployee, PasswordHash: r.account.PasswordHash}
	case tierClient:
		return domain.Principal{ID: r.account.ID, Role: domain.RoleClient, PasswordHash: r.account.PasswordHash}
	}
	return domain.Principal{}
}

// Login authenticates email/password and mints a session for the resolved
// principal. It returns domain.ErrPrincipalNotFound or
// domain.ErrInvalidCredentials for client-side failures; any other error is
// an infrastructure failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	res, err := s.resolve(ctx, email, password)
	if err != nil {
		s.record(email, "", domain.OutcomeError)
		return nil, fmt.Errorf("login: %w", err)
	}

	p := res.principal()
	switch res.tier {
	case tierNone:
		s.record(email, "", domain.OutcomeNotFound)
		return nil, domain.ErrPrincipalNotFound
	case tierEmployee, tierClient:
		if !s.deps.Passwords.Verify(password, p.PasswordHash) {
			s.record(email, p.Role, domain.OutcomeInvalidPassword)
			return nil, domain.ErrInvalidCredentials
		}
	}

	session, err := s.deps.Sessions.Issue(p.ID, p.Role)
	if err != nil {
		s.record(email, p.Role, domain.OutcomeError)
		return nil, fmt.Errorf("login: %w", err)
	}

	s.record(email, p.Role, domain.OutcomeSuccess)
	s.log.Info().Str("subject", p.ID).Str("role", string(p.Role)).Msg("login succeeded")
	return session, nil
}

// resolve walks the tiers in fixed order; the first match wins.
func (s *AuthService) resolve(ctx context.Context, email, password string) (resolution, error) {
	if s.isAdmin(email, password) {
		return resolution{tier: tierAdmin}, nil
	}

	lookups := []struct {
		tier tier
		dir  ports.Directory
	}{
		{tierEmployee, s.deps.Employees},
		{tierClient, s.deps.Customers},
	}
	for _, l := range lookups {
		account, err := l.dir.FindByEmail(ctx, email)
		if err == nil {
			return resolution{tier: l.tier, account: account}, nil
		}
		if !errors.Is(err, domain.ErrPrincipalNotFound) {
			return resolution{}, err
		}
	}
	return resolution{tier: tierNone}, nil
}

func (s *AuthService) isAdmin(email, password string) bool {
	if s.admin.Email == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	return emailOK && passOK
}

func (s *AuthService) record(email string, role domain.Role, outcome domain.LoginOutcome) {
	if s.deps.Audit == nil {
		return
	}
	s.deps.Audit.Record(domain.LoginAttempt{
		Email:   email,
		Role:    role,
		Outcome: outcome,
		At:      s.now().UTC(),
	})
}
