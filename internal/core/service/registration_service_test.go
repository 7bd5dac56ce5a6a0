package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

type stubHasher struct {
	err error
}

func (h stubHasher) Hash(plaintext string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hash:" + plaintext, nil
}

func TestRegistrationService_RegisterEmployee(t *testing.T) {
	employees, customers := newStubDirectory(), newStubDirectory()
	svc := NewRegistrationService(employees, customers, stubHasher{}, zerolog.Nop())

	acc, err := svc.RegisterEmployee(context.Background(), ports.RegisterInput{
		Name: "Ana", Email: "ana@ferre.com", Password: "pw1234",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if acc.PasswordHash != "hash:pw1234" {
		t.Fatalf("expected hashed password, got %q", acc.PasswordHash)
	}
	if _, ok := employees.accounts["ana@ferre.com"]; !ok {
		t.Fatalf("expected account in employee directory")
	}
	if len(customers.accounts) != 0 {
		t.Fatalf("customer directory must be untouched")
	}
}

func TestRegistrationService_RegisterClient_Duplicate(t *testing.T) {
	customers := newStubDirectory(&domain.Account{ID: "cli-1", Email: "luis@mail.com"})
	svc := NewRegistrationService(newStubDirectory(), customers, stubHasher{}, zerolog.Nop())

	_, err := svc.RegisterClient(context.Background(), ports.RegisterInput{
		Name: "Luis", Email: "luis@mail.com", Password: "pw1234",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegistrationService_Validation(t *testing.T) {
	svc := NewRegistrationService(newStubDirectory(), newStubDirectory(), stubHasher{}, zerolog.Nop())

	inputs := []ports.RegisterInput{
		{Email: "a@b.com", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@b.com"},
		{Name: "  ", Email: "a@b.com", Password: "pw"},
		{Name: "A", Email: "a@b.com", Password: strings.Repeat("x", 73)},
	}
	for i, in := range inputs {
		if _, err := svc.RegisterClient(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("input %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestRegistrationService_HashFailure(t *testing.T) {
	svc := NewRegistrationService(newStubDirectory(), newStubDirectory(), stubHasher{err: errors.New("too long")}, zerolog.Nop())

	if _, err := svc.RegisterClient(context.Background(), ports.RegisterInput{Name: "A", Email: "a@b.com", Password: "pw"}); err == nil {
		t.Fatalf("expected error")
	}
}
