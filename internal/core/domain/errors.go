package domain

import "errors"

var (
	ErrPrincipalNotFound  = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrRoleDenied         = errors.New("access denied")
	ErrEmailTaken         = errors.New("email already registered")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidInput       = errors.New("invalid input")
)
