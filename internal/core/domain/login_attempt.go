package domain

import "time"

// LoginOutcome classifies how a login attempt ended.
type LoginOutcome string

const (
	OutcomeSuccess         LoginOutcome = "success"
	OutcomeNotFound        LoginOutcome = "not_found"
	OutcomeInvalidPassword LoginOutcome = "invalid_password"
	OutcomeError           LoginOutcome = "error"
)

// LoginAttempt is an audit record of a single login. It never carries the
// supplied password.
type LoginAttempt struct {
	Email   string
	Role    Role // empty unless a tier matched
	Outcome LoginOutcome
	At      time.Time
}
