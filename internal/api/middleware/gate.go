package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ferreteria-epa/backoffice/internal/api/metrics"
	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

// Context keys set on admitted requests.
const (
	ContextSubjectID = "subject_id"
	ContextRole      = "role"
)

// Decision is the terminal state of one authorization check.
type Decision string

const (
	Admitted             Decision = "admitted"
	RejectedNoToken      Decision = "no_token"
	RejectedInvalidToken Decision = "invalid_token"
	RejectedRoleDenied   Decision = "role_denied"
)

// TokenDecoder is the part of the session issuer the gate needs.
type TokenDecoder interface {
	Decode(token string) (*domain.SessionClaims, error)
}

// Gate admits requests whose session cookie carries an allowed role.
type Gate struct {
	tokens     TokenDecoder
	cookieName string
}

func NewGate(tokens TokenDecoder, cookieName string) *Gate {
	return &Gate{tokens: tokens, cookieName: cookieName}
}

type gateResponse struct {
	Message string `json:"message"`
}

// Require returns middleware that only lets the given roles through. The
// allow-list is fixed when the route is registered.
func (g *Gate) Require(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, decision := g.decide(c, allowed)
			metrics.AuthorizationDecisionsTotal.WithLabelValues(string(decision)).Inc()

			switch decision {
			case RejectedNoToken:
				return c.JSON(http.StatusUnauthorized, gateResponse{Message: "No auth token, you have to login"})
			case RejectedInvalidToken:
				return c.JSON(http.StatusUnauthorized, gateResponse{Message: "invalid or expired token"})
			case RejectedRoleDenied:
				return c.JSON(http.StatusForbidden, gateResponse{Message: "Access denied"})
			}

			c.Set(ContextSubjectID, claims.SubjectID)
			c.Set(ContextRole, string(claims.Role))
			return next(c)
		}
	}
}

func (g *Gate) decide(c echo.Context, allowed map[domain.Role]struct{}) (*domain.SessionClaims, Decision) {
	cookie, err := c.Cookie(g.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, RejectedNoToken
	}

	claims, err := g.tokens.Decode(cookie.Value)
	if err != nil {
		return nil, RejectedInvalidToken
	}

	if _, ok := allowed[claims.Role]; !ok {
		return claims, RejectedRoleDenied
	}
	return claims, Admitted
}
