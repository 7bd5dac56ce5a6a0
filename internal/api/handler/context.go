package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ferreteria-epa/backoffice/internal/api/middleware"
	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

// ctxSubject extracts the identity stored by the authorization gate. A
// missing value means the route was registered without the gate.
func ctxSubject(c echo.Context) (string, domain.Role, error) {
	id, _ := c.Get(middleware.ContextSubjectID).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if id == "" || !domain.Role(role).Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, domain.Role(role), nil
}
