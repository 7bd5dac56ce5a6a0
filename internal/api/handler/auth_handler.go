package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/api/metrics"
	"github.com/ferreteria-epa/backoffice/internal/core/domain"
	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

// CookieOptions controls the session cookie written at login.
type CookieOptions struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type meResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Login authenticates the caller and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_payload").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_payload").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPrincipalNotFound):
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeNotFound)).Inc()
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "user not found"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeInvalidPassword)).Inc()
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid password"})
	default:
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeError)).Inc()
		h.log.Error().Err(err).Str("path", c.Path()).Msg("login failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeSuccess)).Inc()
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "login successful"})
}

// Logout tells the client to drop the session cookie. The token itself stays
// valid until it expires.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}

// Me returns the identity carried by the caller's session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/login/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, role, err := ctxSubject(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{ID: id, Role: string(role)})
}
