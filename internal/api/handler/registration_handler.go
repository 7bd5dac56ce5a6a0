package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r registerRequest) input() ports.RegisterInput {
	return ports.RegisterInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Password: r.Password}
}

// RegisterEmployee creates an employee account.
//
// @Summary      Register an employee
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Employee details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/registerEmployee [post]
func (h *RegistrationHandler) RegisterEmployee(c echo.Context) error {
	req, err := bindRegister(c)
	if err != nil {
		return err
	}
	if _, err := h.service.RegisterEmployee(c.Request().Context(), req.input()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "employee registered"})
}

// RegisterClient creates a customer account. The route is public.
//
// @Summary      Register a customer
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/registerClients [post]
func (h *RegistrationHandler) RegisterClient(c echo.Context) error {
	req, err := bindRegister(c)
	if err != nil {
		return err
	}
	if _, err := h.service.RegisterClient(c.Request().Context(), req.input()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "client registered"})
}

func bindRegister(c echo.Context) (registerRequest, error) {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}
