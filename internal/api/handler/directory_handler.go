package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

// DirectoryHandler lists the accounts of one directory.
type DirectoryHandler struct {
	directory ports.Directory
}

func NewDirectoryHandler(directory ports.Directory) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// List returns every account without password hashes.
//
// @Summary      List accounts
// @Tags         directory
// @Produce      json
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/customers [get]
// @Router       /api/employee [get]
func (h *DirectoryHandler) List(c echo.Context) error {
	accounts, err := h.directory.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}
