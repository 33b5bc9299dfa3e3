package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veramar/litoral/internal/repository"
)

// AdminHandler handles back-office endpoints.
type AdminHandler struct {
	users *repository.UserRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users *repository.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns all user accounts.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, users)
}
