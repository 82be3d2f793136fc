package handler

import (
	"net/http"

	"admin-hub/internal/domain"
	"admin-hub/internal/permission"
	"admin-hub/internal/usecase"
	"admin-hub/middleware"

	"github.com/labstack/echo/v4"
)

// MeHandler serves the signed-in user's profile, capabilities and CSRF token.
type MeHandler struct {
	csrf *usecase.CSRF
}

// NewMeHandler creates a new me handler.
func NewMeHandler(csrf *usecase.CSRF) *MeHandler {
	return &MeHandler{csrf: csrf}
}

type meResponse struct {
	User         *domain.User             `json:"user"`
	Capabilities permission.CapabilitySet `json:"capabilities"`
}

// csrfResponse represents the CSRF token response.
type csrfResponse struct {
	Data struct {
		CSRFToken string `json:"csrf_token"`
	} `json:"data"`
}

// Me handles GET {prefix}/me.
func (h *MeHandler) Me(c echo.Context) error {
	user := middleware.UserFrom(c)
	if user == nil {
		return domain.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, meResponse{
		User:         user,
		Capabilities: permission.Capabilities(user),
	})
}

// CSRF handles GET {prefix}/csrf.
func (h *MeHandler) CSRF(c echo.Context) error {
	token, err := h.csrf.Issue(c.Request().Context(), middleware.SessionTokenFrom(c))
	if err != nil {
		return err
	}

	resp := csrfResponse{}
	resp.Data.CSRFToken = token
	return c.JSON(http.StatusOK, resp)
}
