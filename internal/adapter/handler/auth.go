package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"admin-hub/internal/domain"
	"admin-hub/internal/session"
	"admin-hub/internal/usecase"
	"admin-hub/middleware"

	"github.com/labstack/echo/v4"
)

const (
	csrfHeader    = "X-CSRF-Token"
	csrfFormField = "csrf_token"
)

// AuthHandler serves the login page, login and logout.
type AuthHandler struct {
	login        *usecase.Login
	logout       *usecase.Logout
	csrf         *usecase.CSRF
	sessions     *session.Manager
	loginPath    string
	afterLoginTo string
}

// NewAuthHandler creates a new auth handler. Successful logins are redirected to
// afterLoginTo, logouts to loginPath.
func NewAuthHandler(login *usecase.Login, logout *usecase.Logout, csrf *usecase.CSRF, m *session.Manager, loginPath, afterLoginTo string) *AuthHandler {
	return &AuthHandler{
		login:        login,
		logout:       logout,
		csrf:         csrf,
		sessions:     m,
		loginPath:    loginPath,
		afterLoginTo: afterLoginTo,
	}
}

// LoginPage renders the login form. Signed-in users go straight on.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if middleware.UserFrom(c) != nil {
		return c.Redirect(http.StatusSeeOther, h.afterLoginTo)
	}
	return h.renderLogin(c, http.StatusOK, loginPage{})
}

// Login authenticates form or JSON credentials. Form posts get the login page
// back on failure; JSON clients get the mapped error.
func (h *AuthHandler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	creds.Username = strings.TrimSpace(creds.Username)

	err := h.login.Execute(c.Request().Context(), session.NewEchoCookies(c), creds)
	if err == nil {
		slog.InfoContext(c.Request().Context(), "login succeeded")
		return c.Redirect(http.StatusSeeOther, h.afterLoginTo)
	}

	if !isFormPost(c) {
		return err
	}

	he := mapDomainError(err)
	message := "Sign in failed. Please try again later."
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		message = "Invalid username or password."
	case errors.Is(err, domain.ErrInvalidInput):
		message = "Please enter your username and password."
	}
	return h.renderLogin(c, he.Code, loginPage{Username: creds.Username, Error: message})
}

// Logout requires a CSRF token bound to the session cookie, invalidates the
// session on the backend and clears the token cookies.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	store := session.NewEchoCookies(c)

	sessionToken, _ := h.sessions.SessionToken(store)
	token := c.Request().Header.Get(csrfHeader)
	if token == "" {
		token = c.FormValue(csrfFormField)
	}
	if err := h.csrf.Check(ctx, sessionToken, token); err != nil {
		return err
	}

	result := h.logout.Execute(ctx, store, middleware.SessionTokenFrom(c))
	slog.InfoContext(ctx, "logout completed", "backend_success", result.Success)
	return c.Redirect(http.StatusSeeOther, h.loginPath)
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, page loginPage) error {
	page.Action = h.loginPath
	page.Organization = middleware.OrganizationFrom(c)

	var buf bytes.Buffer
	if err := page.render(&buf); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func isFormPost(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}
