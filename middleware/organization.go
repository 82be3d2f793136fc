package middleware

import (
	"admin-hub/internal/domain"
	"admin-hub/internal/session"
	"admin-hub/internal/usecase"
	"admin-hub/utils/logger"

	"github.com/labstack/echo/v4"
)

const (
	organizationContextKey = "admin_hub.organization"
	organizationQueryParam = "organization"
)

// Organization keeps the organization cookie in line with the organization query
// parameter. It never fails the request.
func Organization(uc *usecase.ResolveOrganization) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			org := uc.Execute(req.Context(), session.NewEchoCookies(c), c.QueryParam(organizationQueryParam))
			if org != nil {
				c.Set(organizationContextKey, org)
				c.SetRequest(req.WithContext(logger.WithOrganization(req.Context(), org.Shortcode)))
			}
			return next(c)
		}
	}
}

// OrganizationFrom returns the active organization, or nil.
func OrganizationFrom(c echo.Context) *domain.Organization {
	org, _ := c.Get(organizationContextKey).(*domain.Organization)
	return org
}
