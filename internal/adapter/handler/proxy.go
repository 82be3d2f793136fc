package handler

import (
	"fmt"
	"net/url"
	"strings"

	"admin-hub/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// BackendProxy forwards {apiPrefix}/* to the backend base URL. Browser cookies
// never leave this service; the backend sees the session as a bearer token.
func BackendProxy(backendURL, apiPrefix string) (echo.HandlerFunc, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}

	apiPrefix = strings.TrimSuffix(apiPrefix, "/")
	proxy := echomw.ProxyWithConfig(echomw.ProxyConfig{
		Balancer: echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{{URL: target}}),
		Rewrite:  map[string]string{apiPrefix + "/*": "/$1"},
	})

	return proxy(func(echo.Context) error { return nil }), nil
}

// BearerFromSession rewrites the outgoing headers of a proxied request: the
// Cookie header is dropped, the current session token becomes the bearer token
// and the trace context is propagated.
func BearerFromSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			req.Header.Del(echo.HeaderCookie)
			req.Header.Del(echo.HeaderAuthorization)
			if token := middleware.SessionTokenFrom(c); token != "" {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			}
			otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
			return next(c)
		}
	}
}
