package handler

import "github.com/labstack/echo/v4"

// Routes holds everything RegisterRoutes mounts.
type Routes struct {
	Auth   *AuthHandler
	Me     *MeHandler
	Health *HealthHandler

	// Proxy forwards {ProtectedPrefix}/api/* to the backend.
	Proxy echo.HandlerFunc
	// Metrics serves /internal/metrics.
	Metrics echo.HandlerFunc

	ProtectedPrefix string
	LoginPath       string

	// Gate runs on every route except /health and /internal.
	Gate echo.MiddlewareFunc
	// Organization runs on the login routes.
	Organization echo.MiddlewareFunc
	// LoginLimiter guards POST LoginPath.
	LoginLimiter echo.MiddlewareFunc
	// EntityPermission authorizes proxied API calls by collection and method.
	EntityPermission echo.MiddlewareFunc
	// ProxyHeaders rewrites proxied request headers.
	ProxyHeaders echo.MiddlewareFunc
	// Internal guards /internal; nil leaves it open.
	Internal echo.MiddlewareFunc
}

// RegisterRoutes mounts the HTTP surface on e.
func RegisterRoutes(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Handle)

	internal := e.Group("/internal")
	if r.Internal != nil {
		internal.Use(r.Internal)
	}
	internal.GET("/metrics", r.Metrics)

	app := e.Group("", r.Gate)

	login := app.Group("", r.Organization)
	login.GET(r.LoginPath, r.Auth.LoginPage)
	login.POST(r.LoginPath, r.Auth.Login, r.LoginLimiter)
	login.POST("/logout", r.Auth.Logout)

	protected := app.Group(r.ProtectedPrefix)
	protected.GET("", r.Me.Me)
	protected.GET("/me", r.Me.Me)
	protected.GET("/csrf", r.Me.CSRF)

	api := protected.Group("/api", r.EntityPermission, r.ProxyHeaders)
	api.Any("/:collection", r.Proxy)
	api.Any("/:collection/*", r.Proxy)
}
