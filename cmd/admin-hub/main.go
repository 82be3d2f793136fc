package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-hub/config"
	"admin-hub/internal/adapter/gateway"
	adapterhandler "admin-hub/internal/adapter/handler"
	infracache "admin-hub/internal/infrastructure/cache"
	infratoken "admin-hub/internal/infrastructure/token"
	"admin-hub/internal/session"
	"admin-hub/internal/usecase"
	appmiddleware "admin-hub/middleware"
	"admin-hub/utils/logger"
	"admin-hub/utils/otel"
	"admin-hub/utils/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	logger.Init(logger.OptionsFromEnv(otelCfg.ServiceName, otelCfg.ServiceVersion, otelCfg.Enabled))

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"backend_url", cfg.BackendURL,
		"port", cfg.Port,
		"environment", cfg.Environment,
		"backend_timeout", cfg.BackendTimeout,
		"protected_prefix", cfg.ProtectedPrefix)

	// Infrastructure
	backend := gateway.NewBackendGateway(cfg.BackendURL, cfg.BackendTimeout)
	orgCache := infracache.NewOrganizationCache(cfg.OrgCacheSize, cfg.OrgCacheTTL)
	csrfGenerator := infratoken.NewHMACCSRFGenerator(cfg.CSRFSecret)
	v := validator.New()
	sessions := session.NewManager(backend, backend, session.Options{
		Development: cfg.Development(),
		FallbackTTL: cfg.SessionFallbackTTL,
	}, slog.Default())

	// Usecases
	resolveSessionUC := usecase.NewResolveSession(sessions, cfg.LoginPath, slog.Default())
	resolveOrgUC := usecase.NewResolveOrganization(backend, orgCache, sessions, v, slog.Default())
	loginUC := usecase.NewLogin(backend, sessions, v, slog.Default())
	logoutUC := usecase.NewLogout(sessions, slog.Default())
	csrfUC := usecase.NewCSRF(csrfGenerator, slog.Default())

	apiPrefix := cfg.ProtectedPrefix + "/api"
	proxy, err := adapterhandler.BackendProxy(cfg.BackendURL, apiPrefix)
	if err != nil {
		slog.ErrorContext(ctx, "failed to configure backend proxy", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = adapterhandler.HTTPErrorHandler(e)

	e.Use(appmiddleware.SecurityHeaders(cfg.Development()))

	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, requestID string) {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), requestID)))
		},
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			log := logger.GlobalContext.WithContext(rctx)
			if v.Error == nil {
				log.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				log.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	var internalAuth echo.MiddlewareFunc
	if cfg.InternalAuthSecret != "" {
		internalAuth = appmiddleware.InternalAuth(cfg.InternalAuthSecret)
	}

	loginRL := appmiddleware.NewRateLimiter(ctx, appmiddleware.PerMinute(cfg.LoginRatePerMin), cfg.LoginBurst)

	adapterhandler.RegisterRoutes(e, adapterhandler.Routes{
		Auth:    adapterhandler.NewAuthHandler(loginUC, logoutUC, csrfUC, sessions, cfg.LoginPath, cfg.ProtectedPrefix),
		Me:      adapterhandler.NewMeHandler(csrfUC),
		Health:  adapterhandler.NewHealthHandler(otelCfg.ServiceVersion),
		Proxy:   proxy,
		Metrics: echo.WrapHandler(promhttp.Handler()),

		ProtectedPrefix: cfg.ProtectedPrefix,
		LoginPath:       cfg.LoginPath,

		Gate:             appmiddleware.Gate(resolveSessionUC, cfg.ProtectedPrefix),
		Organization:     appmiddleware.Organization(resolveOrgUC),
		LoginLimiter:     loginRL.Middleware(),
		EntityPermission: appmiddleware.EntityPermission("collection"),
		ProxyHeaders:     adapterhandler.BearerFromSession(),
		Internal:         internalAuth,
	})

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting admin-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
