package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"admin-hub/internal/domain"
	"admin-hub/internal/metrics"
	"admin-hub/utils/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 1 << 20

// Backend operations, used as span names and metric labels.
const (
	opCurrentUser  = "users.me"
	opRefreshToken = "login.refresh_token"
	opAccessToken  = "login.access_token"
	opLogout       = "login.logout"
	opOrganization = "organization.public"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s returned status %d", e.Operation, e.StatusCode)
}

// Unwrap classifies the status: 401/403 are credential rejections, anything else
// means the backend could not serve the call.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return domain.ErrUnauthorized
	}
	return domain.ErrBackendUnavailable
}

// BackendGateway talks to the admin REST backend.
// Implements domain.IdentityProvider, domain.TokenService and domain.OrganizationDirectory.
type BackendGateway struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tracer     trace.Tracer
}

// NewBackendGateway creates a backend gateway with a tuned HTTP transport.
// timeout bounds every individual call.
func NewBackendGateway(baseURL string, timeout time.Duration) *BackendGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &BackendGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		timeout: timeout,
		tracer:  otel.Tracer("admin-hub/gateway"),
	}
}

// CurrentUser resolves the user behind accessToken via GET /users/me.
func (g *BackendGateway) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, domain.ErrSessionNotFound
	}

	var user domain.User
	if err := g.do(ctx, opCurrentUser, http.MethodGet, "/users/me", nil, "", accessToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RefreshToken mints a new token pair via POST /login/refresh-token/.
func (g *BackendGateway) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrSessionNotFound
	}

	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedTokens, err)
	}

	var wire tokenResponse
	if err := g.do(ctx, opRefreshToken, http.MethodPost, "/login/refresh-token/", strings.NewReader(string(body)), "application/json", "", &wire); err != nil {
		return nil, err
	}
	return wire.toDomain()
}

// AccessToken exchanges credentials for a token pair via POST /login/access-token.
func (g *BackendGateway) AccessToken(ctx context.Context, creds domain.Credentials) (*domain.TokenPair, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	var wire tokenResponse
	err := g.do(ctx, opAccessToken, http.MethodPost, "/login/access-token", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", "", &wire)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return wire.toDomain()
}

// Logout invalidates accessToken via POST /login/logout/.
func (g *BackendGateway) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return domain.ErrSessionNotFound
	}
	return g.do(ctx, opLogout, http.MethodPost, "/login/logout/", nil, "", accessToken, nil)
}

// PublicOrganization fetches organization metadata via GET /organization/public/{shortcode}.
func (g *BackendGateway) PublicOrganization(ctx context.Context, shortcode string) (*domain.Organization, error) {
	if shortcode == "" {
		return nil, domain.ErrOrganizationNotFound
	}

	var org domain.Organization
	err := g.do(ctx, opOrganization, http.MethodGet, "/organization/public/"+url.PathEscape(shortcode), nil, "", "", &org)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrOrganizationNotFound, shortcode)
		}
		return nil, err
	}
	if org.Shortcode == "" {
		org.Shortcode = shortcode
	}
	return &org, nil
}

// do performs a single bounded backend call and decodes a 2xx JSON body into out.
func (g *BackendGateway) do(ctx context.Context, operation, method, path string, body io.Reader, contentType, bearer string, out any) (err error) {
	ctx = logger.WithOperation(ctx, operation)
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := g.tracer.Start(ctx, "backend "+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	start := time.Now()
	outcome := "ok"
	defer func() {
		elapsed := time.Since(start)
		metrics.RecordBackendCall(operation, outcome, elapsed.Seconds())
		switch {
		case err == nil:
			logger.GlobalContext.LogDuration(ctx, operation, elapsed)
		case errors.Is(err, domain.ErrBackendUnavailable):
			logger.GlobalContext.LogError(ctx, operation, err)
			fallthrough
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		outcome = "error"
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		outcome = "error"
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		outcome = fmt.Sprintf("status_%dxx", resp.StatusCode/100)
		return &StatusError{Operation: operation, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		outcome = "decode_error"
		return fmt.Errorf("%w: decode %s: %w", domain.ErrBackendUnavailable, operation, err)
	}
	return nil
}
