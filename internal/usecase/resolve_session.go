package usecase

import (
	"context"
	"log/slog"
	"net/http"

	"admin-hub/internal/domain"
	"admin-hub/internal/metrics"
	"admin-hub/internal/session"
)

// OutcomeKind tells the HTTP layer how to proceed after the gate ran.
type OutcomeKind int

const (
	// OutcomeContinue hands the request to the route handler.
	OutcomeContinue OutcomeKind = iota
	// OutcomeRedirect stops the request with a redirect.
	OutcomeRedirect
)

// Outcome is the result of one gate pass. On OutcomeContinue, User may be nil for
// anonymous requests to public routes. On OutcomeRedirect, Status and Location
// describe the response.
type Outcome struct {
	Kind         OutcomeKind
	Status       int
	Location     string
	User         *domain.User
	SessionToken string
}

// ResolveSession resolves the current user from the session cookie, refreshes an
// expired session once, and enforces authentication on the protected route group.
type ResolveSession struct {
	sessions  *session.Manager
	loginPath string
	logger    *slog.Logger
}

// NewResolveSession creates a new ResolveSession usecase.
func NewResolveSession(m *session.Manager, loginPath string, l *slog.Logger) *ResolveSession {
	return &ResolveSession{sessions: m, loginPath: loginPath, logger: l}
}

// Execute runs the gate for one request. protected reports whether the matched
// route belongs to the protected group.
func (uc *ResolveSession) Execute(ctx context.Context, store session.CookieStore, protected bool) Outcome {
	token, present := uc.sessions.SessionToken(store)
	if !present {
		if protected {
			return uc.redirect(ctx, metrics.OutcomeUnauthorized)
		}
		metrics.RecordGateOutcome(metrics.OutcomeAnonymous)
		return Outcome{Kind: OutcomeContinue}
	}

	if user := uc.sessions.ValidateSessionToken(ctx, token).User; user != nil {
		metrics.RecordGateOutcome(metrics.OutcomeValid)
		return Outcome{Kind: OutcomeContinue, User: user, SessionToken: token}
	}

	user, token, ok := uc.refresh(ctx, store)
	if !ok {
		uc.sessions.DeleteAllTokenCookies(store)
		return uc.redirect(ctx, metrics.OutcomeRefreshFail)
	}

	metrics.RecordGateOutcome(metrics.OutcomeRefreshed)
	return Outcome{Kind: OutcomeContinue, User: user, SessionToken: token}
}

// refresh performs the single refresh attempt and re-resolves the identity with
// the new access token.
func (uc *ResolveSession) refresh(ctx context.Context, store session.CookieStore) (*domain.User, string, bool) {
	refreshToken, present := uc.sessions.RefreshToken(store)
	if !present {
		uc.logger.DebugContext(ctx, "session invalid and no refresh token present")
		return nil, "", false
	}

	result := uc.sessions.RefreshAccessToken(ctx, refreshToken)
	if !result.Success {
		return nil, "", false
	}

	user := uc.sessions.ValidateSessionToken(ctx, result.Tokens.AccessToken).User
	if user == nil {
		uc.logger.WarnContext(ctx, "refreshed access token was rejected by the backend")
		return nil, "", false
	}

	uc.sessions.IssueTokens(store, result.Tokens)
	uc.logger.InfoContext(ctx, "session refreshed", "user_id", user.ID)
	return user, result.Tokens.AccessToken, true
}

func (uc *ResolveSession) redirect(ctx context.Context, outcome string) Outcome {
	metrics.RecordGateOutcome(outcome)
	uc.logger.DebugContext(ctx, "redirecting to login", "outcome", outcome)
	return Outcome{Kind: OutcomeRedirect, Status: http.StatusFound, Location: uc.loginPath}
}
