package usecase

import (
	"context"
	"log/slog"

	"admin-hub/internal/domain"
	"admin-hub/internal/metrics"
	"admin-hub/internal/session"
	"admin-hub/utils/validator"
)

// ResolveOrganization keeps the organization cookie in line with the organization
// requested in the query string and returns the active organization, if any.
type ResolveOrganization struct {
	directory domain.OrganizationDirectory
	cache     domain.OrganizationCache
	sessions  *session.Manager
	validator *validator.Validator
	logger    *slog.Logger
}

// NewResolveOrganization creates a new ResolveOrganization usecase.
func NewResolveOrganization(d domain.OrganizationDirectory, c domain.OrganizationCache, m *session.Manager, v *validator.Validator, l *slog.Logger) *ResolveOrganization {
	return &ResolveOrganization{directory: d, cache: c, sessions: m, validator: v, logger: l}
}

// Execute never fails. When requested differs from the cookie it is looked up and,
// on success, stored in the cookie; on failure the cookie is deleted and the
// request proceeds without organization context.
func (uc *ResolveOrganization) Execute(ctx context.Context, store session.CookieStore, requested string) *domain.Organization {
	current, hasCurrent := uc.sessions.OrganizationShortcode(store)

	if requested == "" || (hasCurrent && requested == current) {
		if !hasCurrent {
			return nil
		}
		org, err := uc.lookup(ctx, current)
		if err != nil {
			uc.logger.DebugContext(ctx, "organization from cookie not resolvable", "shortcode", current, "error", err)
			return nil
		}
		return org
	}

	org, err := uc.lookup(ctx, requested)
	if err != nil {
		uc.logger.InfoContext(ctx, "organization lookup failed", "shortcode", requested, "error", err)
		uc.sessions.DeleteOrganizationCookie(store)
		return nil
	}

	uc.sessions.SetOrganizationCookie(store, org.Shortcode)
	return org
}

func (uc *ResolveOrganization) lookup(ctx context.Context, shortcode string) (*domain.Organization, error) {
	if !uc.validator.IsShortcode(shortcode) {
		metrics.RecordOrganizationLookup("invalid")
		return nil, domain.ErrOrganizationNotFound
	}

	if org, found := uc.cache.Get(shortcode); found {
		metrics.RecordOrganizationLookup("hit")
		return org, nil
	}

	org, err := uc.directory.PublicOrganization(ctx, shortcode)
	if err != nil {
		metrics.RecordOrganizationLookup("error")
		return nil, err
	}

	metrics.RecordOrganizationLookup("miss")
	uc.cache.Set(shortcode, *org)
	return org, nil
}
