package cache

import (
	"time"

	"admin-hub/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// OrganizationCache is a size-bounded, TTL-expiring cache of public organization
// metadata keyed by shortcode. It never holds identities or tokens.
// Implements domain.OrganizationCache.
type OrganizationCache struct {
	lru *expirable.LRU[string, domain.Organization]
}

// NewOrganizationCache creates a cache holding at most size entries for ttl each.
func NewOrganizationCache(size int, ttl time.Duration) *OrganizationCache {
	return &OrganizationCache{
		lru: expirable.NewLRU[string, domain.Organization](size, nil, ttl),
	}
}

// Get returns a copy of the cached organization.
func (c *OrganizationCache) Get(shortcode string) (*domain.Organization, bool) {
	org, ok := c.lru.Get(shortcode)
	if !ok {
		return nil, false
	}
	return &org, true
}

// Set stores org under shortcode.
func (c *OrganizationCache) Set(shortcode string, org domain.Organization) {
	c.lru.Add(shortcode, org)
}

// Len returns the number of live entries.
func (c *OrganizationCache) Len() int {
	return c.lru.Len()
}
