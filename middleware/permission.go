package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"admin-hub/internal/domain"
	"admin-hub/internal/metrics"
	"admin-hub/internal/permission"

	"github.com/labstack/echo/v4"
)

// collections maps the pass-through API path segment to its entity.
var collections = map[string]permission.Entity{
	"users":         permission.EntityUser,
	"roles":         permission.EntityRole,
	"questions":     permission.EntityQuestion,
	"tests":         permission.EntityTest,
	"templates":     permission.EntityTemplate,
	"tags":          permission.EntityTag,
	"entities":      permission.EntityEntity,
	"forms":         permission.EntityForm,
	"organizations": permission.EntityOrganization,
}

// RequirePermission rejects requests whose user lacks p with the
// *permission.AccessDeniedError. It must run after Gate.
func RequirePermission(p permission.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authorize(c, p); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// EntityPermission derives the required permission from the collection path
// parameter and the request method. Unknown collections fail with
// domain.ErrUnknownEntity. Paths with dot segments or encoded separators fail
// with domain.ErrInvalidInput before the collection is read.
func EntityPermission(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := checkPathSegments(c.Request().URL); err != nil {
				return err
			}
			p, err := PermissionForRequest(c.Param(param), c.Request().Method)
			if err != nil {
				return err
			}
			if err := authorize(c, p); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// PermissionForRequest maps a collection and HTTP method to a permission.
func PermissionForRequest(collection, method string) (permission.Permission, error) {
	entity, ok := collections[collection]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownEntity, collection)
	}
	perms, _ := permission.For(entity)

	switch method {
	case http.MethodGet, http.MethodHead:
		return perms.Read, nil
	case http.MethodPost:
		return perms.Create, nil
	case http.MethodPut, http.MethodPatch:
		return perms.Update, nil
	case http.MethodDelete:
		return perms.Delete, nil
	default:
		return "", fmt.Errorf("%w: method %s", domain.ErrUnknownEntity, method)
	}
}

// checkPathSegments fails with domain.ErrInvalidInput when any segment of the
// escaped path decodes to "." or "..", or hides a separator.
func checkPathSegments(u *url.URL) error {
	for _, seg := range strings.Split(u.EscapedPath(), "/") {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return fmt.Errorf("%w: malformed path segment", domain.ErrInvalidInput)
		}
		if decoded == "." || decoded == ".." || strings.ContainsAny(decoded, "/\\") {
			return fmt.Errorf("%w: path segment %q not allowed", domain.ErrInvalidInput, seg)
		}
	}
	return nil
}

func authorize(c echo.Context, p permission.Permission) error {
	user := UserFrom(c)
	if user == nil {
		return domain.ErrUnauthorized
	}
	if err := permission.RequirePermission(user, p); err != nil {
		metrics.RecordAccessDenied(string(p))
		return err
	}
	return nil
}
