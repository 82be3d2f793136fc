package permission

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrAccessDenied matches every *AccessDeniedError via errors.Is.
var ErrAccessDenied = errors.New("access denied")

// AccessDeniedError is raised when a user lacks the permission a route requires.
type AccessDeniedError struct {
	// Missing holds the required permissions. With Any set, holding one of them
	// would have been enough.
	Missing []Permission
	Any     bool
}

func (e *AccessDeniedError) Error() string {
	names := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		names[i] = string(p)
	}
	if e.Any {
		return fmt.Sprintf("access denied: requires one of [%s]", strings.Join(names, ", "))
	}
	return fmt.Sprintf("access denied: missing permission %s", strings.Join(names, ", "))
}

// StatusCode is the HTTP status for the denial.
func (e *AccessDeniedError) StatusCode() int {
	return http.StatusForbidden
}

func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrAccessDenied
}
