package permission

import "admin-hub/internal/domain"

// IsStateAdmin reports whether user is scoped to exactly one state.
func IsStateAdmin(user *domain.User) bool {
	return user != nil && len(user.States) == 1
}

// HasAssignedDistricts reports whether user has at least one district.
func HasAssignedDistricts(user *domain.User) bool {
	return user != nil && len(user.Districts) > 0
}

// UserState returns the first assigned state, or nil.
func UserState(user *domain.User) *domain.State {
	if user == nil || len(user.States) == 0 {
		return nil
	}
	state := user.States[0]
	return &state
}

// UserDistricts returns the assigned districts, or nil when there are none.
func UserDistricts(user *domain.User) []domain.District {
	if user == nil || len(user.Districts) == 0 {
		return nil
	}
	return user.Districts
}
