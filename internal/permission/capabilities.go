package permission

import "admin-hub/internal/domain"

// Actions is what a user may do with one entity.
type Actions struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Jurisdiction summarises the user's geographic scoping.
type Jurisdiction struct {
	StateAdmin   bool              `json:"state_admin"`
	State        *domain.State     `json:"state"`
	Districts    []domain.District `json:"districts"`
	HasDistricts bool              `json:"has_districts"`
}

// CapabilitySet is served to the frontend so it can hide actions the user cannot
// perform. The backend still enforces the same rules.
type CapabilitySet struct {
	Entities     map[Entity]Actions `json:"entities"`
	Jurisdiction Jurisdiction       `json:"jurisdiction"`
}

// Capabilities evaluates every catalog entity for user.
func Capabilities(user *domain.User) CapabilitySet {
	set := CapabilitySet{
		Entities: make(map[Entity]Actions, len(Entities)),
		Jurisdiction: Jurisdiction{
			StateAdmin:   IsStateAdmin(user),
			State:        UserState(user),
			Districts:    UserDistricts(user),
			HasDistricts: HasAssignedDistricts(user),
		},
	}
	for _, entity := range Entities {
		set.Entities[entity] = Actions{
			Create: CanCreate(user, entity),
			Read:   CanRead(user, entity),
			Update: CanUpdate(user, entity),
			Delete: CanDelete(user, entity),
		}
	}
	return set
}
