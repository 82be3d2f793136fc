package domain

// State is a top-level jurisdiction a user can be assigned to.
type State struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// District is a jurisdiction inside a State.
type District struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	StateID ID     `json:"state_id,omitempty"`
}

// User is the identity resolved from a valid session token for a single request.
type User struct {
	ID          ID         `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	Permissions []string   `json:"permissions"`
	States      []State    `json:"states,omitempty"`
	Districts   []District `json:"districts,omitempty"`
}
