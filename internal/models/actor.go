package models

// ActorRole distinguishes the participants invoking the API. Requests are
// only tagged with an actor, never authenticated; the role feeds reminder
// targeting and audit rows.
type ActorRole string

const (
	RoleManager  ActorRole = "MANAGER"
	RoleEmployee ActorRole = "EMPLOYEE"
	RoleAdmin    ActorRole = "ADMIN"
)

// Actor identifies the caller of a request.
type Actor struct {
	ID   string
	Role ActorRole
}

// Pagination describes standard pagination metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
