package domain

// ActorRoleType classifies the caller of a use case.
type ActorRoleType string

const (
	// RoleUser is a customer acting on their own account.
	RoleUser ActorRoleType = "USER"
	// RoleInternal is an operator of the service organization.
	RoleInternal ActorRoleType = "INTERNAL"
	// RoleSystem is the system itself (batch jobs, schedulers).
	RoleSystem ActorRoleType = "SYSTEM"
	// RoleAnonymous is an unauthenticated caller.
	RoleAnonymous ActorRoleType = "ANONYMOUS"
)

// Actor identifies who is invoking a use case. It is passed explicitly into
// every use-case call rather than kept in ambient state.
type Actor struct {
	ID       string
	Name     string
	RoleType ActorRoleType
	Locale   string
}

// Anonymous is the fallback actor for unauthenticated calls.
func Anonymous() Actor {
	return Actor{ID: "unknown", Name: "unknown", RoleType: RoleAnonymous}
}

// System is the actor used by batch jobs.
func System() Actor {
	return Actor{ID: "system", Name: "system", RoleType: RoleSystem}
}
