// Package guard implements the admission decision taken before any guarded
// page renders. The decision is a pure function of the latest resolved
// values of three independently-settling sources (identity, connection
// handle, caller lookups), recombined on every evaluation. Readiness gates
// are checked strictly before data gates, else a not-yet-ready profile read
// is misread as "no profile" and bounces the caller into a redirect loop
// with profile setup.
package guard

import (
	"hotelcluster/internal/model"
	"hotelcluster/internal/resolver"
)

// State is the admission state for one evaluation.
type State int

const (
	// Initializing: the identity provider bootstrap has not finished.
	Initializing State = iota
	// Unauthenticated: no usable identity; redirect to login.
	Unauthenticated
	// AwaitingConnection: the backend handle is nil or still binding.
	AwaitingConnection
	// AwaitingProfile: the profile lookup has not completed yet.
	AwaitingProfile
	// AwaitingRoleCheck: the route needs a role and the check is pending.
	AwaitingRoleCheck
	// ProfileMissing: authenticated but not onboarded; redirect to setup.
	ProfileMissing
	// AuthError: an unexpected lookup failure; offer logout.
	AuthError
	// AccessDenied: admitted identity, insufficient role; no auto-redirect.
	AccessDenied
	// Admitted: render the guarded content.
	Admitted
)

var stateNames = map[State]string{
	Initializing:       "initializing",
	Unauthenticated:    "unauthenticated",
	AwaitingConnection: "awaiting_connection",
	AwaitingProfile:    "awaiting_profile",
	AwaitingRoleCheck:  "awaiting_role_check",
	ProfileMissing:     "profile_missing",
	AuthError:          "auth_error",
	AccessDenied:       "access_denied",
	Admitted:           "admitted",
}

func (s State) String() string {
	return stateNames[s]
}

// Pending reports whether the state is a transient loading state.
func (s State) Pending() bool {
	switch s {
	case Initializing, AwaitingConnection, AwaitingProfile, AwaitingRoleCheck:
		return true
	}
	return false
}

// Routes names the navigation targets the guard redirects to.
type Routes struct {
	Login        string
	ProfileSetup string
	AdminHome    string
	UserHome     string
}

// Snapshot is the input to one admission decision: the latest resolved
// values of the three asynchronous sources plus the route being entered.
type Snapshot struct {
	Initializing  bool
	Authenticated bool

	HasActor      bool
	ActorFetching bool

	Profile resolver.ProfileResult
	Admin   resolver.AdminResult

	// RequiredRole is empty when the route only needs an onboarded caller.
	RequiredRole model.Role
	// Path is the route being entered.
	Path string
}

// Decision is the admission outcome. Redirect is set only for the states
// that navigate as a side effect; AccessDenied deliberately never
// redirects, to avoid loops, and instead carries escape targets.
type Decision struct {
	State    State
	Redirect string
	Message  string
}

// Decide evaluates the admission rules in precedence order.
func Decide(s Snapshot, routes Routes) Decision {
	if s.Initializing {
		return Decision{State: Initializing, Message: "Initializing..."}
	}

	if !s.Authenticated {
		return Decision{State: Unauthenticated, Redirect: routes.Login}
	}

	if !s.HasActor || s.ActorFetching {
		return Decision{State: AwaitingConnection, Message: "Setting up your session..."}
	}

	// Fetched, not loading, is the gate: a cached-but-stale profile must
	// not re-trigger the loading path on revalidation.
	if !s.Profile.Fetched {
		return Decision{State: AwaitingProfile, Message: "Loading your profile..."}
	}

	if s.Profile.Outcome == resolver.OutcomeError {
		return Decision{State: AuthError, Message: "There was an error verifying your account."}
	}

	if s.Profile.Outcome == resolver.OutcomeNotOnboarded {
		if s.Path == routes.ProfileSetup {
			return Decision{State: Admitted}
		}
		return Decision{State: ProfileMissing, Redirect: routes.ProfileSetup}
	}

	// A deactivated profile blocks every role-gated page.
	if s.Path != routes.ProfileSetup && s.Profile.Profile != nil && !s.Profile.Profile.IsActive {
		return Decision{State: AccessDenied, Message: "Your account has been deactivated."}
	}

	if s.RequiredRole == model.RoleAdmin {
		if !s.Admin.Fetched {
			return Decision{State: AwaitingRoleCheck, Message: "Checking permissions..."}
		}
		if !s.Admin.IsAdmin {
			return Decision{State: AccessDenied, Message: "You do not have permission to access this page."}
		}
	}

	return Decision{State: Admitted}
}
