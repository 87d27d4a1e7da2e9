package guard

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/actor"
	"hotelcluster/internal/auth"
	"hotelcluster/internal/model"
	"hotelcluster/internal/resolver"
	"hotelcluster/internal/service"
)

// Context keys under which the guard exposes the admitted request's actor
// and principal to handlers.
const (
	ContextActor     = "guard.actor"
	ContextPrincipal = "guard.principal"
)

// Deps wires the guard middleware to the three asynchronous sources.
type Deps struct {
	Sessions  service.SessionService
	Registry  *actor.Registry
	Resolver  *resolver.Resolver
	Routes    Routes
	Navigator *Navigator
}

// StatePayload is the response body for every non-admitted state.
type StatePayload struct {
	State    string `json:"state"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Retry    bool   `json:"retry,omitempty"`
	// Escape targets for the access-denied card; never an auto-redirect.
	Dashboard string `json:"dashboard,omitempty"`
	Logout    string `json:"logout,omitempty"`
}

// Middleware evaluates the admission decision for every request and either
// invokes the next handler or renders the decision's state.
func Middleware(deps Deps, requiredRole model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, authenticated := callerIdentity(c, deps.Sessions)

			snap := Snapshot{
				Initializing:  deps.Sessions.Initializing(),
				Authenticated: authenticated,
				RequiredRole:  requiredRole,
				Path:          c.Path(),
			}

			var boundActor actor.Actor
			if authenticated && !snap.Initializing {
				handle := deps.Registry.HandleFor(principal)
				boundActor = handle.Actor()
				snap.HasActor = boundActor != nil
				snap.ActorFetching = handle.IsFetching()
				ctx := c.Request().Context()
				snap.Profile = deps.Resolver.CallerProfile(ctx, boundActor)
				snap.Admin = deps.Resolver.CallerIsAdmin(ctx, boundActor)
			}

			decision := Decide(snap, deps.Routes)

			// Every decision is observed, admitted or not, so a round trip
			// through another state re-arms the redirect. Anonymous callers
			// have no session to debounce against.
			fire := decision.Redirect != ""
			if !principal.IsAnonymous() {
				fire = deps.Navigator.Observe(principal, c.Path(), decision)
			}

			if decision.State == Admitted {
				c.Set(ContextActor, boundActor)
				c.Set(ContextPrincipal, principal)
				return next(c)
			}

			return render(c, deps, decision, fire)
		}
	}
}

// ActorFrom returns the actor the guard admitted the request with.
func ActorFrom(c echo.Context) actor.Actor {
	a, _ := c.Get(ContextActor).(actor.Actor)
	return a
}

// PrincipalFrom returns the principal the guard admitted the request with.
func PrincipalFrom(c echo.Context) auth.Principal {
	p, _ := c.Get(ContextPrincipal).(auth.Principal)
	return p
}

func callerIdentity(c echo.Context, sessions service.SessionService) (auth.Principal, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.AnonymousPrincipal, false
	}
	claims, err := sessions.Validate(c.Request().Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return auth.AnonymousPrincipal, false
	}
	principal := auth.Principal(claims.Principal)
	return principal, !principal.IsAnonymous()
}

func render(c echo.Context, deps Deps, d Decision, fire bool) error {
	payload := StatePayload{
		State:   d.State.String(),
		Message: d.Message,
	}
	if fire {
		payload.Redirect = d.Redirect
	}

	switch d.State {
	case Unauthenticated:
		return c.JSON(http.StatusUnauthorized, payload)
	case ProfileMissing:
		return c.JSON(http.StatusConflict, payload)
	case AuthError:
		payload.Logout = "/api/auth/logout"
		return c.JSON(http.StatusInternalServerError, payload)
	case AccessDenied:
		payload.Dashboard = deps.Routes.UserHome
		payload.Logout = "/api/auth/logout"
		return c.JSON(http.StatusForbidden, payload)
	default:
		// Transient loading states: the client should retry shortly.
		payload.Retry = true
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, payload)
	}
}
