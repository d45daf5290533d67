package nav

import "github.com/me/llmctl/pkg/gateway"

// Session is the snapshot of authentication state the guard decides over.
type Session interface {
	IsAuthenticated() bool
	HasRole(roles []gateway.Role) bool
}

// Decision is the outcome of evaluating one navigation intent. When the
// navigation is not allowed, Target names the route to redirect to and
// Query carries any values for the redirect (the intended path on a
// login redirect).
type Decision struct {
	Allowed bool
	Target  string
	Query   map[string]string
}

// Evaluate decides whether a navigation to route may proceed. It is a pure,
// synchronous function over the route descriptor and the session snapshot;
// rules apply in fixed priority order and the first match wins:
//
//  1. auth-required route, unauthenticated session: redirect to Login,
//     carrying the intended path;
//  2. guest-only route, authenticated session: redirect to Dashboard;
//  3. role-restricted route, role not held: redirect to Forbidden;
//  4. otherwise allow.
func Evaluate(route Route, sess Session) Decision {
	if route.RequiresAuth && !sess.IsAuthenticated() {
		return Decision{
			Target: RouteLogin,
			Query:  map[string]string{"redirect": route.Path},
		}
	}

	if route.GuestOnly && sess.IsAuthenticated() {
		return Decision{Target: RouteDashboard}
	}

	if len(route.Roles) > 0 && !sess.HasRole(route.Roles) {
		return Decision{Target: RouteForbidden}
	}

	return Decision{Allowed: true}
}
