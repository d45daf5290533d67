// Package nav defines the console's navigable pages and the authorization
// guard evaluated before every navigation.
package nav

import "github.com/me/llmctl/pkg/gateway"

// Route names. Guard redirects target these.
const (
	RouteLogin     = "Login"
	RouteRegister  = "Register"
	RouteDashboard = "Dashboard"
	RouteForbidden = "Forbidden"
	RouteNotFound  = "NotFound"
)

// Route describes a navigable page and its authorization requirements.
type Route struct {
	Name         string
	Path         string
	Title        string
	RequiresAuth bool
	GuestOnly    bool
	Roles        []gateway.Role
}

// anyUser is the role set for regular user pages: everyone who holds an
// account role.
var anyUser = []gateway.Role{gateway.RoleUser, gateway.RoleModelAdmin, gateway.RoleRootAdmin}

// modelAdmins may manage the model catalog and providers.
var modelAdmins = []gateway.Role{gateway.RoleModelAdmin, gateway.RoleRootAdmin}

// rootAdmin only.
var rootAdmin = []gateway.Role{gateway.RoleRootAdmin}

// Routes is the console's route table.
var Routes = []Route{
	{Name: RouteLogin, Path: "/login", Title: "Sign in", GuestOnly: true},
	{Name: RouteRegister, Path: "/register", Title: "Register", GuestOnly: true},
	{Name: RouteDashboard, Path: "/dashboard", Title: "Overview", RequiresAuth: true},
	{Name: "AccessKeys", Path: "/access-keys", Title: "Access Keys", RequiresAuth: true, Roles: anyUser},
	{Name: "Orders", Path: "/orders", Title: "My Orders", RequiresAuth: true, Roles: anyUser},
	{Name: "Models", Path: "/models", Title: "Available Models", RequiresAuth: true, Roles: anyUser},
	{Name: "UsageLogs", Path: "/logs", Title: "Usage Logs", RequiresAuth: true, Roles: anyUser},
	{Name: "Chat", Path: "/chat", Title: "Chat", RequiresAuth: true, Roles: anyUser},
	{Name: "Image", Path: "/image", Title: "Image Generation", RequiresAuth: true, Roles: anyUser},
	{Name: "Conversations", Path: "/conversations", Title: "Conversations", RequiresAuth: true, Roles: anyUser},
	{Name: "AdminModels", Path: "/admin/models", Title: "Model Management", RequiresAuth: true, Roles: modelAdmins},
	{Name: "AdminProviders", Path: "/admin/providers", Title: "Provider Management", RequiresAuth: true, Roles: modelAdmins},
	{Name: "AdminUsers", Path: "/admin/users", Title: "User Management", RequiresAuth: true, Roles: rootAdmin},
	{Name: "AdminOrders", Path: "/admin/orders", Title: "Order Management", RequiresAuth: true, Roles: rootAdmin},
	{Name: RouteForbidden, Path: "/403", Title: "Forbidden"},
	{Name: RouteNotFound, Path: "/404", Title: "Not Found"},
}

// Lookup returns the route with the given name, or the NotFound route.
func Lookup(name string) Route {
	for _, r := range Routes {
		if r.Name == name {
			return r
		}
	}
	return Lookup(RouteNotFound)
}

// PageTitle renders a route's display title, suffixed with the application
// title when one is configured.
func PageTitle(r Route, appTitle string) string {
	if r.Title == "" {
		return appTitle
	}
	if appTitle == "" {
		return r.Title
	}
	return r.Title + " - " + appTitle
}
