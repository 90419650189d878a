package server

// Route path constants
// Locale-prefixed pages are registered as "/{locale}<route>" patterns.
const (
	RouteUnauthorized = "/unauthorized"
	RouteDashboard    = "/dashboard"
	RouteFeedback     = "/feedback"
	RouteSupport      = "/support"
	RouteSignOut      = "/signout"

	// API Routes (outside the edge gate's matcher)
	RouteCallback = "/api/callback"
)

// protectedRoutes require a valid session; publicRoutes never do. Both are
// matched as prefixes against the locale-stripped path.
var (
	protectedRoutes = []string{RouteDashboard}
	publicRoutes    = []string{RouteFeedback, RouteSupport}
)
