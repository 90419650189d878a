package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteCallback, s.CallbackHandler())

	// Pages without a locale prefix. The edge gate localizes everything
	// else, but /unauthorized is also a direct redirect target.
	s.RegisterRouteFunc("GET "+RouteUnauthorized, s.UnauthorizedHandler())

	// Locale-prefixed pages
	s.RegisterRouteFunc("GET /{locale}", s.HomeHandler())
	s.RegisterRouteFunc("GET /{locale}"+RouteDashboard, s.DashboardHandler())
	s.RegisterRouteFunc("GET /{locale}"+RouteUnauthorized, s.UnauthorizedHandler())
	s.RegisterRouteFunc("GET /{locale}"+RouteFeedback, s.FeedbackHandler())
	s.RegisterRouteFunc("GET /{locale}"+RouteSupport, s.SupportHandler())
	s.RegisterRouteFunc("GET /{locale}"+RouteSignOut, s.SignOutHandler())
}
