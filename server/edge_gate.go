package server

import (
	"net/http"
	"strings"

	"github.com/genuka/app-shell/session"
	"github.com/rs/zerolog/log"
)

// gateSkipPrefixes lists paths the edge gate never touches: API and
// framework-internal routes, plus anything with a dot (static assets).
var gateSkipPrefixes = []string{"/api", "/trpc", "/_next", "/_vercel"}

func gateSkips(path string) bool {
	for _, prefix := range gateSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return strings.Contains(path, ".")
}

// EdgeGate is the request-level authorization and locale-routing decision
// point, evaluated before any page logic. Branches, in order:
//
//  1. A signed deep-link (company_id, timestamp, hmac query params) is
//     exchanged for a session cookie and the cleaned URL is redirected to.
//  2. A path without a locale prefix is redirected to its localized form.
//  3. Protected paths require a valid session; public paths never do.
//  4. Everything else falls through to the wrapped handler.
//
// Authorization failures always surface as redirects to an unauthorized
// page, never as HTTP error bodies, so browser navigation stays intact.
func (s *Server) EdgeGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gateSkips(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		query := r.URL.Query()
		if query.Has("company_id") && query.Has("timestamp") && query.Has("hmac") {
			s.exchangeSignedLink(w, r)
			return
		}

		locale, ok := s.locales.FromPath(r.URL.Path)
		if !ok {
			target := "/" + s.locales.Negotiate(r) + r.URL.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		_, rest := s.locales.Strip(r.URL.Path)

		if matchesAny(rest, publicRoutes) {
			next.ServeHTTP(w, r)
			return
		}

		if matchesAny(rest, protectedRoutes) {
			if _, ok := s.sessions.FromRequest(r); !ok {
				http.Redirect(w, r, "/"+locale+RouteUnauthorized, http.StatusSeeOther)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// exchangeSignedLink validates an inbound deep-link and, on success, trades
// it for a session cookie and redirects to the URL with the link parameters
// stripped. Any failure redirects to the unauthorized page without a cookie.
func (s *Server) exchangeSignedLink(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	companyID := query.Get("company_id")
	timestamp := query.Get("timestamp")
	digest := query.Get("hmac")

	if err := s.links.Verify(companyID, timestamp, digest); err != nil {
		log.Err(err).Str("company_id", companyID).Msg("Signed link rejected")
		http.Redirect(w, r, RouteUnauthorized, http.StatusSeeOther)
		return
	}

	token, err := s.sessions.Mint(companyID)
	if err != nil {
		log.Err(err).Str("company_id", companyID).Msg("Failed to mint session token")
		http.Redirect(w, r, RouteUnauthorized, http.StatusSeeOther)
		return
	}

	session.SetCookie(w, token, int(s.sessions.TTL().Seconds()), s.isProd())

	clean := *r.URL
	query.Del("company_id")
	query.Del("timestamp")
	query.Del("hmac")
	clean.RawQuery = query.Encode()

	log.Info().Str("company_id", companyID).Msg("Signed link exchanged for session")
	http.Redirect(w, r, clean.String(), http.StatusSeeOther)
}

func matchesAny(path string, routes []string) bool {
	for _, route := range routes {
		if strings.HasPrefix(path, route) {
			return true
		}
	}
	return false
}
