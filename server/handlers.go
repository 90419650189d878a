package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/genuka/app-shell/companies"
	"github.com/genuka/app-shell/session"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"
const contentTypeJSON = "application/json; charset=utf-8"

// HomeHandler renders the locale index page.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		writePage(w, s.config.GetAppName(),
			fmt.Sprintf("<h1>%s</h1><p>Open this app from your Genuka dashboard.</p>",
				html.EscapeString(s.config.GetAppName())))
	}
}

// DashboardHandler renders the company dashboard. The edge gate has already
// required a session; the handler re-reads it to know which company to show.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := r.PathValue("locale")

		companyID, ok := s.sessions.FromRequest(r)
		if !ok {
			http.Redirect(w, r, "/"+locale+RouteUnauthorized, http.StatusSeeOther)
			return
		}

		title := companyID
		company, err := s.companies.Get(r.Context(), companyID)
		switch {
		case err == nil:
			title = company.Name
		case !errors.Is(err, companies.ErrNotFound):
			log.Err(err).Str("company_id", companyID).Msg("Failed to load company record")
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		writePage(w, "Dashboard",
			fmt.Sprintf("<h1>Dashboard</h1><p>Signed in as %s.</p><p><a href=\"/%s%s\">Sign out</a></p>",
				html.EscapeString(title), locale, RouteSignOut))
	}
}

// UnauthorizedHandler renders the page every failed authorization redirects
// to.
func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		writePage(w, "Unauthorized",
			"<h1>Unauthorized</h1><p>Open this app from your Genuka dashboard to sign in.</p>")
	}
}

// FeedbackHandler and SupportHandler serve the public pages reachable
// without a session.
func (s *Server) FeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		writePage(w, "Feedback", "<h1>Feedback</h1><p>Tell us what to improve.</p>")
	}
}

func (s *Server) SupportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		writePage(w, "Support", "<h1>Support</h1><p>We usually answer within a day.</p>")
	}
}

// SignOutHandler deletes the session cookie and sends the visitor to the
// unauthorized page. Signing out without a session is fine.
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := r.PathValue("locale")
		session.ClearCookie(w)
		http.Redirect(w, r, "/"+locale+RouteUnauthorized, http.StatusSeeOther)
	}
}

func writePage(w http.ResponseWriter, title, body string) {
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body>%s</body></html>",
		html.EscapeString(title), body)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
