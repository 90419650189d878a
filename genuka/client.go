// Package genuka is a minimal client for the two Genuka platform calls the
// shell needs: exchanging an installation authorization code for an access
// token, and retrieving the company profile.
package genuka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/genuka/app-shell/internal/config"
	apperrors "github.com/genuka/app-shell/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Company is the company profile as returned by the platform.
type Company struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Metadata    struct {
		Contact string `json:"contact"`
	} `json:"metadata"`
}

// Client talks to the Genuka API.
type Client struct {
	baseURL    string
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewClient creates a client from the Genuka configuration. All calls share
// a single HTTP client with the configured round-trip timeout.
func NewClient(cfg config.Config) *Client {
	baseURL := strings.TrimRight(cfg.GetAPIURL(), "/")
	return &Client{
		baseURL: baseURL,
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURI(),
			Endpoint: oauth2.Endpoint{
				TokenURL:  baseURL + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: cfg.GetUpstreamTimeout()},
	}
}

// ExchangeCode trades an installation authorization code for an access
// token. Transport failures are retried once; a rejection from the token
// endpoint is not.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	var token *oauth2.Token
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		token, err = c.oauth.Exchange(ctx, code)
		if err == nil {
			break
		}

		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// The endpoint answered and said no; retrying won't help.
			break
		}
		log.Err(err).Int("attempt", attempt+1).Msg("Token exchange transport failure")
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstreamExchange, err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", apperrors.ErrUpstreamExchange)
	}
	return token.AccessToken, nil
}

// RetrieveCompany fetches the company profile using the access token
// obtained from the exchange.
func (c *Client) RetrieveCompany(ctx context.Context, companyID, accessToken string) (*Company, error) {
	endpoint := c.baseURL + "/api/v1/companies/" + url.PathEscape(companyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building company request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Company", companyID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieving company %s: %w", companyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("company retrieve returned status %d", resp.StatusCode)
	}

	var company Company
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, fmt.Errorf("decoding company response: %w", err)
	}
	if company.ID == "" {
		return nil, fmt.Errorf("company response missing id")
	}
	return &company, nil
}
