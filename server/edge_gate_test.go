package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/genuka/app-shell/session"
	"github.com/genuka/app-shell/signedlink"
)

// signedLinkURL builds a deep-link URL carrying a valid signature for
// testCompanyID at the given timestamp, plus any extra query params.
func signedLinkURL(path, timestamp string, extra url.Values) string {
	query := url.Values{}
	for key, values := range extra {
		query[key] = values
	}
	query.Set("company_id", testCompanyID)
	query.Set("timestamp", timestamp)
	query.Set("hmac", signedlink.NewSigner(testSecret).ComputeDigest(testCompanyID, timestamp))
	return path + "?" + query.Encode()
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	return nil
}

func TestEdgeGateSignedLinkExchange(t *testing.T) {
	srv, _, _ := newTestServer()

	t.Run("valid link sets session cookie and strips link params", func(t *testing.T) {
		rec := httptest.NewRecorder()
		target := signedLinkURL("/en/dashboard", freshTimestamp(), url.Values{"utm_source": {"email"}})
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/en/dashboard?utm_source=email", rec.Header().Get("Location"))

		cookie := sessionCookie(t, rec)
		require.NotNil(t, cookie)
		require.True(t, cookie.HttpOnly)
		require.False(t, cookie.Secure, "cookie must not be Secure outside PROD")

		claims := session.NewCodec(testSecret, 0).Verify(cookie.Value)
		require.NotNil(t, claims)
		require.Equal(t, testCompanyID, claims.CompanyID)
	})

	t.Run("valid link at bare root redirects to root", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, signedLinkURL("/", freshTimestamp(), nil), nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
		require.NotNil(t, sessionCookie(t, rec))
	})

	t.Run("tampered signature redirects to unauthorized without a cookie", func(t *testing.T) {
		timestamp := freshTimestamp()
		query := url.Values{}
		query.Set("company_id", testCompanyID)
		query.Set("timestamp", timestamp)
		query.Set("hmac", signedlink.NewSigner("wrong-secret").ComputeDigest(testCompanyID, timestamp))

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en/dashboard?"+query.Encode(), nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/unauthorized", rec.Header().Get("Location"))
		require.Nil(t, sessionCookie(t, rec))
	})

	t.Run("expired link redirects to unauthorized", func(t *testing.T) {
		stale := strconv.FormatInt(time.Now().Add(-6*time.Minute).Unix(), 10)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, signedLinkURL("/en/dashboard", stale, nil), nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/unauthorized", rec.Header().Get("Location"))
		require.Nil(t, sessionCookie(t, rec))
	})
}

func TestEdgeGateLocaleRedirect(t *testing.T) {
	srv, _, _ := newTestServer()

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		wantLocation   string
	}{
		{
			name:         "bare path gets the default locale",
			target:       "/dashboard",
			wantLocation: "/en/dashboard",
		},
		{
			name:           "accept-language picks a supported locale",
			target:         "/dashboard",
			acceptLanguage: "fr-FR,fr;q=0.9",
			wantLocation:   "/fr/dashboard",
		},
		{
			name:           "unsupported accept-language falls back to the default",
			target:         "/dashboard",
			acceptLanguage: "de-DE",
			wantLocation:   "/en/dashboard",
		},
		{
			name:         "query string survives the redirect",
			target:       "/feedback?topic=billing",
			wantLocation: "/en/feedback?topic=billing",
		},
		{
			name:         "unknown prefix is treated as a bare path",
			target:       "/enx/dashboard",
			wantLocation: "/en/enx/dashboard",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, test.target, nil)
			if test.acceptLanguage != "" {
				req.Header.Set("Accept-Language", test.acceptLanguage)
			}

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			require.Equal(t, http.StatusSeeOther, rec.Code)
			require.Equal(t, test.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestEdgeGateSessionChecks(t *testing.T) {
	srv, repo, _ := newTestServer()

	mint := func(t *testing.T, companyID string) *http.Cookie {
		t.Helper()
		token, err := session.NewCodec(testSecret, 0).Mint(companyID)
		require.NoError(t, err)
		return &http.Cookie{Name: session.CookieName, Value: token}
	}

	t.Run("protected page without a session redirects to localized unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fr/dashboard", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/fr/unauthorized", rec.Header().Get("Location"))
	})

	t.Run("protected page with a garbage cookie redirects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/en/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-token"})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/en/unauthorized", rec.Header().Get("Location"))
	})

	t.Run("protected page with a valid session is served", func(t *testing.T) {
		seedCompany(t, repo)

		req := httptest.NewRequest(http.MethodGet, "/en/dashboard", nil)
		req.AddCookie(mint(t, testCompanyID))

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Acme Stores")
	})

	t.Run("public pages never require a session", func(t *testing.T) {
		for _, target := range []string{"/en/feedback", "/en/support"} {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			require.Equal(t, http.StatusOK, rec.Code, target)
		}
	})
}

func TestEdgeGateSkipsFrameworkPaths(t *testing.T) {
	srv, _, _ := newTestServer()

	// None of these may be locale-redirected; the mux answers them directly.
	tests := []struct {
		target   string
		wantCode int
	}{
		{"/api/callback", http.StatusBadRequest},
		{"/trpc/whatever", http.StatusNotFound},
		{"/_next/static/chunk.js", http.StatusNotFound},
		{"/_vercel/insights", http.StatusNotFound},
		{"/favicon.ico", http.StatusNotFound},
	}

	for _, test := range tests {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, test.target, nil))
		require.Equal(t, test.wantCode, rec.Code, test.target)
	}
}

func TestEdgeGateSignOutFlow(t *testing.T) {
	srv, repo, _ := newTestServer()
	seedCompany(t, repo)

	token, err := session.NewCodec(testSecret, 0).Mint(testCompanyID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/en/signout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/en/unauthorized", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
