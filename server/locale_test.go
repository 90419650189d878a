package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genuka/app-shell/server"
)

func TestLocalesFromPath(t *testing.T) {
	locales := server.NewLocales()

	tests := []struct {
		path       string
		wantLocale string
		wantOK     bool
	}{
		{"/en", "en", true},
		{"/en/dashboard", "en", true},
		{"/fr/feedback", "fr", true},
		{"/", "", false},
		{"/dashboard", "", false},
		{"/enx/dashboard", "", false},
		{"/EN/dashboard", "", false},
	}

	for _, test := range tests {
		locale, ok := locales.FromPath(test.path)
		require.Equal(t, test.wantOK, ok, test.path)
		require.Equal(t, test.wantLocale, locale, test.path)
	}
}

func TestLocalesStrip(t *testing.T) {
	locales := server.NewLocales()

	tests := []struct {
		path       string
		wantLocale string
		wantRest   string
	}{
		{"/en", "en", "/"},
		{"/en/dashboard", "en", "/dashboard"},
		{"/fr/support/faq", "fr", "/support/faq"},
		{"/dashboard", "", "/dashboard"},
	}

	for _, test := range tests {
		locale, rest := locales.Strip(test.path)
		require.Equal(t, test.wantLocale, locale, test.path)
		require.Equal(t, test.wantRest, rest, test.path)
	}
}

func TestLocalesNegotiate(t *testing.T) {
	locales := server.NewLocales()

	tests := []struct {
		name           string
		acceptLanguage string
		want           string
	}{
		{"no header", "", "en"},
		{"exact match", "fr", "fr"},
		{"regional variant", "fr-CA", "fr"},
		{"quality ordering", "de;q=0.9,fr;q=0.8", "fr"},
		{"unsupported language", "ja-JP", "en"},
		{"garbage header", ";;;", "en"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if test.acceptLanguage != "" {
				req.Header.Set("Accept-Language", test.acceptLanguage)
			}
			require.Equal(t, test.want, locales.Negotiate(req))
		})
	}
}
