package server_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/genuka/app-shell/companies"
	"github.com/genuka/app-shell/companies/repofakes"
	"github.com/genuka/app-shell/genuka"
	"github.com/genuka/app-shell/internal/config"
	"github.com/genuka/app-shell/server"
)

const (
	testSecret    = "test-secret"
	testCompanyID = "cmp_123"
)

// testConfig satisfies config.Config without touching the environment.
type testConfig struct {
	config.EnvVars
	config.Security
}

func (testConfig) GetEnv() string          { return "TEST" }
func (testConfig) GetAPIURL() string       { return "https://api.genuka.test" }
func (testConfig) GetClientID() string     { return "client-id" }
func (testConfig) GetClientSecret() string { return testSecret }
func (testConfig) GetRedirectURI() string  { return "https://app.example.test/api/callback" }

// fakePlatform implements server.PlatformClient with injectable behavior.
type fakePlatform struct {
	exchangeErr error
	retrieveErr error
	accessToken string
	company     *genuka.Company
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		accessToken: "access-token-1",
		company: &genuka.Company{
			ID:          testCompanyID,
			Handle:      "acme",
			Name:        "Acme Stores",
			Description: "General goods",
			LogoURL:     "https://cdn.genuka.test/acme.png",
		},
	}
}

func (p *fakePlatform) ExchangeCode(_ context.Context, code string) (string, error) {
	if p.exchangeErr != nil {
		return "", p.exchangeErr
	}
	return p.accessToken, nil
}

func (p *fakePlatform) RetrieveCompany(_ context.Context, companyID, accessToken string) (*genuka.Company, error) {
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	return p.company, nil
}

func newTestServer() (*server.Server, *repofakes.FakeCompanyRepo, *fakePlatform) {
	repo := repofakes.NewFakeCompanyRepo()
	platform := newFakePlatform()
	return server.New(testConfig{}, repo, platform), repo, platform
}

// seedCompany stores the installed company record the fake platform
// describes, as the callback handler would have.
func seedCompany(t *testing.T, repo *repofakes.FakeCompanyRepo) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repo.Upsert(context.Background(), &companies.Company{
		ID:        testCompanyID,
		Handle:    "acme",
		Name:      "Acme Stores",
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

// freshTimestamp returns the current unix time as the string the platform
// would embed in a signed link.
func freshTimestamp() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}
