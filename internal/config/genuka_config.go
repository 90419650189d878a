package config

import "strings"

// GenukaConfig exposes the credentials and endpoints for the Genuka
// platform. The client secret does double duty: it is the OAuth client
// secret for the token exchange and the key for signed-link and session
// token verification.
type GenukaConfig interface {
	GetAPIURL() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
}

type Genuka struct{}

var _ GenukaConfig = Genuka{}

func (Genuka) GetAPIURL() string {
	return strings.TrimRight(GetEnv("GENUKA_API_URL", "https://api.genuka.com"), "/")
}

func (Genuka) GetClientID() string {
	return GetEnv("GENUKA_CLIENT_ID", "")
}

// GetClientSecret returns the shared secret trimmed of surrounding
// whitespace. Dashboard copy/paste tends to pick up a trailing newline,
// and a key with stray whitespace signs differently than the platform.
func (Genuka) GetClientSecret() string {
	return strings.TrimSpace(GetEnv("GENUKA_CLIENT_SECRET", ""))
}

func (Genuka) GetRedirectURI() string {
	return GetEnv("GENUKA_REDIRECT_URI", "")
}
