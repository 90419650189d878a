package config

import "time"

type SecurityConfig interface {
	GetSessionTTL() time.Duration
	GetLinkMaxAge() time.Duration
	GetUpstreamTimeout() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionTTL() time.Duration {
	return 7 * time.Hour // Session tokens expire 7 hours after issuance
}

func (Security) GetLinkMaxAge() time.Duration {
	return 5 * time.Minute // Signed deep-links older than this are rejected
}

func (Security) GetUpstreamTimeout() time.Duration {
	return 10 * time.Second // Round-trip budget for Genuka API calls
}
