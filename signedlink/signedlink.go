// Package signedlink verifies the HMAC-signed deep-links that the Genuka
// platform attaches to requests entering the application. A link carries the
// company ID, a unix timestamp, and a hex digest over both; possession of a
// fresh, correctly signed link proves the request originated from the
// platform.
package signedlink

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/genuka/app-shell/internal/errors"
)

// DefaultMaxAge is the default maximum age for signed links (5 minutes).
const DefaultMaxAge = 5 * time.Minute

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Signer computes and verifies link digests with a shared secret.
type Signer struct {
	secret []byte
	maxAge time.Duration
}

// NewSigner creates a signer keyed with the given secret. Surrounding
// whitespace is trimmed so the key matches what the platform signs with.
func NewSigner(secret string) *Signer {
	return &Signer{
		secret: []byte(strings.TrimSpace(secret)),
		maxAge: DefaultMaxAge,
	}
}

// WithMaxAge sets the maximum accepted link age.
func (s *Signer) WithMaxAge(maxAge time.Duration) *Signer {
	if maxAge > 0 {
		s.maxAge = maxAge
	}
	return s
}

// ComputeDigest returns the lowercase hex HMAC-SHA256 digest over the
// canonical "company_id=<id>&timestamp=<ts>" string.
func (s *Signer) ComputeDigest(companyID, timestamp string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte("company_id=" + companyID + "&timestamp=" + timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signed link: the timestamp must parse, must not be older
// than the configured maximum age, and the supplied digest must match the
// computed one. Only an upper bound on age is enforced; a timestamp ahead
// of the verifier's clock is accepted.
func (s *Signer) Verify(companyID, timestamp, digest string) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidTimestamp, timestamp)
	}

	age := NowTimeFunc().Sub(time.Unix(ts, 0))
	if age > s.maxAge {
		return apperrors.ErrExpiredLink
	}

	expected := s.ComputeDigest(companyID, timestamp)
	if !hmac.Equal([]byte(expected), []byte(digest)) {
		return apperrors.ErrInvalidSignature
	}

	return nil
}
