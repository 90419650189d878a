// Package session mints and verifies the signed tokens that prove a prior
// successful authentication. Tokens live client-side in the "session" cookie
// and are checked on every protected request.
package session

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// DefaultTTL is the session token lifetime.
const DefaultTTL = 7 * time.Hour

// Claims carries the verified contents of a session token.
type Claims struct {
	CompanyID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec mints and verifies session tokens with a shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec keyed with the given secret. A non-positive ttl
// falls back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(strings.TrimSpace(secret)),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Mint creates a signed HS256 token for the given company.
func (c *Codec) Mint(companyID string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"companyId": companyID,
		"iat":       now.Unix(),
		"exp":       now.Add(c.ttl).Unix(),
		"jti":       uuid.New().String(), // Unique token ID
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signedToken, nil
}

// Verify parses and validates a session token. It fails closed: any
// structural, signature, or expiry failure yields nil so callers can treat
// the result as a boolean gate. The failure reason is logged, never
// returned.
func (c *Codec) Verify(rawToken string) *Claims {
	token, err := jwtlib.Parse(rawToken,
		func(token *jwtlib.Token) (any, error) {
			if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.secret, nil
		},
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		log.Err(err).Msg("Session token verification failed")
		return nil
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		log.Error().Msg("Session token has unexpected claims type")
		return nil
	}

	companyID, _ := claims["companyId"].(string)
	if companyID == "" {
		log.Error().Msg("Session token missing companyId claim")
		return nil
	}

	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	return &Claims{
		CompanyID: companyID,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}
}
