package session

import "net/http"

// CookieName is the name of the cookie carrying the session token.
const CookieName = "session"

// SetCookie attaches a session token to the response. The cookie lifetime
// matches the token lifetime; secure should be true in production.
func SetCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// ClearCookie deletes the session cookie. Clearing an absent cookie is not
// an error, so sign-out is idempotent.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// FromRequest reads the session cookie and returns the company ID it
// proves, or false if the cookie is absent or fails verification.
func (c *Codec) FromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := c.Verify(cookie.Value)
	if claims == nil {
		return "", false
	}
	return claims.CompanyID, true
}
