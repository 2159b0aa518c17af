package auth

import "net/http"

// SessionCookie names the cookie carrying the admin session token.
const SessionCookie = "admin_token"

// TokenVerifier validates a presented session token.
type TokenVerifier interface {
	Verify(token string) bool
}

// Guard decides per request whether the caller may perform moderation
// operations. The cookie is the entire session state; the check runs on
// every privileged call.
type Guard struct {
	Tokens TokenVerifier
}

// Authorize extracts the session cookie and verifies it. An absent cookie
// is indistinguishable from an invalid one.
func (g Guard) Authorize(r *http.Request) bool {
	if g.Tokens == nil || r == nil {
		return false
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return false
	}

	return g.Tokens.Verify(cookie.Value)
}
