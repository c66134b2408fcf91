package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

const CookieName = "eventpilot.sid"

func signSID(secret []byte, sid string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sid))
	return sid + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// unsignSID returns the session id when the cookie signature is genuine.
func unsignSID(secret []byte, value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return "", false
	}
	sid := value[:i]
	if !hmac.Equal([]byte(signSID(secret, sid)), []byte(value)) {
		return "", false
	}
	return sid, true
}

// SessionCookie carries the signed session id for browser clients.
func (a *Authenticator) SessionCookie(s Session) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    signSID(a.cookieSecret, s.Identity.SessionID),
		Path:     "/",
		Expires:  s.Identity.ExpiresAt,
		MaxAge:   int(s.Identity.ExpiresAt.Sub(a.now()).Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie in the browser.
func (a *Authenticator) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
