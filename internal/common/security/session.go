package security

import (
	"errors"
	"net/http"
	"time"

	"client_portal/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName carries the signed session token. The cookie value is
// an HS256 JWT holding only the session id and expiry; the session state
// itself lives in the sessions table.
const SessionCookieName = "portal_session"

var TokenAuth *jwtauth.JWTAuth

func InitSessionAuth() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.SessionSecret, nil)
}

// EncodeSessionToken signs a cookie token for the given session id.
func EncodeSessionToken(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// TokenFromSessionCookie is the jwtauth token finder for the session cookie.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetSessionIDFromClaims extracts the session id from verified claims.
func GetSessionIDFromClaims(claims map[string]interface{}) (string, error) {
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("sid claim is missing or not a string")
	}
	return sid, nil
}

// SessionCookie builds the Set-Cookie header value for a signed token.
func SessionCookie(token string, expiresAt time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the session cookie on logout.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
