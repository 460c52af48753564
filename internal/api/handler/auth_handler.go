package handler

import (
	"context"
	"net/http"
	"time"

	"client_portal/internal/common"
	"client_portal/internal/common/security"
	"client_portal/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

const (
	stateCookieName = "oidc_state"
	nonceCookieName = "oidc_nonce"
	loginFlowTTL    = 10 * time.Minute
)

// AuthProvider is the slice of the auth service the handler needs.
type AuthProvider interface {
	AuthCodeURL(state, nonce string) string
	HandleCallback(ctx context.Context, code, nonce string) (*model.User, *model.Session, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutURL(redirectURI string) string
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type AuthHandler struct {
	auth           AuthProvider
	allowedDomains []string
}

func NewAuthHandler(auth AuthProvider, allowedDomains []string) *AuthHandler {
	return &AuthHandler{auth: auth, allowedDomains: allowedDomains}
}

// Login starts the OIDC code flow: state and nonce go into short-lived
// cookies, the browser goes to the provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.domainAllowed(r.Host) {
		common.RespondWithError(w, http.StatusForbidden, "login not permitted from this domain")
		return
	}

	state := uuid.NewString()
	nonce := uuid.NewString()
	secure := requestIsSecure(r)
	http.SetCookie(w, flowCookie(stateCookieName, state, secure))
	http.SetCookie(w, flowCookie(nonceCookieName, nonce, secure))

	http.Redirect(w, r, h.auth.AuthCodeURL(state, nonce), http.StatusFound)
}

// Callback finishes the code flow and issues the signed session cookie.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		common.RespondWithError(w, http.StatusUnauthorized, "login rejected by identity provider")
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		common.RespondWithError(w, http.StatusUnauthorized, "login state mismatch")
		return
	}
	nonceCookie, err := r.Cookie(nonceCookieName)
	if err != nil || nonceCookie.Value == "" {
		common.RespondWithError(w, http.StatusUnauthorized, "login state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		common.RespondWithError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	secure := requestIsSecure(r)
	http.SetCookie(w, expireFlowCookie(stateCookieName, secure))
	http.SetCookie(w, expireFlowCookie(nonceCookieName, secure))

	_, session, err := h.auth.HandleCallback(r.Context(), code, nonceCookie.Value)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}

	token, err := security.EncodeSessionToken(session.ID, session.ExpiresAt)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	http.SetCookie(w, security.SessionCookie(token, session.ExpiresAt, secure))

	http.Redirect(w, r, "/", http.StatusFound)
}

// CurrentUser returns the profile for the authenticated session.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

// Logout drops the session row, clears the cookie, and sends the browser
// through the provider's end-session endpoint.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	secure := requestIsSecure(r)
	if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
		if sessionID, err := security.GetSessionIDFromClaims(claims); err == nil {
			if err := h.auth.Logout(r.Context(), sessionID); err != nil {
				common.RespondWithDomainError(w, r, err)
				return
			}
		}
	}
	http.SetCookie(w, security.ExpiredSessionCookie(secure))

	scheme := "http"
	if secure {
		scheme = "https"
	}
	http.Redirect(w, r, h.auth.LogoutURL(scheme+"://"+r.Host), http.StatusFound)
}

func (h *AuthHandler) domainAllowed(host string) bool {
	if len(h.allowedDomains) == 0 {
		return true
	}
	for _, domain := range h.allowedDomains {
		if host == domain {
			return true
		}
	}
	return false
}

func flowCookie(name, value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(loginFlowTTL),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func expireFlowCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
