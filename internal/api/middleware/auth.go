package middleware

import (
	"context"
	"net/http"

	"client_portal/internal/common"
	"client_portal/internal/common/security"
	"client_portal/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UserRoleCtxKey contextKey = "userRole"
)

// SessionAuthenticator resolves a verified session id into a live user.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*model.User, *model.Session, error)
}

// Verifier checks the signature on the session cookie and puts its claims
// in the request context. It never rejects by itself; Authenticator does.
func Verifier(next http.Handler) http.Handler {
	return jwtauth.Verify(security.TokenAuth, security.TokenFromSessionCookie)(next)
}

// Authenticator turns verified cookie claims into an identity: it loads
// the session row, slides its expiry, re-issues the cookie, and stores the
// user id and role in the context. Any failure is a terminal 401.
func Authenticator(auth SessionAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			sessionID, err := security.GetSessionIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			user, session, err := auth.Authenticate(r.Context(), sessionID)
			if err != nil {
				http.SetCookie(w, security.ExpiredSessionCookie(requestIsSecure(r)))
				common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			// Rolling session: the cookie is re-signed with the slid expiry.
			if refreshed, err := security.EncodeSessionToken(session.ID, session.ExpiresAt); err == nil {
				http.SetCookie(w, security.SessionCookie(refreshed, session.ExpiresAt, requestIsSecure(r)))
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID)
			ctx = context.WithValue(ctx, UserRoleCtxKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}

func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
