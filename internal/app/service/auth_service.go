package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"client_portal/internal/common"
	"client_portal/internal/domain/model"
	"client_portal/internal/domain/repository"
	"client_portal/internal/platform/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// AuthService delegates authentication to the external OIDC provider and
// owns the database-resident session lifecycle. Protocol internals stay
// inside go-oidc/oauth2; this service only maps verified claims onto the
// users table and hands out session rows.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	oauth       *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	endSession  string
	clientID    string
	sessionTTL  time.Duration
}

func NewAuthService(ctx context.Context, cfg *config.Config, userRepo repository.UserRepository, sessionRepo repository.SessionRepository) (*AuthService, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("auth service: discover issuer %s: %w", cfg.OIDCIssuerURL, err)
	}

	var providerClaims struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	// Not every provider advertises RP-initiated logout; absence is fine.
	_ = provider.Claims(&providerClaims)

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  cfg.OIDCRedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "offline_access"},
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		oauth:       oauthCfg,
		verifier:    provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID}),
		endSession:  providerClaims.EndSessionEndpoint,
		clientID:    cfg.OIDCClientID,
		sessionTTL:  cfg.SessionTTL,
	}, nil
}

// AuthCodeURL builds the provider redirect for the login leg.
func (s *AuthService) AuthCodeURL(state, nonce string) string {
	return s.oauth.AuthCodeURL(state, oidc.Nonce(nonce))
}

// LogoutURL builds the provider's RP-initiated logout redirect, or returns
// redirectURI unchanged when the provider has no end-session endpoint.
func (s *AuthService) LogoutURL(redirectURI string) string {
	if s.endSession == "" {
		return redirectURI
	}
	return s.endSession + "?client_id=" + s.clientID + "&post_logout_redirect_uri=" + redirectURI
}

type identityClaims struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// HandleCallback finishes the code flow: exchanges the code, verifies the
// ID token and nonce, upserts the user profile, and opens a session row.
func (s *AuthService) HandleCallback(ctx context.Context, code, nonce string) (*model.User, *model.Session, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("code exchange failed: %w", common.ErrUnauthorized)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, nil, fmt.Errorf("token response missing id_token: %w", common.ErrUnauthorized)
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, nil, fmt.Errorf("id token verification failed: %w", common.ErrUnauthorized)
	}
	if idToken.Nonce != nonce {
		return nil, nil, fmt.Errorf("nonce mismatch: %w", common.ErrUnauthorized)
	}

	var claims identityClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, nil, fmt.Errorf("auth service: decode claims: %w", err)
	}

	user, err := s.userRepo.Upsert(ctx, &model.User{
		ID:              idToken.Subject,
		Email:           claims.Email,
		FirstName:       claims.FirstName,
		LastName:        claims.LastName,
		ProfileImageURL: claims.ProfileImageURL,
		Role:            model.RoleClient,
		Active:          true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("auth service: sync profile: %w", err)
	}
	if !user.Active {
		return nil, nil, common.ErrUnauthorized
	}

	session, err := s.createSession(ctx, user.ID, token)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *AuthService) createSession(ctx context.Context, userID string, token *oauth2.Token) (*model.Session, error) {
	payload, err := json.Marshal(model.SessionPayload{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: marshal session payload: %w", err)
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		Payload:   payload,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth service: create session: %w", err)
	}
	return session, nil
}

// Authenticate resolves a session id from a verified cookie into a live
// user, refreshing the provider tokens when the access token has expired
// and sliding the session expiry forward.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*model.User, *model.Session, error) {
	session, err := s.sessionRepo.Find(ctx, sessionID)
	if err != nil {
		return nil, nil, common.ErrUnauthorized
	}

	var payload model.SessionPayload
	if err := json.Unmarshal(session.Payload, &payload); err != nil {
		return nil, nil, common.ErrUnauthorized
	}

	if s.tokenExpired(payload) {
		payload, err = s.refreshTokens(ctx, session, payload)
		if err != nil {
			// Refresh failure means the provider no longer vouches for
			// this identity; tear the session down instead of serving
			// a stale one.
			_ = s.sessionRepo.Delete(ctx, session.ID)
			return nil, nil, common.ErrUnauthorized
		}
	}

	user, err := s.userRepo.FindByID(ctx, payload.UserID)
	if err != nil || !user.Active {
		return nil, nil, common.ErrUnauthorized
	}

	session.ExpiresAt = time.Now().UTC().Add(s.sessionTTL)
	if err := s.sessionRepo.Extend(ctx, session.ID, session.ExpiresAt); err != nil {
		return nil, nil, fmt.Errorf("auth service: extend session: %w", err)
	}
	return user, session, nil
}

func (s *AuthService) tokenExpired(payload model.SessionPayload) bool {
	if payload.TokenExpiry.IsZero() {
		return false
	}
	return time.Now().After(payload.TokenExpiry)
}

func (s *AuthService) refreshTokens(ctx context.Context, session *model.Session, payload model.SessionPayload) (model.SessionPayload, error) {
	if payload.RefreshToken == "" {
		return payload, common.ErrUnauthorized
	}

	token, err := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: payload.RefreshToken}).Token()
	if err != nil {
		return payload, common.ErrUnauthorized
	}

	payload.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		payload.RefreshToken = token.RefreshToken
	}
	payload.TokenExpiry = token.Expiry

	raw, err := json.Marshal(payload)
	if err != nil {
		return payload, fmt.Errorf("auth service: marshal refreshed payload: %w", err)
	}
	session.Payload = raw
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return payload, err
	}
	return payload, nil
}

// GetUser returns the stored profile for an authenticated user id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Logout drops the session row. A missing row is not an error: logging out
// twice is fine.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("auth service: logout: %w", err)
	}
	return nil
}
