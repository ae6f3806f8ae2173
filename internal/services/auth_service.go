package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storeadmin/internal/gateway"
	"storeadmin/internal/models"
	"storeadmin/internal/notify"
	"storeadmin/internal/session"
)

type AuthService interface {
	// Login exchanges credentials with the backend, activates a console
	// session, and returns the identity plus the console token.
	Login(ctx context.Context, emailOrPhone, password string) (*models.LoginResult, error)
	Logout(ctx context.Context) error
}

type authService struct {
	gw       *gateway.Gateway
	sessions session.Store
	notifier notify.Notifier
}

func NewAuthService(gw *gateway.Gateway, sessions session.Store, notifier notify.Notifier) AuthService {
	return &authService{gw: gw, sessions: sessions, notifier: notifier}
}

func (s *authService) Login(ctx context.Context, emailOrPhone, password string) (*models.LoginResult, error) {
	payload := map[string]string{
		"email_or_phone_number": emailOrPhone,
		"password":              password,
	}

	raw, err := s.gw.Do(ctx, http.MethodPost, "/auth/login", payload, nil)
	if err != nil {
		s.notifier.Error(gateway.ErrorMessage(err, "Failed to login"))
		return nil, err
	}

	var upstream models.LoginUpstream
	if err := json.Unmarshal(gateway.UnwrapData(raw), &upstream); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	token, err := s.sessions.Login(ctx, upstream.User, upstream.Token, upstream.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &models.LoginResult{
		User:      upstream.User,
		Token:     token,
		ExpiresAt: upstream.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}
