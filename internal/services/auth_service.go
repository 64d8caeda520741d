package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"agency-console/internal/gate"
	"agency-console/internal/logger"
	"agency-console/internal/models"
	"agency-console/internal/repositories"
	"agency-console/internal/session"
)

// ErrResetFlowMissing means a later password-reset step was reached without
// the earlier one; the console sends the operator back to the first step.
var ErrResetFlowMissing = errors.New("password reset not started")

// ResetFlow carries the forgot-password state between steps.
type ResetFlow struct {
	Email string
	Role  models.Role
	OTP   string
}

type AuthService struct {
	Repo    *repositories.AuthRepository
	Session *session.Store

	mu    sync.Mutex
	reset *ResetFlow
	log   zerolog.Logger
}

func NewAuthService(repo *repositories.AuthRepository, store *session.Store) *AuthService {
	return &AuthService{
		Repo:    repo,
		Session: store,
		log:     logger.WithComponent("auth"),
	}
}

// Login signs in against the role's endpoint and stores the session. Signing
// in over an existing session is refused.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (models.AuthUser, error) {
	if err := validateRequest(req); err != nil {
		return models.AuthUser{}, err
	}

	current := gate.Unauthenticated
	if u, ok := s.Session.Current(); ok {
		current = gate.StateFor(u.Role)
	}
	if _, err := gate.Next(current, gate.Login(req.Role)); err != nil {
		return models.AuthUser{}, err
	}

	token, user, err := s.Repo.Login(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).Str("email", req.Email).Str("role", string(req.Role)).Msg("Login failed")
		return models.AuthUser{}, err
	}
	if err := s.Session.Login(ctx, token, user); err != nil {
		return models.AuthUser{}, fmt.Errorf("store session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Str("token", logger.TokenPrefix(token)).Msg("Signed in")
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	user, _ := s.Session.Current()
	if err := s.Session.Logout(ctx); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Msg("Signed out")
	return nil
}

// ForgotPassword asks the API to send an OTP and remembers {email, role}.
func (s *AuthService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.ForgotPassword(ctx, req); err != nil {
		return err
	}
	s.mu.Lock()
	s.reset = &ResetFlow{Email: req.Email, Role: req.Role}
	s.mu.Unlock()
	return nil
}

// VerifyOTP checks the OTP for the remembered email and role.
func (s *AuthService) VerifyOTP(ctx context.Context, otp string) error {
	flow, ok := s.PendingReset()
	if !ok {
		return ErrResetFlowMissing
	}
	req := &models.VerifyOTPRequest{Email: flow.Email, OTP: otp, Role: flow.Role}
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.VerifyOTP(ctx, req); err != nil {
		return err
	}
	s.mu.Lock()
	if s.reset != nil {
		s.reset.OTP = otp
	}
	s.mu.Unlock()
	return nil
}

// ResetPassword finishes the flow. The remembered state is cleared on success.
func (s *AuthService) ResetPassword(ctx context.Context, newPassword string) error {
	flow, ok := s.PendingReset()
	if !ok || flow.OTP == "" {
		return ErrResetFlowMissing
	}
	req := &models.ResetPasswordRequest{Email: flow.Email, OTP: flow.OTP, Role: flow.Role, NewPassword: newPassword}
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.ResetPassword(ctx, req); err != nil {
		return err
	}
	s.mu.Lock()
	s.reset = nil
	s.mu.Unlock()
	s.log.Info().Str("email", flow.Email).Str("role", string(flow.Role)).Msg("Password reset")
	return nil
}

func (s *AuthService) PendingReset() (ResetFlow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reset == nil {
		return ResetFlow{}, false
	}
	return *s.reset, true
}

