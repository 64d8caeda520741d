package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type AuthRepository struct {
	API *apiclient.Client
}

func NewAuthRepository(api *apiclient.Client) *AuthRepository {
	return &AuthRepository{API: api}
}

// Login posts credentials to the role's login endpoint and returns the token
// and user from the response.
func (r *AuthRepository) Login(ctx context.Context, req *models.LoginRequest) (string, models.AuthUser, error) {
	body := map[string]string{"email": req.Email, "password": req.Password}
	data, err := r.API.Post(ctx, loginPath(req.Role), body)
	if err != nil {
		return "", models.AuthUser{}, err
	}
	return adapters.DecodeLogin(data, req.Role)
}

func (r *AuthRepository) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	_, err := r.API.Post(ctx, pathForgotPassword, req)
	return err
}

func (r *AuthRepository) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) error {
	_, err := r.API.Post(ctx, pathVerifyOTP, req)
	return err
}

func (r *AuthRepository) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	_, err := r.API.Post(ctx, pathResetPassword, req)
	return err
}
