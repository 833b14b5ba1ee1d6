package user

import (
	"context"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"
	"lawyerconnect/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// Registration
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)

	// Authentication
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)

	// Account Management
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.Account, error)

	// Admin / Utility
	VerifyLawyer(ctx context.Context, id string) (*models.Account, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Accounts durable.Collection[models.Account]
	Tokens   *utils.TokenIssuer
	Logger   *zap.Logger

	// TrustedLawyers lists emails whose lawyer accounts are verified at signup.
	TrustedLawyers []string
}
