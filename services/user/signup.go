package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Signup validates the request, stores a new account with a bcrypt password
// hash and returns it with a fresh token. Lawyers start unverified unless
// their email is in TrustedLawyers.
func (s *DefaultUserService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", models.ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidInput, minPasswordLength)
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name is required", models.ErrInvalidInput)
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleLawyer {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalidInput, req.Role)
	}

	_, err := durable.FindOneBy(ctx, s.Accounts, "email", email)
	if err == nil {
		return nil, fmt.Errorf("%w: a user with this email already exists", models.ErrConflict)
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.Logger.Error("Signup: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	account := models.Account{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   role != models.RoleLawyer || s.trustedLawyer(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == models.RoleLawyer {
		account.BarNumber = strings.TrimSpace(req.BarNumber)
		account.Specialization = strings.TrimSpace(req.Specialization)
		account.YearsOfExperience = req.YearsOfExperience
	}

	stored, err := s.Accounts.Insert(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	s.Logger.Info("account registered", zap.String("id", stored.ID.Hex()), zap.String("role", stored.Role))

	return s.issue(stored)
}

func (s *DefaultUserService) issue(account models.Account) (*models.AuthResponse, error) {
	token, err := s.Tokens.GenerateToken(account.ID.Hex(), account.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Account: account, Token: token}, nil
}

func (s *DefaultUserService) trustedLawyer(email string) bool {
	for _, trusted := range s.TrustedLawyers {
		if normalizeEmail(trusted) == email {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
