package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateProfile applies the non-nil fields of update.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.Account, error) {
	set := durable.Fields{}
	if update.FirstName != nil {
		name := strings.TrimSpace(*update.FirstName)
		if name == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", models.ErrInvalidInput)
		}
		set["firstName"] = name
	}
	if update.LastName != nil {
		set["lastName"] = strings.TrimSpace(*update.LastName)
	}
	if update.Specialization != nil {
		set["specialization"] = strings.TrimSpace(*update.Specialization)
	}
	if update.YearsOfExperience != nil {
		if *update.YearsOfExperience < 0 {
			return nil, fmt.Errorf("%w: years of experience cannot be negative", models.ErrInvalidInput)
		}
		set["yearsOfExperience"] = *update.YearsOfExperience
	}
	if len(set) == 0 {
		return s.GetAccount(ctx, id)
	}
	set["updatedAt"] = time.Now().UTC().Truncate(time.Millisecond)

	account, err := s.Accounts.UpdateFields(ctx, id, nil, set)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// VerifyLawyer marks a lawyer account as verified.
func (s *DefaultUserService) VerifyLawyer(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.Accounts.UpdateFields(ctx, id,
		durable.Fields{"role": models.RoleLawyer},
		durable.Fields{"isVerified": true, "updatedAt": time.Now().UTC().Truncate(time.Millisecond)},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify lawyer %s: %w", id, err)
	}
	s.Logger.Info("lawyer verified", zap.String("id", id))
	return &account, nil
}
