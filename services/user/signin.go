package user

import (
	"context"
	"errors"
	"fmt"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"

	"golang.org/x/crypto/bcrypt"
)

// Authenticate checks the credentials and issues a token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	account, err := durable.FindOneBy(ctx, s.Accounts, "email", normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}
	return s.issue(account)
}
