package user

import (
	"context"
	"testing"
	"time"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"
	"lawyerconnect/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *DefaultUserService {
	return &DefaultUserService{
		Accounts: durable.NewShadow[models.Account]("users", "email"),
		Tokens:   utils.NewTokenIssuer("test-secret", time.Hour),
		Logger:   zap.NewNop(),
	}
}

func TestSignupAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	resp, err := svc.Signup(ctx, models.SignupRequest{
		Email: " Asha@Example.com ", Password: "correct horse", FirstName: "Asha",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", resp.Account.Email)
	assert.Equal(t, models.RoleUser, resp.Account.Role)
	assert.True(t, resp.Account.IsVerified)
	assert.NotEqual(t, "correct horse", resp.Account.PasswordHash)
	assert.NotEmpty(t, resp.Token)

	sub, role, err := svc.Tokens.ExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID.Hex(), sub)
	assert.Equal(t, models.RoleUser, role)

	login, err := svc.Authenticate(ctx, "asha@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, login.Account.ID)

	_, err = svc.Authenticate(ctx, "asha@example.com", "wrong password")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestSignupRejectsDuplicatesAndBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	req := models.SignupRequest{Email: "a@example.com", Password: "password1", FirstName: "A"}

	_, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.Signup(ctx, models.SignupRequest{Email: "not-an-email", Password: "password1", FirstName: "A"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.Signup(ctx, models.SignupRequest{Email: "b@example.com", Password: "short", FirstName: "A"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.Signup(ctx, models.SignupRequest{Email: "c@example.com", Password: "password1", FirstName: "A", Role: "admin"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLawyerStartsUnverified(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	resp, err := svc.Signup(ctx, models.SignupRequest{
		Email: "adv@example.com", Password: "password1", FirstName: "Ravi",
		Role: models.RoleLawyer, BarNumber: "MH/123/2010", Specialization: "Labour",
	})
	require.NoError(t, err)
	assert.False(t, resp.Account.IsVerified)
	assert.Equal(t, "MH/123/2010", resp.Account.BarNumber)

	verified, err := svc.VerifyLawyer(ctx, resp.Account.ID.Hex())
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
}

func TestTrustedLawyerStartsVerified(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	svc.TrustedLawyers = []string{"Senior@Example.com"}

	trusted, err := svc.Signup(ctx, models.SignupRequest{
		Email: "senior@example.com", Password: "password1", FirstName: "Meera", Role: models.RoleLawyer,
	})
	require.NoError(t, err)
	assert.True(t, trusted.Account.IsVerified)

	other, err := svc.Signup(ctx, models.SignupRequest{
		Email: "junior@example.com", Password: "password1", FirstName: "Kiran", Role: models.RoleLawyer,
	})
	require.NoError(t, err)
	assert.False(t, other.Account.IsVerified)
}

func TestVerifyLawyerRejectsMembers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	resp, _ := svc.Signup(ctx, models.SignupRequest{Email: "u@example.com", Password: "password1", FirstName: "U"})

	_, err := svc.VerifyLawyer(ctx, resp.Account.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	resp, _ := svc.Signup(ctx, models.SignupRequest{Email: "u@example.com", Password: "password1", FirstName: "U"})

	last := "Sharma"
	years := 4
	got, err := svc.UpdateProfile(ctx, resp.Account.ID.Hex(), models.ProfileUpdate{LastName: &last, YearsOfExperience: &years})
	require.NoError(t, err)
	assert.Equal(t, "Sharma", got.LastName)
	assert.Equal(t, 4, got.YearsOfExperience)
	assert.Equal(t, "U", got.FirstName)

	empty := " "
	_, err = svc.UpdateProfile(ctx, resp.Account.ID.Hex(), models.ProfileUpdate{FirstName: &empty})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
