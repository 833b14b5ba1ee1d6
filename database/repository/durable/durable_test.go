package durable

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lawyerconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newComplaint(number string) models.Complaint {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.Complaint{
		ComplaintNumber: number,
		UserID:          "u1",
		Type:            "Labor Law",
		Subject:         "Unpaid wages",
		Description:     "Employer has not paid me for two months",
		Status:          models.StatusPending,
		Priority:        models.PriorityMedium,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestShadowRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewShadow[models.Complaint]("complaints", "complaintNumber")

	stored, err := s.Insert(ctx, newComplaint("C1"))
	require.NoError(t, err)
	require.False(t, stored.ID.IsZero())

	got, err := s.FindByID(ctx, stored.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	owned, err := FindByOwner[models.Complaint](ctx, s, "u1")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestShadowEnforcesUniqueFields(t *testing.T) {
	ctx := context.Background()
	s := NewShadow[models.Complaint]("complaints", "complaintNumber")

	_, err := s.Insert(ctx, newComplaint("C1"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, newComplaint("C1"))
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, 1, s.Len())
}

func TestShadowFindByIDRejectsBadIDs(t *testing.T) {
	s := NewShadow[models.Complaint]("complaints")
	_, err := s.FindByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.FindByID(context.Background(), newObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestShadowGuardedUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewShadow[models.Complaint]("complaints")
	stored, _ := s.Insert(ctx, newComplaint("C1"))

	updated, err := s.UpdateFields(ctx, stored.ID.Hex(),
		Fields{"status": models.StatusPending},
		Fields{"status": models.StatusInProgress, "updatedAt": time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, stored.ComplaintNumber, updated.ComplaintNumber)

	// The guard no longer holds.
	_, err = s.UpdateFields(ctx, stored.ID.Hex(),
		Fields{"status": models.StatusPending},
		Fields{"status": models.StatusClosed})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.UpdateFields(ctx, stored.ID.Hex(), nil, Fields{"_id": newObjectID()})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	got, _ := s.FindByID(ctx, stored.ID.Hex())
	assert.Equal(t, models.StatusInProgress, got.Status)
}

// flakyPrimary fails every call with the configured error.
type flakyPrimary[D Document[D]] struct {
	err   error
	calls int
}

func (f *flakyPrimary[D]) Insert(context.Context, D) (D, error) {
	f.calls++
	var zero D
	return zero, f.err
}

func (f *flakyPrimary[D]) FindByID(context.Context, string) (D, error) {
	f.calls++
	var zero D
	return zero, f.err
}

func (f *flakyPrimary[D]) FindBy(context.Context, string, any) ([]D, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyPrimary[D]) List(context.Context) ([]D, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyPrimary[D]) UpdateFields(context.Context, string, Fields, Fields) (D, error) {
	f.calls++
	var zero D
	return zero, f.err
}

var _ Collection[models.Complaint] = (*flakyPrimary[models.Complaint])(nil)

func TestFallbackSwitchesOnConnectivityError(t *testing.T) {
	ctx := context.Background()
	primary := &flakyPrimary[models.Complaint]{err: fmt.Errorf("insert into complaints: %w: dial tcp", models.ErrStoreUnavailable)}
	sw := NewSwitch(zap.NewNop())
	f := NewFallback[models.Complaint](primary, NewShadow[models.Complaint]("complaints"), sw)

	stored, err := f.Insert(ctx, newComplaint("C1"))
	require.NoError(t, err)
	assert.True(t, sw.Degraded())
	assert.Equal(t, 1, primary.calls)

	got, err := f.FindByID(ctx, stored.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "C1", got.ComplaintNumber)
	assert.Equal(t, 1, primary.calls, "primary must not be retried once degraded")
}

func TestFallbackPassesThroughNotFound(t *testing.T) {
	primary := &flakyPrimary[models.Complaint]{err: fmt.Errorf("fetch from complaints: %w", models.ErrNotFound)}
	sw := NewSwitch(zap.NewNop())
	f := NewFallback[models.Complaint](primary, NewShadow[models.Complaint]("complaints"), sw)

	_, err := f.FindByID(context.Background(), newObjectID().Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.False(t, sw.Degraded())
}

func TestSwitchIsSharedAcrossCollections(t *testing.T) {
	ctx := context.Background()
	sw := NewSwitch(zap.NewNop())
	down := &flakyPrimary[models.Complaint]{err: models.ErrStoreUnavailable}
	other := &flakyPrimary[models.Account]{err: errors.New("should not be called")}

	complaints := NewFallback[models.Complaint](down, NewShadow[models.Complaint]("complaints"), sw)
	accounts := NewFallback[models.Account](other, NewShadow[models.Account]("users", "email"), sw)

	_, err := complaints.List(ctx)
	require.NoError(t, err)

	_, err = accounts.Insert(ctx, models.Account{Email: "a@b.c", Role: models.RoleLawyer})
	require.NoError(t, err)
	assert.Zero(t, other.calls)
}
