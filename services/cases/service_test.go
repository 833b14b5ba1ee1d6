package cases

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"
	"lawyerconnect/services/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

type fixture struct {
	svc      *DefaultCaseService
	accounts *durable.Shadow[models.Account]
	events   *recordingPublisher
	lawyer   models.Account
	member   models.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	accounts := durable.NewShadow[models.Account]("users", "email")
	pub := &recordingPublisher{}
	svc := NewCaseService(durable.NewShadow[models.Complaint]("complaints", "complaintNumber"), accounts, RuleClassifier{}, pub, zap.NewNop())

	lawyer, err := accounts.Insert(ctx, models.Account{Email: "adv@example.com", Role: models.RoleLawyer})
	require.NoError(t, err)
	member, err := accounts.Insert(ctx, models.Account{Email: "u@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	return &fixture{svc: svc, accounts: accounts, events: pub, lawyer: lawyer, member: member}
}

func TestFileComplaintLaborScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.FileComplaint(ctx, "U", "Labor Law", "Unpaid wages", "Employer has not paid me for two months")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, models.PriorityMedium, c.Priority)
	assert.Equal(t, "Labor Law", c.Type)
	assert.Regexp(t, regexp.MustCompile(`^C\d+$`), c.ComplaintNumber)
	assert.NotEmpty(t, c.SuggestedActions)

	list, err := f.svc.ListComplaints(ctx, "U")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ComplaintNumber, list[0].ComplaintNumber)
	assert.Equal(t, []string{"lawyerconnect.complaints.filed"}, f.events.subjects)
}

func TestFileComplaintRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.FileComplaint(ctx, "U", "", "Defective phone", "The seller refuses a refund for a defective phone")
	require.NoError(t, err)
	assert.Equal(t, "Consumer Rights", c.Type)

	got, err := f.svc.GetComplaint(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, *c, *got)
}

func TestFileComplaintValidatesInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.FileComplaint(context.Background(), "U", "Other", "", "text")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = f.svc.FileComplaint(context.Background(), "U", "Other", "subject", "  ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestComplaintNumbersAreUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	frozen := time.UnixMilli(1_700_000_000_000)
	f.svc.Numbers.now = func() time.Time { return frozen }

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		c, err := f.svc.FileComplaint(ctx, "U", "Other", "s", "d")
		require.NoError(t, err)
		assert.False(t, seen[c.ComplaintNumber])
		seen[c.ComplaintNumber] = true
	}
}

func TestListComplaintsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	step := 0
	f.svc.now = func() time.Time { step++; return base.Add(time.Duration(step) * time.Minute) }

	first, _ := f.svc.FileComplaint(ctx, "U", "Other", "first", "d")
	second, _ := f.svc.FileComplaint(ctx, "U", "Other", "second", "d")
	_, _ = f.svc.FileComplaint(ctx, "V", "Other", "someone else", "d")

	list, err := f.svc.ListComplaints(ctx, "U")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	all, err := f.svc.ListAllComplaints(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSetComplaintStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, _ := f.svc.FileComplaint(ctx, "U", "Labor Law", "Unpaid wages", "Employer has not paid me")
	id := c.ID.Hex()
	lawyer := f.lawyer.ID.Hex()

	updated, err := f.svc.SetComplaintStatus(ctx, id, lawyer, models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(c.UpdatedAt))

	_, err = f.svc.SetComplaintStatus(ctx, id, lawyer, models.StatusResolved)
	require.NoError(t, err)

	_, err = f.svc.SetComplaintStatus(ctx, id, lawyer, models.StatusPending)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	got, _ := f.svc.GetComplaint(ctx, id)
	assert.Equal(t, models.StatusResolved, got.Status)
	assert.Equal(t, c.ComplaintNumber, got.ComplaintNumber)
}

func TestSetComplaintStatusRejectsNonReviewer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, _ := f.svc.FileComplaint(ctx, "U", "Other", "s", "d")

	_, err := f.svc.SetComplaintStatus(ctx, c.ID.Hex(), f.member.ID.Hex(), models.StatusInProgress)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = f.svc.SetComplaintStatus(ctx, c.ID.Hex(), "nobody", models.StatusInProgress)
	assert.ErrorIs(t, err, models.ErrForbidden)

	got, _ := f.svc.GetComplaint(ctx, c.ID.Hex())
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestSetComplaintStatusRejectsSameStateAndUnknown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c, _ := f.svc.FileComplaint(ctx, "U", "Other", "s", "d")

	_, err := f.svc.SetComplaintStatus(ctx, c.ID.Hex(), f.lawyer.ID.Hex(), models.StatusPending)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.svc.SetComplaintStatus(ctx, c.ID.Hex(), f.lawyer.ID.Hex(), "archived")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.svc.SetComplaintStatus(ctx, "000000000000000000000000", f.lawyer.ID.Hex(), models.StatusClosed)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStatusTransitionTable(t *testing.T) {
	allowed := map[models.ComplaintStatus][]models.ComplaintStatus{
		models.StatusPending:    {models.StatusInProgress, models.StatusClosed},
		models.StatusInProgress: {models.StatusPending, models.StatusResolved, models.StatusClosed},
	}
	all := []models.ComplaintStatus{models.StatusPending, models.StatusInProgress, models.StatusResolved, models.StatusClosed}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, models.StatusResolved.Terminal())
	assert.True(t, models.StatusClosed.Terminal())
	assert.False(t, models.StatusPending.Terminal())
}

type stubModel struct {
	reply string
	err   error
}

var _ generation.Model = stubModel{}

func (s stubModel) Name() string { return "stub" }
func (s stubModel) Generate(context.Context, string) (string, error) {
	return s.reply, s.err
}

func TestModelClassifier(t *testing.T) {
	ctx := context.Background()

	c := ModelClassifier{Model: stubModel{reply: "```json\n{\"category\":\"Family Law\",\"priority\":\"low\",\"suggestedActions\":[\"Try mediation\"]}\n```"}, Logger: zap.NewNop()}
	got := c.Classify(ctx, "Custody", "Question about visitation")
	assert.Equal(t, "Family Law", got.Category)
	assert.Equal(t, models.PriorityLow, got.Priority)
	assert.Equal(t, []string{"Try mediation"}, got.SuggestedActions)

	c = ModelClassifier{Model: stubModel{err: errors.New("boom")}, Logger: zap.NewNop()}
	got = c.Classify(ctx, "Unpaid wages", "Employer has not paid me")
	assert.Equal(t, "Labor Law", got.Category)
	assert.Equal(t, models.PriorityMedium, got.Priority)

	c = ModelClassifier{Model: stubModel{reply: `{"category":"Space Law","priority":"urgent"}`}, Logger: zap.NewNop()}
	got = c.Classify(ctx, "s", "nothing recognisable")
	assert.Equal(t, "Other", got.Category)
	assert.Equal(t, defaultActions, got.SuggestedActions)
}

func TestRuleClassifierPriority(t *testing.T) {
	got := RuleClassifier{}.Classify(context.Background(), "Threats from neighbour", "He threatened to attack my family")
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, "Criminal Law", got.Category)
}
