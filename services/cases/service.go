// Package cases files complaints and moves them through their review lifecycle.
package cases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/metrics"
	"lawyerconnect/models"
	"lawyerconnect/services/events"

	"go.uber.org/zap"
)

// maxNumberAttempts bounds retries when a complaint number collides.
const maxNumberAttempts = 3

// CaseService is the complaint API exposed to the HTTP layer.
type CaseService interface {
	// FileComplaint records a new complaint in status pending.
	FileComplaint(ctx context.Context, ownerID, complaintType, subject, description string) (*models.Complaint, error)

	// ListComplaints returns ownerID's complaints, newest first.
	ListComplaints(ctx context.Context, ownerID string) ([]models.Complaint, error)

	// ListAllComplaints returns every complaint, newest first. Reviewers only.
	ListAllComplaints(ctx context.Context) ([]models.Complaint, error)

	// GetComplaint returns one complaint or models.ErrNotFound.
	GetComplaint(ctx context.Context, id string) (*models.Complaint, error)

	// SetComplaintStatus moves a complaint to newStatus on behalf of a reviewer.
	SetComplaintStatus(ctx context.Context, caseID, reviewerID string, newStatus models.ComplaintStatus) (*models.Complaint, error)
}

type DefaultCaseService struct {
	Complaints durable.Collection[models.Complaint]
	Accounts   durable.Collection[models.Account]
	Numbers    *NumberSource
	Classifier Classifier
	Events     events.Publisher
	Logger     *zap.Logger

	now func() time.Time
}

func NewCaseService(
	complaints durable.Collection[models.Complaint],
	accounts durable.Collection[models.Account],
	classifier Classifier,
	publisher events.Publisher,
	logger *zap.Logger,
) *DefaultCaseService {
	if classifier == nil {
		classifier = RuleClassifier{}
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &DefaultCaseService{
		Complaints: complaints,
		Accounts:   accounts,
		Numbers:    NewNumberSource(),
		Classifier: classifier,
		Events:     publisher,
		Logger:     logger,
		now:        time.Now,
	}
}

func (s *DefaultCaseService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *DefaultCaseService) FileComplaint(ctx context.Context, ownerID, complaintType, subject, description string) (*models.Complaint, error) {
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	switch {
	case strings.TrimSpace(ownerID) == "":
		return nil, fmt.Errorf("%w: owner is required", models.ErrInvalidInput)
	case subject == "":
		return nil, fmt.Errorf("%w: subject is required", models.ErrInvalidInput)
	case description == "":
		return nil, fmt.Errorf("%w: description is required", models.ErrInvalidInput)
	}

	triage := s.Classifier.Classify(ctx, subject, description)
	complaintType = strings.TrimSpace(complaintType)
	if complaintType == "" {
		complaintType = triage.Category
	}
	priority := triage.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := s.timestamp()
	complaint := models.Complaint{
		UserID:           ownerID,
		Type:             complaintType,
		Subject:          subject,
		Description:      description,
		Status:           models.StatusPending,
		Priority:         priority,
		SuggestedActions: triage.SuggestedActions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var (
		stored models.Complaint
		err    error
	)
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		complaint.ComplaintNumber = s.Numbers.Next()
		stored, err = s.Complaints.Insert(ctx, complaint)
		if !errors.Is(err, models.ErrConflict) {
			break
		}
		s.Logger.Warn("complaint number collision, retrying", zap.String("complaintNumber", complaint.ComplaintNumber))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to file complaint: %w", err)
	}

	s.publish(ctx, events.SubjectComplaintFiled, models.ComplaintEvent{
		ComplaintID:     stored.ID.Hex(),
		ComplaintNumber: stored.ComplaintNumber,
		UserID:          stored.UserID,
		To:              stored.Status,
		At:              stored.CreatedAt,
	})
	return &stored, nil
}

func (s *DefaultCaseService) ListComplaints(ctx context.Context, ownerID string) ([]models.Complaint, error) {
	complaints, err := durable.FindByOwner(ctx, s.Complaints, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return newestFirst(complaints), nil
}

func (s *DefaultCaseService) ListAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	complaints, err := s.Complaints.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return newestFirst(complaints), nil
}

func (s *DefaultCaseService) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	c, err := s.Complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *DefaultCaseService) SetComplaintStatus(ctx context.Context, caseID, reviewerID string, newStatus models.ComplaintStatus) (*models.Complaint, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidTransition, newStatus)
	}

	reviewer, err := s.Accounts.FindByID(ctx, reviewerID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w: reviewer %s is not a registered account", models.ErrInvalidTransition, models.ErrForbidden, reviewerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewer: %w", err)
	}
	if !reviewer.IsLawyer() {
		return nil, fmt.Errorf("%w: %w: only lawyers may review complaints", models.ErrInvalidTransition, models.ErrForbidden)
	}

	current, err := s.Complaints.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, current.Status, newStatus)
	}

	updated, err := s.Complaints.UpdateFields(ctx, caseID,
		durable.Fields{"status": current.Status},
		durable.Fields{"status": newStatus, "updatedAt": s.timestamp()},
	)
	if errors.Is(err, models.ErrNotFound) {
		// The complaint exists, so the status guard failed.
		return nil, fmt.Errorf("%w: complaint %s changed concurrently", models.ErrInvalidTransition, caseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint status: %w", err)
	}

	metrics.ComplaintTransitions.WithLabelValues(string(current.Status), string(newStatus)).Inc()
	s.Logger.Info("complaint status changed",
		zap.String("complaintNumber", updated.ComplaintNumber),
		zap.String("from", string(current.Status)),
		zap.String("to", string(newStatus)),
		zap.String("reviewerId", reviewerID),
	)
	s.publish(ctx, events.SubjectComplaintStatusChanged, models.ComplaintEvent{
		ComplaintID:     updated.ID.Hex(),
		ComplaintNumber: updated.ComplaintNumber,
		UserID:          updated.UserID,
		From:            current.Status,
		To:              updated.Status,
		ReviewerID:      reviewerID,
		At:              updated.UpdatedAt,
	})
	return &updated, nil
}

func (s *DefaultCaseService) publish(ctx context.Context, subject string, event models.ComplaintEvent) {
	if err := s.Events.Publish(ctx, subject, event); err != nil {
		s.Logger.Warn("failed to publish complaint event", zap.String("subject", subject), zap.Error(err))
	}
}

func newestFirst(complaints []models.Complaint) []models.Complaint {
	sort.SliceStable(complaints, func(i, j int) bool {
		if !complaints[i].CreatedAt.Equal(complaints[j].CreatedAt) {
			return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
		}
		return complaints[i].ComplaintNumber > complaints[j].ComplaintNumber
	})
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	return complaints
}
