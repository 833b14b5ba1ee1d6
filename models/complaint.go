// models/complaint.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintStatus is the lifecycle state of a complaint.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusClosed     ComplaintStatus = "closed"
)

var complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
	StatusPending:    {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusPending, StatusResolved, StatusClosed},
	StatusResolved:   nil,
	StatusClosed:     nil,
}

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	_, ok := complaintTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed out of s.
func (s ComplaintStatus) Terminal() bool {
	return s.Valid() && len(complaintTransitions[s]) == 0
}

// CanTransitionTo reports whether a reviewer may move a complaint from s to next.
// Same-state requests are never allowed.
func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	for _, allowed := range complaintTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Complaint is a filed legal complaint. It is never deleted.
type Complaint struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintNumber  string             `bson:"complaintNumber" json:"complaintNumber"`
	UserID           string             `bson:"userId" json:"userId"`
	Type             string             `bson:"type" json:"type"`
	Subject          string             `bson:"subject" json:"subject"`
	Description      string             `bson:"description" json:"description"`
	Status           ComplaintStatus    `bson:"status" json:"status"`
	Priority         string             `bson:"priority" json:"priority"`
	SuggestedActions []string           `bson:"suggestedActions,omitempty" json:"suggestedActions,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (c Complaint) DocID() primitive.ObjectID { return c.ID }

func (c Complaint) WithDocID(id primitive.ObjectID) Complaint {
	c.ID = id
	return c
}

type FileComplaintRequest struct {
	Type        string `json:"type"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type StatusUpdateRequest struct {
	Status ComplaintStatus `json:"status" binding:"required"`
}

// ComplaintEvent is published when a complaint is filed or changes status.
type ComplaintEvent struct {
	ComplaintID     string          `json:"complaintId"`
	ComplaintNumber string          `json:"complaintNumber"`
	UserID          string          `json:"userId"`
	From            ComplaintStatus `json:"from,omitempty"`
	To              ComplaintStatus `json:"to"`
	ReviewerID      string          `json:"reviewerId,omitempty"`
	At              time.Time       `json:"at"`
}
