// models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser   = "user"
	RoleLawyer = "lawyer"
)

// Account is a registered person, either a member of the public or a lawyer.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`

	// Lawyer profile.
	BarNumber         string `bson:"barNumber,omitempty" json:"barNumber,omitempty"`
	Specialization    string `bson:"specialization,omitempty" json:"specialization,omitempty"`
	YearsOfExperience int    `bson:"yearsOfExperience,omitempty" json:"yearsOfExperience,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (a Account) DocID() primitive.ObjectID { return a.ID }

func (a Account) WithDocID(id primitive.ObjectID) Account {
	a.ID = id
	return a
}

func (a Account) IsLawyer() bool { return a.Role == RoleLawyer }

// SignupRequest is the registration payload.
type SignupRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8"`
	FirstName         string `json:"firstName" binding:"required"`
	LastName          string `json:"lastName"`
	Role              string `json:"role"`
	BarNumber         string `json:"barNumber,omitempty"`
	Specialization    string `json:"specialization,omitempty"`
	YearsOfExperience int    `json:"yearsOfExperience,omitempty"`
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate holds optional profile changes; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	Specialization    *string `json:"specialization,omitempty"`
	YearsOfExperience *int    `json:"yearsOfExperience,omitempty"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	Account Account `json:"user"`
	Token   string  `json:"token"`
}
