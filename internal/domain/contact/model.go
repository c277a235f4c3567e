package contact

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRelationship = "family"

// Contact is an emergency contact. Each user has at most one primary
// contact, and the first one created is primary.
type Contact struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship string    `json:"relationship"`
	Notes        string    `json:"notes"`
	IsPrimary    bool      `json:"isPrimary"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Phone        string `json:"phone" validate:"required,max=32"`
	Relationship string `json:"relationship,omitempty" validate:"omitempty,oneof=family friend doctor hospital colleague other"`
	Notes        string `json:"notes,omitempty" validate:"max=1000"`
	IsPrimary    bool   `json:"isPrimary,omitempty"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,min=1,max=32"`
	Relationship *string `json:"relationship,omitempty" validate:"omitempty,oneof=family friend doctor hospital colleague other"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	IsPrimary    *bool   `json:"isPrimary,omitempty"`
}
