package location

import (
	"time"

	"github.com/google/uuid"
)

const DefaultType = "home"

type Coordinates struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Location is a saved address. At most one location per user is the
// default.
type Location struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Type        string       `json:"type"`
	Notes       string       `json:"notes"`
	IsDefault   bool         `json:"isDefault"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CreateInput struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Address     string       `json:"address" validate:"required,max=500"`
	Type        string       `json:"type,omitempty" validate:"omitempty,oneof=home work hospital family other"`
	Notes       string       `json:"notes,omitempty" validate:"max=1000"`
	IsDefault   bool         `json:"isDefault,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address     *string      `json:"address,omitempty" validate:"omitempty,min=1,max=500"`
	Type        *string      `json:"type,omitempty" validate:"omitempty,oneof=home work hospital family other"`
	Notes       *string      `json:"notes,omitempty" validate:"omitempty,max=1000"`
	IsDefault   *bool        `json:"isDefault,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}
