package hospital

import (
	"time"

	"github.com/google/uuid"
)

type Hospital struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Distance       float64   `json:"distance"`
	TravelTime     float64   `json:"travelTime"`
	Type           string    `json:"type"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Rating         float64   `json:"rating"`
	Reviews        int       `json:"reviews"`
	Emergency      bool      `json:"emergency"`
	Beds           int       `json:"beds"`
	AmbulanceReady bool      `json:"ambulanceReady"`
	Specialties    []string  `json:"specialties"`
	Image          string    `json:"image"`
	Website        string    `json:"website"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Distance       float64  `json:"distance" validate:"gte=0"`
	TravelTime     float64  `json:"travelTime" validate:"gte=0"`
	Type           string   `json:"type" validate:"max=100"`
	Address        string   `json:"address" validate:"max=500"`
	Phone          string   `json:"phone" validate:"max=32"`
	Rating         float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews        int      `json:"reviews" validate:"gte=0"`
	Emergency      bool     `json:"emergency"`
	Beds           int      `json:"beds" validate:"gte=0"`
	AmbulanceReady bool     `json:"ambulanceReady"`
	Specialties    []string `json:"specialties" validate:"dive,required,max=100"`
	Image          string   `json:"image" validate:"omitempty,url"`
	Website        string   `json:"website" validate:"omitempty,url"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Distance       *float64  `json:"distance,omitempty" validate:"omitempty,gte=0"`
	TravelTime     *float64  `json:"travelTime,omitempty" validate:"omitempty,gte=0"`
	Type           *string   `json:"type,omitempty" validate:"omitempty,max=100"`
	Address        *string   `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone          *string   `json:"phone,omitempty" validate:"omitempty,max=32"`
	Rating         *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Reviews        *int      `json:"reviews,omitempty" validate:"omitempty,gte=0"`
	Emergency      *bool     `json:"emergency,omitempty"`
	Beds           *int      `json:"beds,omitempty" validate:"omitempty,gte=0"`
	AmbulanceReady *bool     `json:"ambulanceReady,omitempty"`
	Specialties    *[]string `json:"specialties,omitempty" validate:"omitempty,dive,required,max=100"`
	Image          *string   `json:"image,omitempty" validate:"omitempty,url"`
	Website        *string   `json:"website,omitempty" validate:"omitempty,url"`
}
