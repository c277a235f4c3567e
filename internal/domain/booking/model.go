package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	TypeSelf  = "self"
	TypeOther = "other"

	UrgencyImmediate = "immediate"
	UrgencyScheduled = "scheduled"
)

// Patient is stored as JSONB on the booking. Age is in whole years with 0
// for a newborn; nil means it was not given.
type Patient struct {
	Name             string `json:"name" validate:"required,max=200"`
	Age              *int   `json:"age" validate:"required,gte=0,lte=150"`
	Gender           string `json:"gender" validate:"required,max=32"`
	Phone            string `json:"phone" validate:"required,max=32"`
	MedicalCondition string `json:"medicalCondition,omitempty" validate:"max=2000"`
	Notes            string `json:"notes,omitempty" validate:"max=2000"`
}

// Schedule is the requested pickup slot of a scheduled booking.
type Schedule struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type Address struct {
	Pickup  string `json:"pickup" validate:"required,max=500"`
	Dropoff string `json:"dropoff" validate:"required,max=500"`
}

// Booking is one ambulance request. BookingID is the human-readable
// reference shown to the caller and is not unique.
type Booking struct {
	ID            uuid.UUID `json:"id"`
	BookingID     string    `json:"bookingId"`
	UserID        uuid.UUID `json:"userId"`
	BookingType   string    `json:"bookingType"`
	Patient       Patient   `json:"patientInfo"`
	AmbulanceType string    `json:"ambulanceType"`
	Urgency       string    `json:"urgency"`
	Schedule      *Schedule `json:"dateTime,omitempty"`
	Address       Address   `json:"address"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateInput struct {
	BookingID     string    `json:"bookingId,omitempty" validate:"omitempty,max=64"`
	BookingType   string    `json:"bookingType" validate:"required,oneof=self other"`
	Patient       Patient   `json:"patientInfo"`
	AmbulanceType string    `json:"ambulanceType" validate:"required,max=100"`
	Urgency       string    `json:"urgency" validate:"required,oneof=immediate scheduled"`
	Schedule      *Schedule `json:"dateTime,omitempty"`
	Address       Address   `json:"address"`
}
