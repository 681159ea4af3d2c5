package bloodrequests

import (
	"time"

	"blood-donor-network/internal/domain/blood"
)

// Status de una solicitud de emergencia.
// @Enum active, fulfilled, completed, cancelled
type Status string

const (
	StatusActive    Status = "active"
	StatusFulfilled Status = "fulfilled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusActive, StatusFulfilled, StatusCompleted, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// BloodRequest es un pedido de emergencia difundido a todos los donantes
// compatibles. No está ligado a las solicitudes life saver.
type BloodRequest struct {
	ID string

	PatientName   string
	BloodType     blood.Type
	UnitsRequired int
	UrgencyLevel  blood.Urgency
	Hospital      string
	ContactPerson string
	ContactPhone  string
	Notes         string

	Latitude  *string
	Longitude *string

	Status    Status
	CreatedAt time.Time
}
