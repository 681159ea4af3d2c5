package responses

import "time"

// Status de la respuesta de un donante a una solicitud difundida.
// @Enum responded, pending, accepted, declined
type Status string

const (
	StatusResponded Status = "responded"
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusResponded, StatusPending, StatusAccepted, StatusDeclined:
		return st, true
	default:
		return "", false
	}
}

// DonorResponse: muchas por BloodRequest y muchas por Donor.
type DonorResponse struct {
	ID           string
	RequestID    string
	DonorID      string
	Status       Status
	ResponseTime time.Time
}
