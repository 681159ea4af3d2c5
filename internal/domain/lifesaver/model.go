package lifesaver

import (
	"time"

	"blood-donor-network/internal/domain/blood"
)

// Request es una solicitud dirigida a un donante puntual.
// No se borra: cancelled y declined son estados terminales.
type Request struct {
	ID string

	RequesterName  string
	RequesterEmail string
	RequesterPhone string

	SelectedDonorID string
	BloodType       blood.Type
	UnitsRequired   int
	UrgencyLevel    blood.Urgency
	Hospital        string
	RequestReason   string
	Notes           string

	Status Status

	// Auditoría de la cadena de reasignación.
	PreviousRequestID string   // vacío si es la solicitud original
	TriedDonorIDs     []string // donantes ya ofrecidos antes en este incidente, en orden

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AutoAssignedNote se agrega a las notas de cada solicitud creada por reasignación.
const AutoAssignedNote = " [Auto-assigned after previous donor declined]"

// excluded devuelve los donantes que ya no pueden ofrecerse en el incidente:
// todos los intentados antes más el seleccionado actual.
func (r Request) excluded() map[string]struct{} {
	out := make(map[string]struct{}, len(r.TriedDonorIDs)+1)
	for _, id := range r.TriedDonorIDs {
		out[id] = struct{}{}
	}
	out[r.SelectedDonorID] = struct{}{}
	return out
}
