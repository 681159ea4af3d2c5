package lifesaver

// Status de una solicitud life saver.
// @Enum pending, contacted, accepted, declined, completed, cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusContacted, StatusAccepted,
		StatusDeclined, StatusCompleted, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// Terminal: declined, completed y cancelled no transicionan más.
func (s Status) Terminal() bool {
	switch s {
	case StatusDeclined, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reporta si from -> to es válido.
// Repetir el mismo estado siempre es válido (no-op).
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusContacted || to == StatusAccepted ||
			to == StatusDeclined || to == StatusCancelled
	case StatusContacted:
		return to == StatusAccepted || to == StatusDeclined ||
			to == StatusCancelled || to == StatusCompleted
	case StatusAccepted:
		return to == StatusCompleted || to == StatusCancelled || to == StatusDeclined
	case StatusDeclined, StatusCompleted, StatusCancelled:
		return false
	default:
		return false
	}
}
