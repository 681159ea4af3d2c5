// Package blood define los enums compartidos entre donantes y solicitudes.
package blood

import "strings"

// Type es un grupo sanguíneo ABO/Rh.
// @Enum A+, A-, B+, B-, AB+, AB-, O+, O-
type Type string

const (
	APos  Type = "A+"
	ANeg  Type = "A-"
	BPos  Type = "B+"
	BNeg  Type = "B-"
	ABPos Type = "AB+"
	ABNeg Type = "AB-"
	OPos  Type = "O+"
	ONeg  Type = "O-"
)

var allTypes = []Type{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType acepta solo los 8 grupos (case-insensitive, sin espacios).
func ParseType(s string) (Type, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range allTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Urgency es el nivel de urgencia de una solicitud.
// @Enum critical, urgent, routine
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyRoutine  Urgency = "routine"
)

func ParseUrgency(s string) (Urgency, bool) {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyCritical:
		return UrgencyCritical, true
	case UrgencyUrgent:
		return UrgencyUrgent, true
	case UrgencyRoutine:
		return UrgencyRoutine, true
	default:
		return "", false
	}
}
