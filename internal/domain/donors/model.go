package donors

import (
	"time"

	"blood-donor-network/internal/domain/blood"
)

// Donor es un donante registrado. No se borra nunca; solo se verifica,
// se marca disponible/no disponible o se actualizan sus donaciones.
type Donor struct {
	ID string

	FullName string
	Email    string
	Phone    string

	BloodType   blood.Type
	DateOfBirth string // YYYY-MM-DD
	Gender      string
	Weight      int // kg
	Address     string

	// Coordenadas opcionales. Se guardan pero la búsqueda no filtra por distancia.
	Latitude  *string
	Longitude *string

	IsAvailable    bool
	IsVerified     bool
	TotalDonations int
	Rating         string // decimal "0".."5"
	LastDonation   *string

	CreatedAt time.Time
}

// Eligible: disponible y verificado.
func (d Donor) Eligible() bool {
	return d.IsAvailable && d.IsVerified
}
