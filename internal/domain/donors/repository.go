package donors

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("donor not found")

// Repository es implementado por los adapters de storage.
// ListAll devuelve los donantes en orden de inserción: el motor de
// reasignación depende de ese orden para desempatar.
type Repository interface {
	Create(ctx context.Context, d Donor) error
	Update(ctx context.Context, d Donor) error
	GetByID(ctx context.Context, id string) (Donor, error)
	GetByEmail(ctx context.Context, email string) (Donor, error)
	ListAll(ctx context.Context) ([]Donor, error)
}

// Lister es lo único que otros módulos necesitan de donantes.
type Lister interface {
	ListAll(ctx context.Context) ([]Donor, error)
}
