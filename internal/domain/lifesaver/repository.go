package lifesaver

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("life saver request not found")

// Repository es la persistencia que consume el servicio.
// Create y Update juntos forman el "set" (upsert) de la solicitud.
type Repository interface {
	Create(ctx context.Context, r Request) error
	Update(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	ListAll(ctx context.Context) ([]Request, error)

	// Decline guarda declined y, si followUp no es nil, lo inserta en la
	// misma transacción. Si algo falla no queda ninguno de los dos.
	Decline(ctx context.Context, declined Request, followUp *Request) error
}
