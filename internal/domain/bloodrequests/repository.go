package bloodrequests

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blood request not found")

type Repository interface {
	Create(ctx context.Context, r BloodRequest) error
	Update(ctx context.Context, r BloodRequest) error
	GetByID(ctx context.Context, id string) (BloodRequest, error)
	ListAll(ctx context.Context) ([]BloodRequest, error)
}
