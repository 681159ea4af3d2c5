package memory

import (
	"context"
	"strings"

	"blood-donor-network/internal/domain/donors"
)

type donorRepo struct {
	t *table[donors.Donor]
}

func NewDonorRepo() donors.Repository {
	return &donorRepo{t: newTable[donors.Donor](nil)}
}

func (r *donorRepo) Create(ctx context.Context, d donors.Donor) error {
	return r.t.insert(d.ID, d)
}

func (r *donorRepo) Update(ctx context.Context, d donors.Donor) error {
	if !r.t.replace(d.ID, d) {
		return donors.ErrNotFound
	}
	return nil
}

func (r *donorRepo) GetByID(ctx context.Context, id string) (donors.Donor, error) {
	d, ok := r.t.get(id)
	if !ok {
		return donors.Donor{}, donors.ErrNotFound
	}
	return d, nil
}

func (r *donorRepo) GetByEmail(ctx context.Context, email string) (donors.Donor, error) {
	d, ok := r.t.find(func(d donors.Donor) bool {
		return strings.EqualFold(d.Email, email)
	})
	if !ok {
		return donors.Donor{}, donors.ErrNotFound
	}
	return d, nil
}

func (r *donorRepo) ListAll(ctx context.Context) ([]donors.Donor, error) {
	return r.t.list(nil), nil
}
