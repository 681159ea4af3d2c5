package memory

import (
	"context"

	"blood-donor-network/internal/domain/bloodrequests"
)

type bloodRequestRepo struct {
	t *table[bloodrequests.BloodRequest]
}

func NewBloodRequestRepo() bloodrequests.Repository {
	return &bloodRequestRepo{t: newTable[bloodrequests.BloodRequest](nil)}
}

func (r *bloodRequestRepo) Create(ctx context.Context, br bloodrequests.BloodRequest) error {
	return r.t.insert(br.ID, br)
}

func (r *bloodRequestRepo) Update(ctx context.Context, br bloodrequests.BloodRequest) error {
	if !r.t.replace(br.ID, br) {
		return bloodrequests.ErrNotFound
	}
	return nil
}

func (r *bloodRequestRepo) GetByID(ctx context.Context, id string) (bloodrequests.BloodRequest, error) {
	br, ok := r.t.get(id)
	if !ok {
		return bloodrequests.BloodRequest{}, bloodrequests.ErrNotFound
	}
	return br, nil
}

func (r *bloodRequestRepo) ListAll(ctx context.Context) ([]bloodrequests.BloodRequest, error) {
	return r.t.list(nil), nil
}
