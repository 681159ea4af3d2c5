package memory

import (
	"context"
	"errors"

	"blood-donor-network/internal/domain/lifesaver"
)

type lifeSaverRepo struct {
	t *table[lifesaver.Request]
}

func NewLifeSaverRepo() lifesaver.Repository {
	return &lifeSaverRepo{t: newTable(cloneRequest)}
}

// cloneRequest evita compartir TriedDonorIDs entre el store y los callers.
func cloneRequest(r lifesaver.Request) lifesaver.Request {
	if r.TriedDonorIDs != nil {
		r.TriedDonorIDs = append([]string(nil), r.TriedDonorIDs...)
	}
	return r
}

func (r *lifeSaverRepo) Create(ctx context.Context, req lifesaver.Request) error {
	return r.t.insert(req.ID, req)
}

func (r *lifeSaverRepo) Update(ctx context.Context, req lifesaver.Request) error {
	if !r.t.replace(req.ID, req) {
		return lifesaver.ErrNotFound
	}
	return nil
}

func (r *lifeSaverRepo) Decline(ctx context.Context, declined lifesaver.Request, followUp *lifesaver.Request) error {
	if followUp == nil {
		return r.Update(ctx, declined)
	}
	err := r.t.replaceAndInsert(declined.ID, declined, followUp.ID, *followUp)
	if errors.Is(err, errNotFound) {
		return lifesaver.ErrNotFound
	}
	return err
}

func (r *lifeSaverRepo) GetByID(ctx context.Context, id string) (lifesaver.Request, error) {
	req, ok := r.t.get(id)
	if !ok {
		return lifesaver.Request{}, lifesaver.ErrNotFound
	}
	return req, nil
}

func (r *lifeSaverRepo) ListAll(ctx context.Context) ([]lifesaver.Request, error) {
	return r.t.list(nil), nil
}
