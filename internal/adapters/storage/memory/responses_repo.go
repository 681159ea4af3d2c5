package memory

import (
	"context"

	"blood-donor-network/internal/domain/responses"
)

type responseRepo struct {
	t *table[responses.DonorResponse]
}

func NewResponseRepo() responses.Repository {
	return &responseRepo{t: newTable[responses.DonorResponse](nil)}
}

func (r *responseRepo) Create(ctx context.Context, resp responses.DonorResponse) error {
	return r.t.insert(resp.ID, resp)
}

func (r *responseRepo) ListByRequest(ctx context.Context, requestID string) ([]responses.DonorResponse, error) {
	return r.t.list(func(resp responses.DonorResponse) bool {
		return resp.RequestID == requestID
	}), nil
}

func (r *responseRepo) ListByDonor(ctx context.Context, donorID string) ([]responses.DonorResponse, error) {
	return r.t.list(func(resp responses.DonorResponse) bool {
		return resp.DonorID == donorID
	}), nil
}
