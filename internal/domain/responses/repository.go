package responses

import "context"

type Repository interface {
	Create(ctx context.Context, r DonorResponse) error
	ListByRequest(ctx context.Context, requestID string) ([]DonorResponse, error)
	ListByDonor(ctx context.Context, donorID string) ([]DonorResponse, error)
}
