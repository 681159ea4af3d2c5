package responses

import (
	"context"
	"errors"
	"strings"
	"time"

	"blood-donor-network/internal/domain/bloodrequests"
	"blood-donor-network/internal/domain/donors"
	"blood-donor-network/internal/platform/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lookups mínimos para validar referencias sin acoplar a los services completos.
type RequestLookup interface {
	GetByID(ctx context.Context, id string) (bloodrequests.BloodRequest, error)
}

type DonorLookup interface {
	GetByID(ctx context.Context, id string) (donors.Donor, error)
}

type Service struct {
	repo     Repository
	requests RequestLookup
	donors   DonorLookup
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, requests RequestLookup, dl DonorLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		requests: requests,
		donors:   dl,
		log:      log.Named("responses"),
		now:      time.Now,
	}
}

type CreateInput struct {
	RequestID string
	DonorID   string
	Status    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (DonorResponse, error) {
	var ve validation.Errors
	ve.Required("requestId", in.RequestID)
	ve.Required("donorId", in.DonorID)
	st, ok := ParseStatus(strings.TrimSpace(in.Status))
	if !ok {
		ve.Add("status", "must be responded, pending, accepted or declined")
	}
	if err := ve.Err(); err != nil {
		return DonorResponse{}, err
	}

	requestID := strings.TrimSpace(in.RequestID)
	donorID := strings.TrimSpace(in.DonorID)

	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if !errors.Is(err, bloodrequests.ErrNotFound) {
			return DonorResponse{}, err
		}
		ve.Add("requestId", "blood request not found")
	}
	if _, err := s.donors.GetByID(ctx, donorID); err != nil {
		if !errors.Is(err, donors.ErrNotFound) {
			return DonorResponse{}, err
		}
		ve.Add("donorId", "donor not found")
	}
	if err := ve.Err(); err != nil {
		return DonorResponse{}, err
	}

	resp := DonorResponse{
		ID:           uuid.NewString(),
		RequestID:    requestID,
		DonorID:      donorID,
		Status:       st,
		ResponseTime: s.now(),
	}
	if err := s.repo.Create(ctx, resp); err != nil {
		return DonorResponse{}, err
	}
	s.log.Info("donor responded",
		zap.String("request_id", requestID),
		zap.String("donor_id", donorID),
		zap.String("status", string(st)),
	)
	return resp, nil
}

func (s *Service) ListByRequest(ctx context.Context, requestID string) ([]DonorResponse, error) {
	return s.repo.ListByRequest(ctx, strings.TrimSpace(requestID))
}

func (s *Service) ListByDonor(ctx context.Context, donorID string) ([]DonorResponse, error) {
	return s.repo.ListByDonor(ctx, strings.TrimSpace(donorID))
}
