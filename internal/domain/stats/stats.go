package stats

import (
	"context"
	"net/http"

	"blood-donor-network/internal/domain/bloodrequests"
	"blood-donor-network/internal/domain/donors"
	"blood-donor-network/internal/domain/lifesaver"
	"blood-donor-network/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DonorLister interface {
	ListAll(ctx context.Context) ([]donors.Donor, error)
}

type BloodRequestLister interface {
	ListAll(ctx context.Context) ([]bloodrequests.BloodRequest, error)
}

type LifeSaverLister interface {
	List(ctx context.Context, f lifesaver.ListFilter) ([]lifesaver.Request, error)
}

// Stats es el resumen que muestra el dashboard.
type Stats struct {
	TotalDonors              int `json:"totalDonors"`
	VerifiedDonors           int `json:"verifiedDonors"`
	AvailableDonors          int `json:"availableDonors"`
	TotalRequests            int `json:"totalRequests"`
	ActiveRequests           int `json:"activeRequests"`
	CompletedRequests        int `json:"completedRequests"`
	TotalDonations           int `json:"totalDonations"`
	LifeSaverRequests        int `json:"lifeSaverRequests"`
	PendingLifeSaverRequests int `json:"pendingLifeSaverRequests"`
	ReassignedRequests       int `json:"reassignedRequests"`
}

type Service struct {
	donors    DonorLister
	requests  BloodRequestLister
	lifesaver LifeSaverLister
	log       *zap.Logger
}

func NewService(d DonorLister, r BloodRequestLister, l LifeSaverLister, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{donors: d, requests: r, lifesaver: l, log: log.Named("stats")}
}

func (s *Service) Compute(ctx context.Context) (Stats, error) {
	ds, err := s.donors.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	brs, err := s.requests.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	lrs, err := s.lifesaver.List(ctx, lifesaver.ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	st.TotalDonors = len(ds)
	for _, d := range ds {
		if d.IsVerified {
			st.VerifiedDonors++
		}
		if d.Eligible() {
			st.AvailableDonors++
		}
		st.TotalDonations += d.TotalDonations
	}

	st.TotalRequests = len(brs)
	for _, br := range brs {
		switch br.Status {
		case bloodrequests.StatusActive:
			st.ActiveRequests++
		case bloodrequests.StatusCompleted:
			st.CompletedRequests++
		}
	}

	st.LifeSaverRequests = len(lrs)
	for _, lr := range lrs {
		if lr.Status == lifesaver.StatusPending {
			st.PendingLifeSaverRequests++
		}
		if lr.PreviousRequestID != "" {
			st.ReassignedRequests++
		}
	}
	return st, nil
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Compute(r.Context())
		if err != nil {
			svc.log.Error("stats failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.Write(w, http.StatusOK, st)
	})
}
