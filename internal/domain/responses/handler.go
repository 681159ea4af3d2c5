package responses

import (
	"net/http"
	"time"

	"blood-donor-network/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/donor-responses", func(rr chi.Router) {
		rr.Post("/", createResponseHandler(svc))
		rr.Get("/request/{requestId}", listByRequestHandler(svc))
		rr.Get("/donor/{donorId}", listByDonorHandler(svc))
	})
}

type createResponseRequest struct {
	RequestID string `json:"requestId"`
	DonorID   string `json:"donorId"`
	Status    string `json:"status" enums:"responded,pending,accepted,declined"`
}

type donorResponseResponse struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"requestId"`
	DonorID      string    `json:"donorId"`
	Status       Status    `json:"status"`
	ResponseTime time.Time `json:"responseTime"`
}

func createResponseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createResponseRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Invalid(w, err)
			return
		}

		resp, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toResponse(resp))
	}
}

func listByRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByRequest(r.Context(), chi.URLParam(r, "requestId"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toResponses(items))
	}
}

func listByDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByDonor(r.Context(), chi.URLParam(r, "donorId"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toResponses(items))
	}
}

func writeError(w http.ResponseWriter, svc *Service, err error) {
	if httpjson.IsInvalid(err) {
		httpjson.Invalid(w, err)
		return
	}
	svc.log.Error("donor response request failed", zap.Error(err))
	httpjson.Internal(w)
}

func toResponses(items []DonorResponse) []donorResponseResponse {
	out := make([]donorResponseResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toResponse(d))
	}
	return out
}

func toResponse(d DonorResponse) donorResponseResponse {
	return donorResponseResponse{
		ID:           d.ID,
		RequestID:    d.RequestID,
		DonorID:      d.DonorID,
		Status:       d.Status,
		ResponseTime: d.ResponseTime,
	}
}
