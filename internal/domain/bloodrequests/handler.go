package bloodrequests

import (
	"errors"
	"net/http"
	"time"

	"blood-donor-network/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/blood-requests", func(br chi.Router) {
		br.Post("/", createHandler(svc))
		br.Get("/", listHandler(svc))
		br.Get("/active", listActiveHandler(svc))
		br.Get("/{id}", getHandler(svc))
		br.Patch("/{id}", updateHandler(svc))
	})
}

type createBloodRequest struct {
	PatientName   string  `json:"patientName"`
	BloodType     string  `json:"bloodType" enums:"A+,A-,B+,B-,AB+,AB-,O+,O-"`
	UnitsRequired int     `json:"unitsRequired"`
	UrgencyLevel  string  `json:"urgencyLevel" enums:"critical,urgent,routine"`
	Hospital      string  `json:"hospital"`
	ContactPerson string  `json:"contactPerson"`
	ContactPhone  string  `json:"contactPhone"`
	Notes         string  `json:"notes"`
	Latitude      *string `json:"latitude"`
	Longitude     *string `json:"longitude"`
}

type updateBloodRequest struct {
	PatientName   *string `json:"patientName"`
	UnitsRequired *int    `json:"unitsRequired"`
	UrgencyLevel  *string `json:"urgencyLevel"`
	Hospital      *string `json:"hospital"`
	ContactPerson *string `json:"contactPerson"`
	ContactPhone  *string `json:"contactPhone"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
}

type bloodRequestResponse struct {
	ID            string    `json:"id"`
	PatientName   string    `json:"patientName"`
	BloodType     string    `json:"bloodType"`
	UnitsRequired int       `json:"unitsRequired"`
	UrgencyLevel  string    `json:"urgencyLevel"`
	Hospital      string    `json:"hospital"`
	ContactPerson string    `json:"contactPerson"`
	ContactPhone  string    `json:"contactPhone"`
	Notes         string    `json:"notes"`
	Latitude      *string   `json:"latitude"`
	Longitude     *string   `json:"longitude"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// createHandler godoc
// @Summary Difundir solicitud de emergencia
// @Tags blood-requests
// @Accept json
// @Produce json
// @Param payload body createBloodRequest true "Solicitud"
// @Success 201 {object} bloodRequestResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Router /api/blood-requests [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBloodRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Invalid(w, err)
			return
		}

		br, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toResponse(br))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toResponses(items))
	}
}

func listActiveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActive(r.Context())
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		br, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toResponse(br))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateBloodRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Invalid(w, err)
			return
		}

		br, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput(req))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toResponse(br))
	}
}

func writeError(w http.ResponseWriter, svc *Service, err error) {
	switch {
	case httpjson.IsInvalid(err):
		httpjson.Invalid(w, err)
	case errors.Is(err, ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Blood request not found")
	default:
		svc.log.Error("blood request failed", zap.Error(err))
		httpjson.Internal(w)
	}
}

func toResponses(items []BloodRequest) []bloodRequestResponse {
	out := make([]bloodRequestResponse, 0, len(items))
	for _, br := range items {
		out = append(out, toResponse(br))
	}
	return out
}

func toResponse(br BloodRequest) bloodRequestResponse {
	return bloodRequestResponse{
		ID:            br.ID,
		PatientName:   br.PatientName,
		BloodType:     string(br.BloodType),
		UnitsRequired: br.UnitsRequired,
		UrgencyLevel:  string(br.UrgencyLevel),
		Hospital:      br.Hospital,
		ContactPerson: br.ContactPerson,
		ContactPhone:  br.ContactPhone,
		Notes:         br.Notes,
		Latitude:      br.Latitude,
		Longitude:     br.Longitude,
		Status:        br.Status,
		CreatedAt:     br.CreatedAt,
	}
}
