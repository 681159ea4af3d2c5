package lifesaver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"blood-donor-network/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/life-saver-requests", func(lr chi.Router) {
		lr.Post("/", createRequestHandler(svc))
		lr.Get("/", listRequestsHandler(svc))
		lr.Get("/{id}", getRequestHandler(svc))
		lr.Patch("/{id}", updateRequestHandler(svc))
	})
}

type createRequest struct {
	RequesterName   string `json:"requesterName"`
	RequesterEmail  string `json:"requesterEmail"`
	RequesterPhone  string `json:"requesterPhone"`
	SelectedDonorID string `json:"selectedDonorId"`
	BloodType       string `json:"bloodType" enums:"A+,A-,B+,B-,AB+,AB-,O+,O-"`
	UnitsRequired   int    `json:"unitsRequired"`
	UrgencyLevel    string `json:"urgencyLevel" enums:"critical,urgent,routine"`
	Hospital        string `json:"hospital"`
	RequestReason   string `json:"requestReason"`
	Notes           string `json:"notes"`
}

// updateRequest acepta el cuerpo completo que devuelve el GET: los campos
// de servidor se ignoran y donante/grupo solo pueden repetir su valor.
type updateRequest struct {
	RequesterName   *string `json:"requesterName"`
	RequesterEmail  *string `json:"requesterEmail"`
	RequesterPhone  *string `json:"requesterPhone"`
	SelectedDonorID *string `json:"selectedDonorId"`
	BloodType       *string `json:"bloodType"`
	UnitsRequired   *int    `json:"unitsRequired"`
	UrgencyLevel    *string `json:"urgencyLevel"`
	Hospital        *string `json:"hospital"`
	RequestReason   *string `json:"requestReason"`
	Notes           *string `json:"notes"`
	Status          *string `json:"status" enums:"pending,contacted,accepted,declined,completed,cancelled"`

	ID                json.RawMessage `json:"id" swaggerignore:"true"`
	PreviousRequestID json.RawMessage `json:"previousRequestId" swaggerignore:"true"`
	TriedDonorIDs     json.RawMessage `json:"triedDonorIds" swaggerignore:"true"`
	CreatedAt         json.RawMessage `json:"createdAt" swaggerignore:"true"`
	UpdatedAt         json.RawMessage `json:"updatedAt" swaggerignore:"true"`
}

func (u updateRequest) input() UpdateInput {
	return UpdateInput{
		RequesterName:   u.RequesterName,
		RequesterEmail:  u.RequesterEmail,
		RequesterPhone:  u.RequesterPhone,
		SelectedDonorID: u.SelectedDonorID,
		BloodType:       u.BloodType,
		UnitsRequired:   u.UnitsRequired,
		UrgencyLevel:    u.UrgencyLevel,
		Hospital:        u.Hospital,
		RequestReason:   u.RequestReason,
		Notes:           u.Notes,
		Status:          u.Status,
	}
}

type requestResponse struct {
	ID                string    `json:"id"`
	RequesterName     string    `json:"requesterName"`
	RequesterEmail    string    `json:"requesterEmail"`
	RequesterPhone    string    `json:"requesterPhone"`
	SelectedDonorID   string    `json:"selectedDonorId"`
	BloodType         string    `json:"bloodType"`
	UnitsRequired     int       `json:"unitsRequired"`
	UrgencyLevel      string    `json:"urgencyLevel"`
	Hospital          string    `json:"hospital"`
	RequestReason     string    `json:"requestReason"`
	Notes             string    `json:"notes"`
	Status            Status    `json:"status"`
	PreviousRequestID string    `json:"previousRequestId,omitempty"`
	TriedDonorIDs     []string  `json:"triedDonorIds"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// updateResponse hace explícito el efecto del decline: reassigned es null
// cuando no se creó una solicitud de seguimiento.
type updateResponse struct {
	Request    requestResponse  `json:"request"`
	Reassigned *requestResponse `json:"reassigned"`
}

func createRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Invalid(w, err)
			return
		}

		lr, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toRequestResponse(lr))
	}
}

func listRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// status=pending,contacted (CSV opcional) y donorId opcional
		filter := ListFilter{
			Statuses: parseStatusFilter(r.URL.Query().Get("status")),
			DonorID:  strings.TrimSpace(r.URL.Query().Get("donorId")),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, svc, err)
			return
		}

		out := make([]requestResponse, 0, len(items))
		for _, lr := range items {
			out = append(out, toRequestResponse(lr))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lr, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toRequestResponse(lr))
	}
}

// updateRequestHandler godoc
// @Summary Actualizar solicitud life saver
// @Description Aplica un PATCH. Si el estado pasa a declined, se elige automáticamente el siguiente donante elegible (mismo grupo, disponible, verificado, no intentado antes) por rating*10 + donaciones y se crea una solicitud nueva en pending. La respuesta incluye esa solicitud en `reassigned` (null si no hubo candidato).
// @Tags life-saver-requests
// @Accept json
// @Produce json
// @Param id path string true "ID de la solicitud"
// @Param payload body updateRequest true "Campos a modificar"
// @Success 200 {object} updateResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 404 {object} httpjson.ErrorBody
// @Failure 409 {object} httpjson.ErrorBody "transición de estado inválida"
// @Failure 500 {object} httpjson.ErrorBody
// @Router /api/life-saver-requests/{id} [patch]
func updateRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Invalid(w, err)
			return
		}

		res, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req.input())
		if err != nil {
			writeError(w, svc, err)
			return
		}

		out := updateResponse{Request: toRequestResponse(res.Request)}
		if res.Reassigned != nil {
			fu := toRequestResponse(*res.Reassigned)
			out.Reassigned = &fu
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, svc *Service, err error) {
	switch {
	case httpjson.IsInvalid(err):
		httpjson.Invalid(w, err)
	case errors.Is(err, ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Life saver request not found")
	case errors.Is(err, ErrBadState):
		httpjson.Message(w, http.StatusConflict, err.Error())
	default:
		svc.log.Error("life saver request failed", zap.Error(err))
		httpjson.Internal(w)
	}
}

func parseStatusFilter(raw string) map[Status]struct{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := map[Status]struct{}{}
	for _, p := range strings.Split(raw, ",") {
		if st, ok := ParseStatus(strings.TrimSpace(p)); ok {
			out[st] = struct{}{}
		}
	}
	return out
}

func toRequestResponse(r Request) requestResponse {
	tried := r.TriedDonorIDs
	if tried == nil {
		tried = []string{}
	}
	return requestResponse{
		ID:                r.ID,
		RequesterName:     r.RequesterName,
		RequesterEmail:    r.RequesterEmail,
		RequesterPhone:    r.RequesterPhone,
		SelectedDonorID:   r.SelectedDonorID,
		BloodType:         string(r.BloodType),
		UnitsRequired:     r.UnitsRequired,
		UrgencyLevel:      string(r.UrgencyLevel),
		Hospital:          r.Hospital,
		RequestReason:     r.RequestReason,
		Notes:             r.Notes,
		Status:            r.Status,
		PreviousRequestID: r.PreviousRequestID,
		TriedDonorIDs:     tried,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
