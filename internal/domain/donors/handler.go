package donors

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"blood-donor-network/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/donors", func(dr chi.Router) {
		dr.Post("/", createDonorHandler(svc))
		dr.Get("/", listDonorsHandler(svc))

		// Ruta estática antes que /{id}: chi prioriza segmentos fijos.
		dr.Get("/search/{bloodType}", searchDonorsHandler(svc))

		dr.Get("/{id}", getDonorHandler(svc))
		dr.Patch("/{id}", updateDonorHandler(svc))
		dr.Post("/{id}/verify", verifyDonorHandler(svc))
	})
}

type createDonorRequest struct {
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	BloodType   string  `json:"bloodType" enums:"A+,A-,B+,B-,AB+,AB-,O+,O-"`
	DateOfBirth string  `json:"dateOfBirth"` // YYYY-MM-DD
	Gender      string  `json:"gender"`
	Weight      int     `json:"weight"`
	Address     string  `json:"address"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
}

type updateDonorRequest struct {
	FullName       *string `json:"fullName"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	BloodType      *string `json:"bloodType"`
	Gender         *string `json:"gender"`
	Weight         *int    `json:"weight"`
	Address        *string `json:"address"`
	Latitude       *string `json:"latitude"`
	Longitude      *string `json:"longitude"`
	IsAvailable    *bool   `json:"isAvailable"`
	IsVerified     *bool   `json:"isVerified"`
	TotalDonations *int    `json:"totalDonations"`
	Rating         *string `json:"rating"`
	LastDonation   *string `json:"lastDonation"`
}

// donorResponse es el donante tal como lo devuelve la API.
type donorResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	BloodType      string    `json:"bloodType"`
	DateOfBirth    string    `json:"dateOfBirth"`
	Gender         string    `json:"gender"`
	Weight         int       `json:"weight"`
	Address        string    `json:"address"`
	Latitude       *string   `json:"latitude"`
	Longitude      *string   `json:"longitude"`
	IsAvailable    bool      `json:"isAvailable"`
	IsVerified     bool      `json:"isVerified"`
	TotalDonations int       `json:"totalDonations"`
	Rating         string    `json:"rating"`
	LastDonation   *string   `json:"lastDonation"`
	CreatedAt      time.Time `json:"createdAt"`
}

// createDonorHandler godoc
// @Summary Registrar donante
// @Description Registra un donante. Arranca disponible, sin verificar, con 0 donaciones y rating "0".
// @Tags donors
// @Accept json
// @Produce json
// @Param payload body createDonorRequest true "Datos del donante"
// @Success 201 {object} donorResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 500 {object} httpjson.ErrorBody
// @Router /api/donors [post]
func createDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDonorRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Invalid(w, err)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			FullName:    req.FullName,
			Email:       req.Email,
			Phone:       req.Phone,
			BloodType:   req.BloodType,
			DateOfBirth: req.DateOfBirth,
			Gender:      req.Gender,
			Weight:      req.Weight,
			Address:     req.Address,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
		})
		if err != nil {
			writeError(w, svc, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toDonorResponse(d))
	}
}

func listDonorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonorResponses(items))
	}
}

func getDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonorResponse(d))
	}
}

func updateDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDonorRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Invalid(w, err)
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput(req))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonorResponse(d))
	}
}

func verifyDonorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Verify(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonorResponse(d))
	}
}

// searchDonorsHandler godoc
// @Summary Buscar donantes elegibles
// @Description Donantes del grupo indicado que están disponibles y verificados. lat/lng/distance se aceptan pero no filtran (no hay cálculo de distancia).
// @Tags donors
// @Produce json
// @Param bloodType path string true "Grupo sanguíneo (URL-encoded, ej. O%2B)"
// @Param lat query string false "Latitud (ignorada)"
// @Param lng query string false "Longitud (ignorada)"
// @Param distance query int false "Distancia máxima en km (ignorada)"
// @Success 200 {array} donorResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Router /api/donors/search/{bloodType} [get]
func searchDonorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "bloodType")
		if v, err := url.PathUnescape(raw); err == nil {
			raw = v
		}

		q := SearchQuery{
			BloodType: raw,
			Latitude:  r.URL.Query().Get("lat"),
			Longitude: r.URL.Query().Get("lng"),
		}
		if v := r.URL.Query().Get("distance"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				q.MaxDistance = n
			}
		}

		items, err := svc.Search(r.Context(), q)
		if err != nil {
			writeError(w, svc, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonorResponses(items))
	}
}

func writeError(w http.ResponseWriter, svc *Service, err error) {
	switch {
	case httpjson.IsInvalid(err):
		httpjson.Invalid(w, err)
	case errors.Is(err, ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Donor not found")
	default:
		svc.log.Error("donor request failed", zap.Error(err))
		httpjson.Internal(w)
	}
}

func toDonorResponses(items []Donor) []donorResponse {
	out := make([]donorResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDonorResponse(d))
	}
	return out
}

func toDonorResponse(d Donor) donorResponse {
	return donorResponse{
		ID:             d.ID,
		FullName:       d.FullName,
		Email:          d.Email,
		Phone:          d.Phone,
		BloodType:      string(d.BloodType),
		DateOfBirth:    d.DateOfBirth,
		Gender:         d.Gender,
		Weight:         d.Weight,
		Address:        d.Address,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		IsAvailable:    d.IsAvailable,
		IsVerified:     d.IsVerified,
		TotalDonations: d.TotalDonations,
		Rating:         d.Rating,
		LastDonation:   d.LastDonation,
		CreatedAt:      d.CreatedAt,
	}
}
