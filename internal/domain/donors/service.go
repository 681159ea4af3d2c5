package donors

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/platform/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log.Named("donors"),
		now:  time.Now,
	}
}

type CreateInput struct {
	FullName    string
	Email       string
	Phone       string
	BloodType   string
	DateOfBirth string
	Gender      string
	Weight      int
	Address     string
	Latitude    *string
	Longitude   *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Donor, error) {
	var ve validation.Errors
	ve.Required("fullName", in.FullName)
	ve.Required("phone", in.Phone)
	ve.Required("gender", in.Gender)
	ve.Required("address", in.Address)
	validateEmail(&ve, in.Email)
	bt := validateBloodType(&ve, in.BloodType)
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(in.DateOfBirth)); err != nil {
		ve.Add("dateOfBirth", "must be YYYY-MM-DD")
	}
	if in.Weight <= 0 {
		ve.Add("weight", "must be positive")
	}
	if err := ve.Err(); err != nil {
		return Donor{}, err
	}

	email := normalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return Donor{}, err
	}

	d := Donor{
		ID:             uuid.NewString(),
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		BloodType:      bt,
		DateOfBirth:    strings.TrimSpace(in.DateOfBirth),
		Gender:         strings.TrimSpace(in.Gender),
		Weight:         in.Weight,
		Address:        strings.TrimSpace(in.Address),
		Latitude:       trimOptional(in.Latitude),
		Longitude:      trimOptional(in.Longitude),
		IsAvailable:    true,
		IsVerified:     false,
		TotalDonations: 0,
		Rating:         "0",
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Donor{}, err
	}
	s.log.Info("donor registered", zap.String("donor_id", d.ID), zap.String("blood_type", string(d.BloodType)))
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Donor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Donor{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Donor, error) {
	return s.repo.ListAll(ctx)
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	FullName       *string
	Email          *string
	Phone          *string
	BloodType      *string
	Gender         *string
	Weight         *int
	Address        *string
	Latitude       *string
	Longitude      *string
	IsAvailable    *bool
	IsVerified     *bool
	TotalDonations *int
	Rating         *string
	LastDonation   *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Donor, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Donor{}, err
	}

	var ve validation.Errors
	if in.FullName != nil {
		ve.Required("fullName", *in.FullName)
		d.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		validateEmail(&ve, *in.Email)
		d.Email = normalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		ve.Required("phone", *in.Phone)
		d.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.BloodType != nil {
		d.BloodType = validateBloodType(&ve, *in.BloodType)
	}
	if in.Gender != nil {
		d.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			ve.Add("weight", "must be positive")
		}
		d.Weight = *in.Weight
	}
	if in.Address != nil {
		d.Address = strings.TrimSpace(*in.Address)
	}
	if in.Latitude != nil {
		d.Latitude = trimOptional(in.Latitude)
	}
	if in.Longitude != nil {
		d.Longitude = trimOptional(in.Longitude)
	}
	if in.IsAvailable != nil {
		d.IsAvailable = *in.IsAvailable
	}
	if in.IsVerified != nil {
		d.IsVerified = *in.IsVerified
	}
	if in.TotalDonations != nil {
		if *in.TotalDonations < 0 {
			ve.Add("totalDonations", "must be >= 0")
		}
		d.TotalDonations = *in.TotalDonations
	}
	if in.Rating != nil {
		r := strings.TrimSpace(*in.Rating)
		v, err := strconv.ParseFloat(r, 64)
		if err != nil || v < 0 || v > 5 {
			ve.Add("rating", "must be a decimal between 0 and 5")
		}
		d.Rating = r
	}
	if in.LastDonation != nil {
		d.LastDonation = trimOptional(in.LastDonation)
	}
	if err := ve.Err(); err != nil {
		return Donor{}, err
	}

	if in.Email != nil {
		if err := s.ensureEmailFree(ctx, d.Email, d.ID); err != nil {
			return Donor{}, err
		}
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return Donor{}, err
	}
	return d, nil
}

// Verify es la acción de admin que habilita al donante para búsquedas.
func (s *Service) Verify(ctx context.Context, id string) (Donor, error) {
	verified := true
	d, err := s.Update(ctx, id, UpdateInput{IsVerified: &verified})
	if err != nil {
		return Donor{}, err
	}
	s.log.Info("donor verified", zap.String("donor_id", d.ID))
	return d, nil
}

// SearchQuery acepta coordenadas y distancia, pero hoy no se aplican:
// no hay cálculo geográfico real, solo filtro por grupo y elegibilidad.
type SearchQuery struct {
	BloodType   string
	Latitude    string
	Longitude   string
	MaxDistance int
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Donor, error) {
	bt, ok := blood.ParseType(q.BloodType)
	if !ok {
		var ve validation.Errors
		ve.Add("bloodType", "unknown blood type")
		return nil, ve
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Donor, 0)
	for _, d := range all {
		if d.BloodType == bt && d.Eligible() {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		var ve validation.Errors
		ve.Add("email", "already registered")
		return ve
	case err == nil, errors.Is(err, ErrNotFound):
		return nil
	default:
		return err
	}
}

func validateEmail(ve *validation.Errors, email string) {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		ve.Add("email", "must be a valid email")
	}
}

func validateBloodType(ve *validation.Errors, raw string) blood.Type {
	bt, ok := blood.ParseType(raw)
	if !ok {
		ve.Add("bloodType", "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	return bt
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
