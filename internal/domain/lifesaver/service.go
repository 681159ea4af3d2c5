package lifesaver

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/domain/donors"
	"blood-donor-network/internal/platform/metrics"
	"blood-donor-network/internal/platform/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBadState = errors.New("invalid status transition")

// DonorDirectory es lo que el módulo necesita de donantes: lookup para validar
// la creación y listado completo para reasignar.
type DonorDirectory interface {
	GetByID(ctx context.Context, id string) (donors.Donor, error)
	ListAll(ctx context.Context) ([]donors.Donor, error)
}

type Options struct {
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Notifier Notifier

	// MaxReassignments corta la cadena de reasignaciones de un incidente (0 = sin límite).
	MaxReassignments int
}

type Service struct {
	repo    Repository
	donors  DonorDirectory
	engine  *Engine
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time

	// mu serializa update+reasignación: dos declines simultáneos no pueden
	// elegir al mismo donante con una vista vieja del store.
	mu sync.Mutex
}

func NewService(repo Repository, dir DonorDirectory, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		donors:  dir,
		engine:  NewEngine(dir, opts),
		metrics: opts.Metrics,
		log:     log.Named("lifesaver"),
		now:     time.Now,
	}
}

type CreateInput struct {
	RequesterName   string
	RequesterEmail  string
	RequesterPhone  string
	SelectedDonorID string
	BloodType       string
	UnitsRequired   int
	UrgencyLevel    string
	Hospital        string
	RequestReason   string
	Notes           string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Request, error) {
	var ve validation.Errors
	ve.Required("requesterName", in.RequesterName)
	ve.Required("requesterPhone", in.RequesterPhone)
	ve.Required("selectedDonorId", in.SelectedDonorID)
	ve.Required("hospital", in.Hospital)
	ve.Required("requestReason", in.RequestReason)
	if _, err := mail.ParseAddress(strings.TrimSpace(in.RequesterEmail)); err != nil {
		ve.Add("requesterEmail", "must be a valid email")
	}
	bt, ok := blood.ParseType(in.BloodType)
	if !ok {
		ve.Add("bloodType", "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	urgency, ok := blood.ParseUrgency(in.UrgencyLevel)
	if !ok {
		ve.Add("urgencyLevel", "must be critical, urgent or routine")
	}
	if in.UnitsRequired < 1 {
		ve.Add("unitsRequired", "must be >= 1")
	}
	if err := ve.Err(); err != nil {
		return Request{}, err
	}

	donorID := strings.TrimSpace(in.SelectedDonorID)
	d, err := s.donors.GetByID(ctx, donorID)
	switch {
	case errors.Is(err, donors.ErrNotFound):
		ve.Add("selectedDonorId", "donor not found")
		return Request{}, ve
	case err != nil:
		return Request{}, err
	case d.BloodType != bt:
		ve.Add("bloodType", "does not match the selected donor")
		return Request{}, ve
	}

	now := s.now()
	req := Request{
		ID:              uuid.NewString(),
		RequesterName:   strings.TrimSpace(in.RequesterName),
		RequesterEmail:  strings.TrimSpace(in.RequesterEmail),
		RequesterPhone:  strings.TrimSpace(in.RequesterPhone),
		SelectedDonorID: donorID,
		BloodType:       bt,
		UnitsRequired:   in.UnitsRequired,
		UrgencyLevel:    urgency,
		Hospital:        strings.TrimSpace(in.Hospital),
		RequestReason:   strings.TrimSpace(in.RequestReason),
		Notes:           in.Notes,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return Request{}, err
	}
	s.metrics.EntityCreated("life_saver_request")
	s.log.Info("life saver request created",
		zap.String("request_id", req.ID),
		zap.String("donor_id", req.SelectedDonorID),
		zap.String("urgency", string(req.UrgencyLevel)),
	)
	return req, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Request{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ListFilter struct {
	Statuses map[Status]struct{}
	DonorID  string
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Request, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(f.Statuses) == 0 && f.DonorID == "" {
		return items, nil
	}

	out := make([]Request, 0, len(items))
	for _, r := range items {
		if len(f.Statuses) > 0 {
			if _, ok := f.Statuses[r.Status]; !ok {
				continue
			}
		}
		if f.DonorID != "" && r.SelectedDonorID != f.DonorID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// UpdateInput: nil = no tocar. Donante y grupo no se editan; una solicitud
// para otro donante es una solicitud nueva. Si vienen, deben coincidir con
// el valor guardado.
type UpdateInput struct {
	RequesterName   *string
	RequesterEmail  *string
	RequesterPhone  *string
	SelectedDonorID *string
	BloodType       *string
	UnitsRequired   *int
	UrgencyLevel    *string
	Hospital        *string
	RequestReason   *string
	Notes           *string
	Status          *string
}

// UpdateResult lleva la solicitud actualizada y, si el update la pasó a
// declined y hubo candidato, la solicitud de seguimiento creada.
type UpdateResult struct {
	Request    Request
	Reassigned *Request
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return UpdateResult{}, err
	}

	next, err := merge(current, in)
	if err != nil {
		return UpdateResult{}, err
	}
	if !CanTransition(current.Status, next.Status) {
		return UpdateResult{}, fmt.Errorf("%w: %s -> %s", ErrBadState, current.Status, next.Status)
	}
	next.UpdatedAt = s.now()

	// Solo la transición hacia declined dispara la reasignación; un decline
	// repetido sobre una solicitud ya declined no crea otra.
	if next.Status != StatusDeclined || current.Status == StatusDeclined {
		if err := s.repo.Update(ctx, next); err != nil {
			return UpdateResult{}, err
		}
		return UpdateResult{Request: next}, nil
	}

	followUp, err := s.engine.Plan(ctx, next)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("reassign %s: %w", next.ID, err)
	}
	// declined y seguimiento se guardan juntos: si falla, la solicitud sigue
	// en su estado anterior y el decline puede reintentarse.
	if err := s.repo.Decline(ctx, next, followUp); err != nil {
		return UpdateResult{}, fmt.Errorf("reassign %s: %w", next.ID, err)
	}
	if followUp != nil {
		s.engine.Committed(ctx, next, *followUp)
	}
	return UpdateResult{Request: next, Reassigned: followUp}, nil
}

func merge(r Request, in UpdateInput) (Request, error) {
	var ve validation.Errors
	if in.RequesterName != nil {
		ve.Required("requesterName", *in.RequesterName)
		r.RequesterName = strings.TrimSpace(*in.RequesterName)
	}
	if in.RequesterEmail != nil {
		if _, err := mail.ParseAddress(strings.TrimSpace(*in.RequesterEmail)); err != nil {
			ve.Add("requesterEmail", "must be a valid email")
		}
		r.RequesterEmail = strings.TrimSpace(*in.RequesterEmail)
	}
	if in.RequesterPhone != nil {
		ve.Required("requesterPhone", *in.RequesterPhone)
		r.RequesterPhone = strings.TrimSpace(*in.RequesterPhone)
	}
	if in.SelectedDonorID != nil && strings.TrimSpace(*in.SelectedDonorID) != r.SelectedDonorID {
		ve.Add("selectedDonorId", "immutable")
	}
	if in.BloodType != nil && strings.TrimSpace(*in.BloodType) != string(r.BloodType) {
		ve.Add("bloodType", "immutable")
	}
	if in.UnitsRequired != nil {
		if *in.UnitsRequired < 1 {
			ve.Add("unitsRequired", "must be >= 1")
		}
		r.UnitsRequired = *in.UnitsRequired
	}
	if in.UrgencyLevel != nil {
		u, ok := blood.ParseUrgency(*in.UrgencyLevel)
		if !ok {
			ve.Add("urgencyLevel", "must be critical, urgent or routine")
		}
		r.UrgencyLevel = u
	}
	if in.Hospital != nil {
		ve.Required("hospital", *in.Hospital)
		r.Hospital = strings.TrimSpace(*in.Hospital)
	}
	if in.RequestReason != nil {
		ve.Required("requestReason", *in.RequestReason)
		r.RequestReason = strings.TrimSpace(*in.RequestReason)
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	if in.Status != nil {
		st, ok := ParseStatus(strings.TrimSpace(*in.Status))
		if !ok {
			ve.Add("status", "unknown status")
		}
		r.Status = st
	}
	if err := ve.Err(); err != nil {
		return Request{}, err
	}
	return r, nil
}
