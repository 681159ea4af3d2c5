package bloodrequests

import (
	"context"
	"strings"
	"time"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/platform/metrics"
	"blood-donor-network/internal/platform/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Broadcaster difunde una solicitud recién creada (p.ej. pub/sub).
type Broadcaster interface {
	BloodRequestCreated(ctx context.Context, r BloodRequest) error
}

type Service struct {
	repo        Repository
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	log         *zap.Logger
	now         func() time.Time
}

func NewService(repo Repository, b Broadcaster, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		broadcaster: b,
		metrics:     m,
		log:         log.Named("bloodrequests"),
		now:         time.Now,
	}
}

type CreateInput struct {
	PatientName   string
	BloodType     string
	UnitsRequired int
	UrgencyLevel  string
	Hospital      string
	ContactPerson string
	ContactPhone  string
	Notes         string
	Latitude      *string
	Longitude     *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (BloodRequest, error) {
	var ve validation.Errors
	ve.Required("patientName", in.PatientName)
	ve.Required("hospital", in.Hospital)
	ve.Required("contactPerson", in.ContactPerson)
	ve.Required("contactPhone", in.ContactPhone)
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
		return BloodRequest{}, err
	}

	br := BloodRequest{
		ID:            uuid.NewString(),
		PatientName:   strings.TrimSpace(in.PatientName),
		BloodType:     bt,
		UnitsRequired: in.UnitsRequired,
		UrgencyLevel:  urgency,
		Hospital:      strings.TrimSpace(in.Hospital),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		ContactPhone:  strings.TrimSpace(in.ContactPhone),
		Notes:         strings.TrimSpace(in.Notes),
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Status:        StatusActive,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, br); err != nil {
		return BloodRequest{}, err
	}
	s.metrics.EntityCreated("blood_request")
	s.log.Info("blood request broadcast",
		zap.String("request_id", br.ID),
		zap.String("blood_type", string(br.BloodType)),
		zap.String("urgency", string(br.UrgencyLevel)),
	)

	if s.broadcaster != nil {
		if err := s.broadcaster.BloodRequestCreated(ctx, br); err != nil {
			// best-effort: la solicitud ya quedó persistida
			s.log.Warn("blood request broadcast failed", zap.String("request_id", br.ID), zap.Error(err))
		}
	}
	return br, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (BloodRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return BloodRequest{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]BloodRequest, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]BloodRequest, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BloodRequest, 0, len(all))
	for _, r := range all {
		if r.Status == StatusActive {
			out = append(out, r)
		}
	}
	return out, nil
}

type UpdateInput struct {
	PatientName   *string
	UnitsRequired *int
	UrgencyLevel  *string
	Hospital      *string
	ContactPerson *string
	ContactPhone  *string
	Notes         *string
	Status        *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (BloodRequest, error) {
	br, err := s.GetByID(ctx, id)
	if err != nil {
		return BloodRequest{}, err
	}

	var ve validation.Errors
	if in.PatientName != nil {
		ve.Required("patientName", *in.PatientName)
		br.PatientName = strings.TrimSpace(*in.PatientName)
	}
	if in.UnitsRequired != nil {
		if *in.UnitsRequired < 1 {
			ve.Add("unitsRequired", "must be >= 1")
		}
		br.UnitsRequired = *in.UnitsRequired
	}
	if in.UrgencyLevel != nil {
		u, ok := blood.ParseUrgency(*in.UrgencyLevel)
		if !ok {
			ve.Add("urgencyLevel", "must be critical, urgent or routine")
		}
		br.UrgencyLevel = u
	}
	if in.Hospital != nil {
		ve.Required("hospital", *in.Hospital)
		br.Hospital = strings.TrimSpace(*in.Hospital)
	}
	if in.ContactPerson != nil {
		br.ContactPerson = strings.TrimSpace(*in.ContactPerson)
	}
	if in.ContactPhone != nil {
		br.ContactPhone = strings.TrimSpace(*in.ContactPhone)
	}
	if in.Notes != nil {
		br.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Status != nil {
		st, ok := ParseStatus(strings.TrimSpace(*in.Status))
		if !ok {
			ve.Add("status", "must be active, fulfilled, completed or cancelled")
		}
		br.Status = st
	}
	if err := ve.Err(); err != nil {
		return BloodRequest{}, err
	}

	if err := s.repo.Update(ctx, br); err != nil {
		return BloodRequest{}, err
	}
	return br, nil
}
