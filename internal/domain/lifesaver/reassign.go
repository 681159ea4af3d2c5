package lifesaver

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"blood-donor-network/internal/domain/donors"
	"blood-donor-network/internal/platform/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier recibe las reasignaciones creadas. Sus errores se loguean y no
// afectan la reasignación.
type Notifier interface {
	Reassigned(ctx context.Context, declined, followUp Request) error
}

// Engine elige el siguiente donante cuando una solicitud pasa a declined.
type Engine struct {
	donors   donors.Lister
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
	newID    func() string

	// maxChain limita cuántas reasignaciones puede acumular un incidente (0 = sin límite).
	maxChain int
}

func NewEngine(dl donors.Lister, opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		donors:   dl,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		log:      log.Named("reassign"),
		now:      time.Now,
		newID:    uuid.NewString,
		maxChain: opts.MaxReassignments,
	}
}

// Score es rating*10 + totalDonations. Un rating vacío o no numérico vale 0.
func Score(d donors.Donor) float64 {
	rating, err := strconv.ParseFloat(strings.TrimSpace(d.Rating), 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		rating = 0
	}
	return rating*10 + float64(d.TotalDonations)
}

// Candidates filtra los donantes elegibles para reemplazar al de declined,
// preservando el orden de entrada.
func Candidates(all []donors.Donor, declined Request) []donors.Donor {
	excluded := declined.excluded()

	out := make([]donors.Donor, 0)
	for _, d := range all {
		if d.BloodType != declined.BloodType || !d.Eligible() {
			continue
		}
		if _, ok := excluded[d.ID]; ok {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Pick devuelve el candidato con score estrictamente mayor; en empate gana
// el primero en el orden recibido.
func Pick(candidates []donors.Donor) (donors.Donor, bool) {
	if len(candidates) == 0 {
		return donors.Donor{}, false
	}
	best := candidates[0]
	bestScore := Score(best)
	for _, d := range candidates[1:] {
		if s := Score(d); s > bestScore {
			best, bestScore = d, s
		}
	}
	return best, true
}

// Plan arma la solicitud de seguimiento para declined sin persistirla.
// Devuelve nil sin error cuando no hay candidato o la cadena llegó al límite.
// declined no se modifica.
func (e *Engine) Plan(ctx context.Context, declined Request) (*Request, error) {
	log := e.scoped(declined)

	if e.maxChain > 0 && len(declined.TriedDonorIDs) >= e.maxChain {
		log.Warn("reassignment chain limit reached", zap.Int("tried", len(declined.TriedDonorIDs)))
		e.metrics.Reassignment(metrics.OutcomeChainLimit)
		return nil, nil
	}

	all, err := e.donors.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	next, ok := Pick(Candidates(all, declined))
	if !ok {
		log.Info("no eligible donor for reassignment")
		e.metrics.Reassignment(metrics.OutcomeNoCandidate)
		return nil, nil
	}

	followUp := e.followUp(declined, next.ID)
	log.Debug("reassignment planned",
		zap.String("follow_up_id", followUp.ID),
		zap.String("donor_id", next.ID),
		zap.Float64("score", Score(next)),
	)
	return &followUp, nil
}

// Committed se llama una vez persistidos declined y followUp.
func (e *Engine) Committed(ctx context.Context, declined, followUp Request) {
	log := e.scoped(declined)
	log.Info("request reassigned",
		zap.String("follow_up_id", followUp.ID),
		zap.String("donor_id", followUp.SelectedDonorID),
	)
	e.metrics.Reassignment(metrics.OutcomeAssigned)

	if e.notifier != nil {
		if err := e.notifier.Reassigned(ctx, declined, followUp); err != nil {
			log.Warn("reassignment notification failed", zap.Error(err))
		}
	}
}

func (e *Engine) scoped(declined Request) *zap.Logger {
	return e.log.With(
		zap.String("request_id", declined.ID),
		zap.String("declined_donor_id", declined.SelectedDonorID),
		zap.String("blood_type", string(declined.BloodType)),
	)
}

// followUp copia declined salvo identidad, donante, estado, timestamps,
// notas y auditoría de la cadena.
func (e *Engine) followUp(declined Request, donorID string) Request {
	now := e.now()

	tried := make([]string, 0, len(declined.TriedDonorIDs)+1)
	tried = append(tried, declined.TriedDonorIDs...)
	tried = append(tried, declined.SelectedDonorID)

	out := declined
	out.ID = e.newID()
	out.SelectedDonorID = donorID
	out.Status = StatusPending
	out.CreatedAt = now
	out.UpdatedAt = now
	out.Notes = declined.Notes + AutoAssignedNote
	out.PreviousRequestID = declined.ID
	out.TriedDonorIDs = tried
	return out
}
