// Package redisbus publica eventos de dominio en canales pub/sub de Redis.
// Es best-effort: los servicios loguean el error y siguen.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blood-donor-network/internal/domain/bloodrequests"
	"blood-donor-network/internal/domain/lifesaver"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelReassigned          = "lifesaver.reassigned"
	ChannelBloodRequestCreated = "bloodrequest.created"
)

// Publisher es el subconjunto de *redis.Client que usamos.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type Bus struct {
	pub     Publisher
	timeout time.Duration
}

func New(pub Publisher) *Bus {
	return &Bus{pub: pub, timeout: 2 * time.Second}
}

// NewClient arma el cliente con la misma forma que el resto de los servicios.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

type ReassignedEvent struct {
	DeclinedRequestID string    `json:"declinedRequestId"`
	DeclinedDonorID   string    `json:"declinedDonorId"`
	FollowUpID        string    `json:"followUpId"`
	DonorID           string    `json:"donorId"`
	BloodType         string    `json:"bloodType"`
	UrgencyLevel      string    `json:"urgencyLevel"`
	Hospital          string    `json:"hospital"`
	TriedDonorIDs     []string  `json:"triedDonorIds"`
	At                time.Time `json:"at"`
}

type BloodRequestEvent struct {
	ID            string    `json:"id"`
	PatientName   string    `json:"patientName"`
	BloodType     string    `json:"bloodType"`
	UnitsRequired int       `json:"unitsRequired"`
	UrgencyLevel  string    `json:"urgencyLevel"`
	Hospital      string    `json:"hospital"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Reassigned implementa lifesaver.Notifier.
func (b *Bus) Reassigned(ctx context.Context, declined, followUp lifesaver.Request) error {
	tried := followUp.TriedDonorIDs
	if tried == nil {
		tried = []string{}
	}
	return b.publish(ctx, ChannelReassigned, ReassignedEvent{
		DeclinedRequestID: declined.ID,
		DeclinedDonorID:   declined.SelectedDonorID,
		FollowUpID:        followUp.ID,
		DonorID:           followUp.SelectedDonorID,
		BloodType:         string(followUp.BloodType),
		UrgencyLevel:      string(followUp.UrgencyLevel),
		Hospital:          followUp.Hospital,
		TriedDonorIDs:     tried,
		At:                followUp.CreatedAt,
	})
}

// BloodRequestCreated implementa bloodrequests.Broadcaster.
func (b *Bus) BloodRequestCreated(ctx context.Context, r bloodrequests.BloodRequest) error {
	return b.publish(ctx, ChannelBloodRequestCreated, BloodRequestEvent{
		ID:            r.ID,
		PatientName:   r.PatientName,
		BloodType:     string(r.BloodType),
		UnitsRequired: r.UnitsRequired,
		UrgencyLevel:  string(r.UrgencyLevel),
		Hospital:      r.Hospital,
		CreatedAt:     r.CreatedAt,
	})
}

func (b *Bus) publish(ctx context.Context, channel string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", channel, err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.pub.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}
