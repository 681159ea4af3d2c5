package bloodrequests_test

import (
	"context"
	"errors"
	"testing"

	"blood-donor-network/internal/adapters/storage/memory"
	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/domain/bloodrequests"
	"blood-donor-network/internal/platform/metrics"
	"blood-donor-network/internal/platform/validation"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	got []bloodrequests.BloodRequest
	err error
}

func (b *recordingBroadcaster) BloodRequestCreated(_ context.Context, r bloodrequests.BloodRequest) error {
	b.got = append(b.got, r)
	return b.err
}

func validInput() bloodrequests.CreateInput {
	return bloodrequests.CreateInput{
		PatientName:   "Emergency surgery patient",
		BloodType:     "o+",
		UnitsRequired: 2,
		UrgencyLevel:  "critical",
		Hospital:      "Mumbai General Hospital",
		ContactPerson: "Dr. Mehta",
		ContactPhone:  "+91 90000 00001",
	}
}

func strPtr(s string) *string { return &s }

func TestService_Create_Broadcasts(t *testing.T) {
	bc := &recordingBroadcaster{}
	m := metrics.New()
	svc := bloodrequests.NewService(memory.NewBloodRequestRepo(), bc, m, nil)

	br, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, bloodrequests.StatusActive, br.Status)
	assert.Equal(t, blood.OPos, br.BloodType)
	require.Len(t, bc.got, 1)
	assert.Equal(t, br.ID, bc.got[0].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Created.WithLabelValues("blood_request")))
}

func TestService_Create_BroadcastErrorIsIgnored(t *testing.T) {
	bc := &recordingBroadcaster{err: errors.New("redis down")}
	svc := bloodrequests.NewService(memory.NewBloodRequestRepo(), bc, nil, nil)

	br, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	stored, err := svc.GetByID(context.Background(), br.ID)
	require.NoError(t, err)
	assert.Equal(t, br.ID, stored.ID)
}

func TestService_Create_Validation(t *testing.T) {
	svc := bloodrequests.NewService(memory.NewBloodRequestRepo(), nil, nil, nil)

	in := validInput()
	in.BloodType = "C+"
	in.UnitsRequired = 0
	in.UrgencyLevel = "someday"

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.Len(t, validation.Fields(err), 3)
}

func TestService_ListActiveAndUpdate(t *testing.T) {
	svc := bloodrequests.NewService(memory.NewBloodRequestRepo(), nil, nil, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	b, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, bloodrequests.UpdateInput{Status: strPtr("fulfilled")})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Update(ctx, a.ID, bloodrequests.UpdateInput{Status: strPtr("lost")})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = svc.Update(ctx, "ghost", bloodrequests.UpdateInput{})
	assert.ErrorIs(t, err, bloodrequests.ErrNotFound)
}
