package memory

import (
	"context"
	"fmt"
	"testing"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/domain/bloodrequests"
	"blood-donor-network/internal/domain/donors"
	"blood-donor-network/internal/domain/lifesaver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonorRepo_ListAll_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewDonorRepo()

	// suficientes elementos para que el orden de un map se note
	for i := 0; i < 50; i++ {
		require.NoError(t, repo.Create(ctx, donors.Donor{ID: fmt.Sprintf("d-%02d", i), BloodType: blood.OPos}))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)
	for i, d := range all {
		assert.Equal(t, fmt.Sprintf("d-%02d", i), d.ID)
	}
}

func TestDonorRepo_CreateUpdateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewDonorRepo()

	require.NoError(t, repo.Create(ctx, donors.Donor{ID: "d1", Email: "A@x.com"}))
	require.Error(t, repo.Create(ctx, donors.Donor{ID: "d1"}), "duplicate id")
	require.Error(t, repo.Create(ctx, donors.Donor{ID: " "}), "empty id")

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)

	got.IsVerified = true
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, again.IsVerified)

	assert.ErrorIs(t, repo.Update(ctx, donors.Donor{ID: "missing"}), donors.ErrNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, donors.ErrNotFound)
}

func TestLifeSaverRepo_DoesNotShareTriedDonors(t *testing.T) {
	ctx := context.Background()
	repo := NewLifeSaverRepo()

	tried := []string{"donor-1"}
	require.NoError(t, repo.Create(ctx, lifesaver.Request{ID: "r1", TriedDonorIDs: tried}))
	tried[0] = "mutated"

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"donor-1"}, got.TriedDonorIDs)

	got.TriedDonorIDs[0] = "mutated-again"
	again, _ := repo.GetByID(ctx, "r1")
	assert.Equal(t, []string{"donor-1"}, again.TriedDonorIDs)
}

func TestLifeSaverRepo_Decline(t *testing.T) {
	ctx := context.Background()
	repo := NewLifeSaverRepo()
	require.NoError(t, repo.Create(ctx, lifesaver.Request{ID: "r1", Status: lifesaver.StatusPending}))
	require.NoError(t, repo.Create(ctx, lifesaver.Request{ID: "r2", Status: lifesaver.StatusPending}))

	// id repetido: no se aplica ni el update
	err := repo.Decline(ctx,
		lifesaver.Request{ID: "r1", Status: lifesaver.StatusDeclined},
		&lifesaver.Request{ID: "r2"},
	)
	require.Error(t, err)
	got, _ := repo.GetByID(ctx, "r1")
	assert.Equal(t, lifesaver.StatusPending, got.Status)

	err = repo.Decline(ctx,
		lifesaver.Request{ID: "missing", Status: lifesaver.StatusDeclined},
		&lifesaver.Request{ID: "r3"},
	)
	assert.ErrorIs(t, err, lifesaver.ErrNotFound)

	require.NoError(t, repo.Decline(ctx,
		lifesaver.Request{ID: "r1", Status: lifesaver.StatusDeclined},
		&lifesaver.Request{ID: "r3", PreviousRequestID: "r1", Status: lifesaver.StatusPending},
	))
	all, _ := repo.ListAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, lifesaver.StatusDeclined, all[0].Status)
	assert.Equal(t, "r3", all[2].ID)
	assert.Equal(t, "r1", all[2].PreviousRequestID)

	require.NoError(t, repo.Decline(ctx, lifesaver.Request{ID: "r2", Status: lifesaver.StatusDeclined}, nil))
	got, _ = repo.GetByID(ctx, "r2")
	assert.Equal(t, lifesaver.StatusDeclined, got.Status)
}

func TestResponseRepo_Filters(t *testing.T) {
	ctx := context.Background()
	d, br, rr := NewDonorRepo(), NewBloodRequestRepo(), NewResponseRepo()
	require.NoError(t, Seed(ctx, d, br, rr))

	byReq, err := rr.ListByRequest(ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, byReq, 2)
	assert.Equal(t, "resp-1", byReq[0].ID)
	assert.Equal(t, "resp-2", byReq[1].ID)

	byDonor, err := rr.ListByDonor(ctx, "donor-6")
	require.NoError(t, err)
	require.Len(t, byDonor, 1)
	assert.Equal(t, "req-2", byDonor[0].RequestID)
}

func TestSeed_LoadsFixedSet(t *testing.T) {
	ctx := context.Background()
	d, br, rr := NewDonorRepo(), NewBloodRequestRepo(), NewResponseRepo()
	require.NoError(t, Seed(ctx, d, br, rr))

	all, err := d.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 8)
	assert.Equal(t, "donor-1", all[0].ID)
	assert.Equal(t, blood.OPos, all[0].BloodType)
	assert.Equal(t, "4.9", all[0].Rating)
	assert.Equal(t, 23, all[0].TotalDonations)

	// un grupo por donante
	seen := map[blood.Type]bool{}
	for _, x := range all {
		seen[x.BloodType] = true
	}
	assert.Len(t, seen, 8)

	reqs, err := br.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, bloodrequests.StatusActive, reqs[0].Status)

	// seed duplicado falla por ids repetidos
	require.Error(t, Seed(ctx, d, br, rr))
}
