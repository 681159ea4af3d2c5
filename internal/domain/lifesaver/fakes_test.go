package lifesaver

import (
	"context"
	"errors"
	"sync"

	"blood-donor-network/internal/domain/donors"
)

// fakeRepo guarda en memoria respetando el orden de inserción.
type fakeRepo struct {
	mu    sync.Mutex
	byID  map[string]Request
	order []string

	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]Request{}}
}

func (f *fakeRepo) Create(_ context.Context, r Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byID[r.ID]; ok {
		return errors.New("duplicate id")
	}
	r.TriedDonorIDs = append([]string(nil), r.TriedDonorIDs...)
	f.byID[r.ID] = r
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, r Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[r.ID]; !ok {
		return ErrNotFound
	}
	r.TriedDonorIDs = append([]string(nil), r.TriedDonorIDs...)
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRepo) Decline(_ context.Context, declined Request, followUp *Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[declined.ID]; !ok {
		return ErrNotFound
	}
	if followUp != nil {
		if f.createErr != nil {
			return f.createErr
		}
		if _, ok := f.byID[followUp.ID]; ok {
			return errors.New("duplicate id")
		}
		fu := *followUp
		fu.TriedDonorIDs = append([]string(nil), fu.TriedDonorIDs...)
		f.byID[fu.ID] = fu
		f.order = append(f.order, fu.ID)
	}
	declined.TriedDonorIDs = append([]string(nil), declined.TriedDonorIDs...)
	f.byID[declined.ID] = declined
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

type fakeDirectory struct {
	items []donors.Donor
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (donors.Donor, error) {
	for _, d := range f.items {
		if d.ID == id {
			return d, nil
		}
	}
	return donors.Donor{}, donors.ErrNotFound
}

func (f *fakeDirectory) ListAll(_ context.Context) ([]donors.Donor, error) {
	return append([]donors.Donor(nil), f.items...), nil
}

type failingLister struct {
	err error
}

func (f failingLister) ListAll(context.Context) ([]donors.Donor, error) {
	return nil, f.err
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []Request
	err   error
}

func (n *recordingNotifier) Reassigned(_ context.Context, _, followUp Request) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, followUp)
	return n.err
}
