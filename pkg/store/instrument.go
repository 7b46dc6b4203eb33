package store

import (
	"context"
	"errors"
	"time"

	"github.com/kaleidodraw/kaleido/pkg/observability"
)

// instrumented decorates a Store with observability hooks. Every backend
// handed out by the CLI goes through this wrapper, so hook consumers see
// save/load/delete events regardless of which backend is configured.
type instrumented struct {
	inner   Store
	backend string
}

// Instrumented wraps s so that its operations report to the registered
// [observability.StoreHooks]. backend names the backend ("file", "redis", ...)
// in emitted events.
func Instrumented(s Store, backend string) Store {
	return &instrumented{inner: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, id string) (*Drawing, error) {
	start := time.Now()
	d, err := s.inner.Get(ctx, id)
	found := err == nil
	if errors.Is(err, ErrNotFound) {
		// A clean miss is reported as found=false, not as an error.
		observability.Store().OnLoad(ctx, s.backend, id, false, time.Since(start), nil)
		return nil, err
	}
	observability.Store().OnLoad(ctx, s.backend, id, found, time.Since(start), err)
	return d, err
}

func (s *instrumented) Put(ctx context.Context, d *Drawing) error {
	start := time.Now()
	err := s.inner.Put(ctx, d)
	points := 0
	for _, st := range d.Strokes {
		points += st.Len()
	}
	observability.Store().OnSave(ctx, s.backend, d.ID, points, time.Since(start), err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	err := s.inner.Delete(ctx, id)
	observability.Store().OnDelete(ctx, s.backend, id, err)
	return err
}

func (s *instrumented) List(ctx context.Context) ([]Info, error) {
	return s.inner.List(ctx)
}

func (s *instrumented) Close() error { return s.inner.Close() }

var _ Store = (*instrumented)(nil)
