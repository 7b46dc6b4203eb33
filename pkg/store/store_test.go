package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

func sampleDrawing(name string) *Drawing {
	return New(name, []*stroke.Stroke{
		{ID: "s1", Points: []stroke.StrokePoint{{X: 1, Y: 2, Pressure: 1, TimeMs: 10}}},
	}, symmetry.NewConfig())
}

func TestNewDrawing(t *testing.T) {
	d := sampleDrawing("spiral")

	if d.ID == "" {
		t.Error("drawing has no id")
	}
	if d.Name != "spiral" {
		t.Errorf("Name = %q, want %q", d.Name, "spiral")
	}
	if d.CreatedAt.IsZero() || !d.CreatedAt.Equal(d.UpdatedAt) {
		t.Errorf("timestamps = %v/%v, want equal and set", d.CreatedAt, d.UpdatedAt)
	}
}

// storeUnderTest runs the shared contract tests against any backend.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(missing) = %v, want ErrNotFound", err)
		}
	})

	t.Run("put and get", func(t *testing.T) {
		d := sampleDrawing("one")
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put: %v", err)
		}

		got, err := s.Get(ctx, d.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.ID != d.ID || got.Name != d.Name {
			t.Errorf("Get = %s/%q, want %s/%q", got.ID, got.Name, d.ID, d.Name)
		}
		if len(got.Strokes) != 1 || got.Strokes[0].Points[0] != d.Strokes[0].Points[0] {
			t.Errorf("strokes did not survive the round trip: %+v", got.Strokes)
		}
		if got.Symmetry != d.Symmetry {
			t.Errorf("Symmetry = %+v, want %+v", got.Symmetry, d.Symmetry)
		}
	})

	t.Run("replace", func(t *testing.T) {
		d := sampleDrawing("before")
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put: %v", err)
		}
		d.Name = "after"
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put: %v", err)
		}

		got, err := s.Get(ctx, d.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Name != "after" {
			t.Errorf("Name = %q, want %q", got.Name, "after")
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		old := sampleDrawing("old")
		old.UpdatedAt = time.Now().UTC().Add(-time.Hour)
		fresh := sampleDrawing("fresh")

		if err := s.Put(ctx, old); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if err := s.Put(ctx, fresh); err != nil {
			t.Fatalf("Put: %v", err)
		}

		infos, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		var oldIdx, freshIdx = -1, -1
		for i, info := range infos {
			switch info.ID {
			case old.ID:
				oldIdx = i
			case fresh.ID:
				freshIdx = i
			}
		}
		if oldIdx == -1 || freshIdx == -1 {
			t.Fatalf("List missing entries: %+v", infos)
		}
		if freshIdx > oldIdx {
			t.Error("List should order newest first")
		}
	})

	t.Run("delete", func(t *testing.T) {
		d := sampleDrawing("doomed")
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if err := s.Delete(ctx, d.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Get(ctx, d.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get after delete = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete missing is idempotent", func(t *testing.T) {
		if err := s.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("Delete(missing) = %v, want nil", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeUnderTest(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	storeUnderTest(t, s)
}

func TestFileStoreSkipsCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	d := sampleDrawing("good")
	if err := s.Put(context.Background(), d); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	infos, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != d.ID {
		t.Errorf("List = %+v, want only the valid drawing", infos)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	d := sampleDrawing("persistent")
	if err := s1.Put(ctx, d); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s1.Close()

	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "persistent" {
		t.Errorf("Name = %q, want %q", got.Name, "persistent")
	}
}
