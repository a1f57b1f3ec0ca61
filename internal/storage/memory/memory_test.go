package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/GustavoCaso/carfinder/internal/storage"
)

func TestReadWrite(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Read(ctx, "k"); !errors.As(err, new(*storage.NotFoundError)) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	value := []byte("v1")
	if err := s.Write(ctx, "k", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'X'

	got, err := s.Read(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v1" {
		t.Errorf("Read = %q, want v1", got)
	}
}

func TestWriteErr(t *testing.T) {
	s := New()
	s.WriteErr = errors.New("quota exceeded")

	err := s.Write(context.Background(), "k", []byte("v"))
	if !errors.Is(err, s.WriteErr) {
		t.Fatalf("expected injected error, got %v", err)
	}

	if _, err = s.Read(context.Background(), "k"); err == nil {
		t.Error("failed write must not store a value")
	}
	if s.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", s.Writes())
	}
}
