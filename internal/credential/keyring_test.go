package credential

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
)

func newTestStore() *Store {
	return NewWithRing(keyring.NewArrayKeyring(nil))
}

func TestSetGetDelete(t *testing.T) {
	s := newTestStore()

	if err := s.Set("session", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get("session")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "value" {
		t.Errorf("got %q", got)
	}

	if err := s.Delete("session"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Get("session"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissingKey(t *testing.T) {
	s := newTestStore()
	if err := s.Delete("absent"); err != nil {
		t.Errorf("deleting an absent key should be a no-op, got %v", err)
	}
}
