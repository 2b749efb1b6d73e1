package utils

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
)

func TestRangeIDGeneratorStaysInRange(t *testing.T) {
	g := RangeIDGenerator{Min: 1, Max: 4}
	seen := map[string]bool{}

	for i := 0; i < 500; i++ {
		id, err := g.NewID()
		if err != nil {
			t.Fatalf("NewID fail %v", err)
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			t.Fatalf("id %q is not an integer: %v", id, err)
		}
		if n < 1 || n >= 4 {
			t.Fatalf("id %d outside [1, 4)", n)
		}
		seen[id] = true
	}

	if len(seen) != 3 {
		t.Errorf("drew %v, want every value of [1, 4)", seen)
	}
}

func TestRangeIDGeneratorRejectsEmptyRange(t *testing.T) {
	if _, err := (RangeIDGenerator{Min: 5, Max: 5}).NewID(); err == nil {
		t.Fatal("NewID should fail for an empty range")
	}
}

func TestUUIDGenerator(t *testing.T) {
	id, err := UUIDGenerator{}.NewID()
	if err != nil {
		t.Fatalf("NewID fail %v", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("id %q is not a uuid: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("uuid version = %d, want 4", parsed.Version())
	}
}

func TestNewIDGenerator(t *testing.T) {
	if g, err := NewIDGenerator("range", 1, 1_000_000_000); err != nil {
		t.Errorf("range strategy fail %v", err)
	} else if _, ok := g.(RangeIDGenerator); !ok {
		t.Errorf("range strategy gave %T", g)
	}

	if g, err := NewIDGenerator("uuid", 0, 0); err != nil {
		t.Errorf("uuid strategy fail %v", err)
	} else if _, ok := g.(UUIDGenerator); !ok {
		t.Errorf("uuid strategy gave %T", g)
	}

	if _, err := NewIDGenerator("sequence", 0, 0); err == nil {
		t.Error("unknown strategy should fail")
	}
}
