package localstore

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"ltask/internal/config"
)

func TestTimestampGenerator_SameMillisecond(t *testing.T) {
	g := NewTimestampGenerator(func() time.Time { return time.UnixMilli(1000) })

	ids := []string{g.NextID(), g.NextID(), g.NextID()}
	want := []string{"1000", "1001", "1002"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("id %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}

func TestTimestampGenerator_ClockStepsBack(t *testing.T) {
	now := int64(5000)
	g := NewTimestampGenerator(func() time.Time { return time.UnixMilli(now) })

	first := g.NextID()
	now = 4000
	second := g.NextID()

	if first != "5000" || second != "5001" {
		t.Errorf("expected 5000 then 5001, got %s then %s", first, second)
	}
}

func TestTimestampGenerator_ObserveIgnoresNonNumeric(t *testing.T) {
	g := NewTimestampGenerator(func() time.Time { return time.UnixMilli(10) })
	g.Observe("abc")
	g.Observe("20")

	if id := g.NextID(); id != "21" {
		t.Errorf("expected 21, got %s", id)
	}
}

func TestNewIDGenerator_UUID(t *testing.T) {
	g := NewIDGenerator(config.IDsUUID, nil)

	a, b := g.NextID(), g.NextID()
	if a == b {
		t.Fatal("expected distinct ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a UUID, got %q: %v", a, err)
	}
}
