package localstore

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"ltask/internal/config"
)

// IDGenerator issues task IDs that are unique within a process lifetime.
type IDGenerator interface {
	// NextID returns a new ID.
	NextID() string

	// Observe records an existing ID so later IDs never collide with it.
	Observe(id string)
}

// NewIDGenerator returns the generator for a config.IDs* scheme.
func NewIDGenerator(scheme string, now func() time.Time) IDGenerator {
	if scheme == config.IDsUUID {
		return UUIDGenerator{}
	}
	return NewTimestampGenerator(now)
}

// TimestampGenerator issues decimal Unix-millisecond IDs. Two calls in the
// same millisecond, or a clock that steps backwards, get last+1 instead.
type TimestampGenerator struct {
	now  func() time.Time
	last int64
}

// NewTimestampGenerator creates a TimestampGenerator. A nil now uses time.Now.
func NewTimestampGenerator(now func() time.Time) *TimestampGenerator {
	if now == nil {
		now = time.Now
	}
	return &TimestampGenerator{now: now}
}

// NextID implements IDGenerator.
func (g *TimestampGenerator) NextID() string {
	candidate := g.now().UnixMilli()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	g.last = candidate
	return strconv.FormatInt(candidate, 10)
}

// Observe implements IDGenerator. Non-numeric IDs are ignored.
func (g *TimestampGenerator) Observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	if n > g.last {
		g.last = n
	}
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

// NextID implements IDGenerator.
func (UUIDGenerator) NextID() string { return uuid.NewString() }

// Observe implements IDGenerator.
func (UUIDGenerator) Observe(string) {}
