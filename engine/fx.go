package engine

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// FxKind selects how the renderer draws an FX record
type FxKind uint8

const (
	FxExplosion FxKind = iota
	FxSlashLine
	FxHitRing
	FxGhostTrail
	FxDeathBurst
	FxArc
)

func (k FxKind) String() string {
	switch k {
	case FxExplosion:
		return "explosion"
	case FxSlashLine:
		return "slash"
	case FxHitRing:
		return "hit"
	case FxGhostTrail:
		return "ghost"
	case FxDeathBurst:
		return "death"
	case FxArc:
		return "arc"
	default:
		return "unknown"
	}
}

// FxRecord is a fire-and-forget visual appended by the core
// From and To are both set for line effects; Radius for ring effects
type FxRecord struct {
	Kind   FxKind        `msgpack:"k"`
	From   vmath.Vec2    `msgpack:"f"`
	To     vmath.Vec2    `msgpack:"t"`
	Radius float64       `msgpack:"r"`
	Color  core.RGB      `msgpack:"c"`
	At     time.Duration `msgpack:"at"`
}

// FxBuffer collects FX records for the current frame; the renderer drains it
type FxBuffer struct {
	records []FxRecord
}

// NewFxBuffer creates an empty buffer
func NewFxBuffer() *FxBuffer {
	return &FxBuffer{records: make([]FxRecord, 0, parameter.FxBufferCap)}
}

// Add appends a record
func (b *FxBuffer) Add(rec FxRecord) {
	b.records = append(b.records, rec)
}

// Pending returns the records without consuming them
func (b *FxBuffer) Pending() []FxRecord {
	return b.records
}

// Drain returns and discards all records
func (b *FxBuffer) Drain() []FxRecord {
	out := make([]FxRecord, len(b.records))
	copy(out, b.records)
	b.records = b.records[:0]
	return out
}
