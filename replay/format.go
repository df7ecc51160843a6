package replay

import (
	"errors"
	"time"

	"github.com/lixenwraith/pixel-brawl/engine"
)

const (
	magic   = "BRWL"
	version = 1
)

var (
	// ErrBadHeader is returned when a stream does not start with a replay header
	ErrBadHeader = errors.New("not a replay stream")
	// ErrVersion is returned for replays written by an incompatible format version
	ErrVersion = errors.New("unsupported replay version")
)

// Header opens every replay stream
type Header struct {
	Magic    string        `msgpack:"magic"`
	Version  int           `msgpack:"v"`
	MatchID  string        `msgpack:"match"`
	Step     time.Duration `msgpack:"step"`
	Every    int           `msgpack:"every"`
	Recorded time.Time     `msgpack:"at"`
}

// MarkerKind tags a lifecycle event interleaved with snapshots
type MarkerKind uint8

const (
	MarkerMatchStart MarkerKind = iota
	MarkerMatchOver
	MarkerKill
	MarkerReset
)

// Marker is a lifecycle event at a simulation time
type Marker struct {
	Kind  MarkerKind    `msgpack:"k"`
	Frame int64         `msgpack:"f"`
	Time  time.Duration `msgpack:"t"`
	Text  string        `msgpack:"x"`
}

// Entry is one record after the header; exactly one field is set
type Entry struct {
	Snapshot *engine.Snapshot `msgpack:"s,omitempty"`
	Marker   *Marker          `msgpack:"m,omitempty"`
}
