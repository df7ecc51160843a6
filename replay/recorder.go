package replay

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
)

// Recorder appends msgpack entries to a writer
// Not safe for concurrent use; the simulation goroutine owns it
type Recorder struct {
	buf   *bufio.Writer
	enc   *msgpack.Encoder
	every int64

	lastFrame int64
	frames    int
	markers   int
}

// NewRecorder writes the header and returns a recorder keeping one snapshot per every frames
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	if h.Every <= 0 {
		h.Every = 1
	}
	h.Magic = magic
	h.Version = version

	buf := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(buf)
	if err := enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return &Recorder{buf: buf, enc: enc, every: int64(h.Every), lastFrame: -1}, nil
}

// Record appends snap when at least every frames passed since the last recorded one
// Returns whether the snapshot was kept
func (r *Recorder) Record(snap *engine.Snapshot) (bool, error) {
	if snap == nil {
		return false, nil
	}
	if r.lastFrame >= 0 && snap.Frame-r.lastFrame < r.every {
		return false, nil
	}
	if err := r.enc.Encode(&Entry{Snapshot: snap}); err != nil {
		return false, fmt.Errorf("write replay frame %d: %w", snap.Frame, err)
	}
	r.lastFrame = snap.Frame
	r.frames++
	return true, nil
}

// Mark appends a lifecycle marker
func (r *Recorder) Mark(m Marker) error {
	if err := r.enc.Encode(&Entry{Marker: &m}); err != nil {
		return fmt.Errorf("write replay marker: %w", err)
	}
	r.markers++
	return nil
}

// Flush pushes buffered entries to the underlying writer
func (r *Recorder) Flush() error {
	return r.buf.Flush()
}

// Counts returns recorded snapshots and markers
func (r *Recorder) Counts() (frames, markers int) {
	return r.frames, r.markers
}

// MarkerFor converts a lifecycle event; ok is false for events that are not recorded
func MarkerFor(ev event.GameEvent) (Marker, bool) {
	m := Marker{Frame: ev.Frame, Time: ev.Time}
	switch p := ev.Payload.(type) {
	case *event.MatchStartPayload:
		m.Kind = MarkerMatchStart
		m.Text = fmt.Sprintf("%s: %d characters", p.MatchID, len(p.Characters))
	case *event.MatchOverPayload:
		m.Kind = MarkerMatchOver
		if p.WinnerName == "" {
			m.Text = "draw"
		} else {
			m.Text = p.WinnerName + " wins with " + p.Weapon
		}
	case *event.CharacterKilledPayload:
		m.Kind = MarkerKill
		killer := p.KillerName
		if killer == "" {
			killer = "nobody"
		}
		m.Text = fmt.Sprintf("%s killed by %s (%s)", p.VictimName, killer, p.Cause)
	case *event.WorldResetPayload:
		m.Kind = MarkerReset
		m.Text = p.Reason
	default:
		return Marker{}, false
	}
	return m, true
}

// stamp returns the wall clock used for headers
var stamp = func() time.Time { return time.Now().UTC() }
