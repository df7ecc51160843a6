package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
)

// Config selects the replay file and sampling
type Config struct {
	Enabled bool
	Path    string
	Every   int           // Frames between recorded snapshots
	MatchID string        // Written into the header
	Step    time.Duration // Simulation step, written into the header
}

// ReplayService owns the replay file for one process run
// Record and HandleEvent run on the simulation goroutine; Stop may run on another
type ReplayService struct {
	cfg Config
	log zerolog.Logger

	mu   sync.Mutex
	file *os.File
	rec  *Recorder
	err  error // First write error; recording stops after it
}

// NewService creates a new replay service
func NewService() *ReplayService {
	return &ReplayService{log: zerolog.Nop()}
}

// Name implements Service
func (s *ReplayService) Name() string {
	return "replay"
}

// Dependencies implements Service
func (s *ReplayService) Dependencies() []string {
	return nil
}

// Init implements Service
// args: Config, zerolog.Logger in any order
func (s *ReplayService) Init(args ...any) error {
	for _, a := range args {
		switch v := a.(type) {
		case Config:
			s.cfg = v
		case zerolog.Logger:
			s.log = v.With().Str("service", "replay").Logger()
		}
	}
	if s.cfg.Enabled && s.cfg.Path == "" {
		return fmt.Errorf("replay enabled without a path")
	}
	return nil
}

// IsDisabled implements service.Degradable
func (s *ReplayService) IsDisabled() bool {
	return !s.cfg.Enabled
}

// Start implements Service; creates the replay file and writes the header
func (s *ReplayService) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec != nil {
		return nil
	}

	if dir := filepath.Dir(s.cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create replay dir: %w", err)
		}
	}
	f, err := os.Create(s.cfg.Path)
	if err != nil {
		return fmt.Errorf("create replay: %w", err)
	}
	rec, err := NewRecorder(f, Header{
		MatchID:  s.cfg.MatchID,
		Step:     s.cfg.Step,
		Every:    s.cfg.Every,
		Recorded: stamp(),
	})
	if err != nil {
		f.Close()
		return err
	}
	s.file = f
	s.rec = rec
	s.log.Info().Str("path", s.cfg.Path).Int("every", s.cfg.Every).Msg("replay recording")
	return nil
}

// Stop implements Service; flushes and closes the file
func (s *ReplayService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil
	}
	frames, markers := s.rec.Counts()
	flushErr := s.rec.Flush()
	closeErr := s.file.Close()
	s.rec = nil
	s.file = nil
	s.log.Info().Int("frames", frames).Int("markers", markers).Msg("replay closed")
	if flushErr != nil {
		return fmt.Errorf("flush replay: %w", flushErr)
	}
	return closeErr
}

// Record offers a snapshot to the recorder
func (s *ReplayService) Record(snap *engine.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil || s.err != nil {
		return
	}
	if _, err := s.rec.Record(snap); err != nil {
		s.fail(err)
	}
}

// EventTypes implements engine.EventHandler
func (s *ReplayService) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMatchStart,
		event.EventMatchOver,
		event.EventCharacterKilled,
		event.EventWorldReset,
	}
}

// HandleEvent implements engine.EventHandler
func (s *ReplayService) HandleEvent(ev event.GameEvent) {
	m, ok := MarkerFor(ev)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil || s.err != nil {
		return
	}
	if err := s.rec.Mark(m); err != nil {
		s.fail(err)
	}
}

func (s *ReplayService) fail(err error) {
	s.err = err
	s.log.Warn().Err(err).Msg("replay recording stopped")
}

// Err returns the first write error, nil while recording is healthy
func (s *ReplayService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
