package ledger

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixel-brawl/event"
)

// Config selects the ledger database
type Config struct {
	Enabled bool
	Path    string // Empty keeps the ledger in memory
}

const queueSize = 256

// record is one pending write, applied in order by the writer goroutine
type record struct {
	ev event.GameEvent
	at time.Time
}

// LedgerService records match lifecycle events into a Store
// HandleEvent runs on the simulation goroutine and only enqueues; a single writer goroutine owns the database
type LedgerService struct {
	cfg   Config
	store *Store
	log   zerolog.Logger

	queue chan record
	wg    sync.WaitGroup
	once  sync.Once

	matchID string // Writer goroutine only

	running  atomic.Bool
	disabled atomic.Bool
	written  atomic.Int64
	dropped  atomic.Int64
	failed   atomic.Int64
}

// NewService creates a new ledger service
func NewService() *LedgerService {
	return &LedgerService{log: zerolog.Nop()}
}

// Name implements Service
func (s *LedgerService) Name() string {
	return "ledger"
}

// Dependencies implements Service
func (s *LedgerService) Dependencies() []string {
	return nil
}

// Init implements Service
// args: Config, zerolog.Logger in any order
// An unreachable database disables the ledger instead of failing startup
func (s *LedgerService) Init(args ...any) error {
	cfg := Config{Enabled: true}
	for _, a := range args {
		switch v := a.(type) {
		case Config:
			cfg = v
		case zerolog.Logger:
			s.log = v.With().Str("service", "ledger").Logger()
		}
	}
	s.cfg = cfg

	if !cfg.Enabled {
		s.disabled.Store(true)
		return nil
	}
	store, err := Open(cfg.Path)
	if err != nil {
		s.log.Warn().Err(err).Msg("ledger unavailable, matches will not be recorded")
		s.disabled.Store(true)
		return nil
	}
	s.store = store
	s.queue = make(chan record, queueSize)
	return nil
}

// Start implements Service
func (s *LedgerService) Start() error {
	if s.disabled.Load() || s.running.Load() {
		return nil
	}
	s.running.Store(true)
	s.wg.Add(1)
	go s.writer()
	s.log.Info().Str("path", s.cfg.Path).Msg("ledger started")
	return nil
}

// Stop implements Service; drains pending writes before closing the database
func (s *LedgerService) Stop() error {
	var err error
	s.once.Do(func() {
		if s.running.Load() {
			close(s.queue)
			s.wg.Wait()
			s.running.Store(false)
		}
		if s.store != nil {
			err = s.store.Close()
		}
		s.log.Debug().
			Int64("written", s.written.Load()).
			Int64("dropped", s.dropped.Load()).
			Int64("failed", s.failed.Load()).
			Msg("ledger stopped")
	})
	return err
}

// IsDisabled implements service.Degradable
func (s *LedgerService) IsDisabled() bool {
	return s.disabled.Load()
}

// EventTypes implements engine.EventHandler
func (s *LedgerService) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMatchStart,
		event.EventCharacterKilled,
		event.EventMatchOver,
		event.EventWorldReset,
	}
}

// HandleEvent implements engine.EventHandler
func (s *LedgerService) HandleEvent(ev event.GameEvent) {
	if s.disabled.Load() || !s.running.Load() {
		return
	}
	select {
	case s.queue <- record{ev: ev, at: time.Now()}:
	default:
		s.dropped.Add(1)
	}
}

func (s *LedgerService) writer() {
	defer s.wg.Done()
	for r := range s.queue {
		if err := s.apply(r); err != nil {
			s.failed.Add(1)
			s.log.Warn().Err(err).Str("event", event.GetEventName(r.ev.Type)).Msg("ledger write failed")
			continue
		}
		s.written.Add(1)
	}
}

// apply runs on the writer goroutine; matchID is tracked here in event order
func (s *LedgerService) apply(r record) error {
	switch p := r.ev.Payload.(type) {
	case *event.MatchStartPayload:
		s.matchID = p.MatchID
		return s.store.BeginMatch(p, r.at)
	case *event.CharacterKilledPayload:
		return s.store.RecordKill(s.matchID, p, r.ev.Time)
	case *event.MatchOverPayload:
		return s.store.EndMatch(p.MatchID, p.WinnerName, p.Weapon, "finished", r.ev.Time, r.at)
	case *event.WorldResetPayload:
		if s.matchID == "" {
			return nil
		}
		err := s.store.EndMatch(s.matchID, "", "", p.Reason, r.ev.Time, r.at)
		s.matchID = ""
		if errors.Is(err, ErrUnknownMatch) {
			// Already closed by match over
			return nil
		}
		return err
	}
	return nil
}

// Store exposes the underlying store for summary queries; nil when disabled
func (s *LedgerService) Store() *Store {
	if s.disabled.Load() {
		return nil
	}
	return s.store
}

// Counters reports written, dropped and failed records
func (s *LedgerService) Counters() (written, dropped, failed int64) {
	return s.written.Load(), s.dropped.Load(), s.failed.Load()
}
