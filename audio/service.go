package audio

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/service"
)

// AudioService wraps BankPlayer as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	player   *BankPlayer
	log      zerolog.Logger
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{log: zerolog.Nop()}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: Config (default DefaultConfig)
// args[1]: zerolog.Logger
func (s *AudioService) Init(args ...any) error {
	cfg := DefaultConfig()
	for _, a := range args {
		switch v := a.(type) {
		case Config:
			cfg = v
		case zerolog.Logger:
			s.log = v.With().Str("service", "audio").Logger()
		}
	}

	if !cfg.Enabled {
		s.disabled.Store(true)
		return nil
	}
	s.player = NewBankPlayer(cfg)
	return nil
}

// Start implements Service
// Opens the speaker; falls back to silence on failure (no error returned)
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.player == nil {
		return nil
	}
	if err := s.player.Start(); err != nil {
		s.log.Warn().Err(err).Msg("no audio device, running silent")
		s.disabled.Store(true)
		return nil
	}
	s.log.Info().Int("sample_rate", s.player.cfg.SampleRate).Msg("audio started")
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.player != nil && s.player.IsRunning() {
		_ = s.player.Stop()
		s.log.Debug().Int64("played", s.player.Played()).Int64("dropped", s.player.Dropped()).Msg("audio stopped")
	}
	return nil
}

// Contribute implements service.ResourceContributor
// Publishes the player as engine.AudioPlayer, or a silent player when disabled
func (s *AudioService) Contribute(publish service.ResourcePublisher) {
	if p := s.Player(); p != nil {
		publish(engine.AudioPlayer(p))
		return
	}
	publish(engine.AudioPlayer(engine.NopAudio{}))
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the bank player; nil if disabled
func (s *AudioService) Player() *BankPlayer {
	if s.disabled.Load() {
		return nil
	}
	return s.player
}
