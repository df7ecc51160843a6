package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixel-brawl/engine"
)

const shutdownTimeout = 3 * time.Second

// Config selects the listen address and sampling
type Config struct {
	Enabled bool
	Addr    string
	Every   int // Frames between published snapshots
}

// SpectateService runs the spectator HTTP server
type SpectateService struct {
	cfg    Config
	log    zerolog.Logger
	server *Server

	mu       sync.Mutex
	http     *http.Server
	listener net.Listener
	cancel   context.CancelFunc
	done     chan error
}

// NewService creates a new spectator service
func NewService() *SpectateService {
	return &SpectateService{log: zerolog.Nop()}
}

// Name implements Service
func (s *SpectateService) Name() string {
	return "spectate"
}

// Dependencies implements Service
func (s *SpectateService) Dependencies() []string {
	return nil
}

// Init implements Service
// args: Config, zerolog.Logger in any order
func (s *SpectateService) Init(args ...any) error {
	for _, a := range args {
		switch v := a.(type) {
		case Config:
			s.cfg = v
		case zerolog.Logger:
			s.log = v.With().Str("service", "spectate").Logger()
		}
	}
	if s.cfg.Enabled && s.cfg.Addr == "" {
		return errors.New("spectate enabled without an address")
	}
	s.server = NewServer(s.cfg.Every, s.log)
	return nil
}

// IsDisabled implements service.Degradable
func (s *SpectateService) IsDisabled() bool {
	return !s.cfg.Enabled
}

// Start implements Service; binds the listener so address errors surface at startup
func (s *SpectateService) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.http != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("spectate listen %s: %w", s.cfg.Addr, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Handler:           s.server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	done := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()

	s.http = srv
	s.listener = ln
	s.cancel = cancel
	s.done = done
	s.log.Info().Str("addr", ln.Addr().String()).Msg("spectator server listening")
	return nil
}

// Stop implements Service; ends viewer streams and shuts the server down
func (s *SpectateService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.http == nil {
		return nil
	}
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.http.Shutdown(ctx)
	serveErr := <-s.done
	s.http = nil
	s.listener = nil
	return errors.Join(err, serveErr)
}

// Publish forwards a snapshot to viewers; no-op when disabled
func (s *SpectateService) Publish(snap *engine.Snapshot) {
	if !s.cfg.Enabled || s.server == nil {
		return
	}
	if _, err := s.server.Publish(snap); err != nil {
		s.log.Warn().Err(err).Msg("snapshot encode failed")
	}
}

// Addr returns the bound address, empty when not listening
func (s *SpectateService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Server returns the underlying snapshot server
func (s *SpectateService) Server() *Server {
	return s.server
}
