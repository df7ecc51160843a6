package spectate

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/pixel-brawl/engine"
)

const writeTimeout = 2 * time.Second

// Server streams the latest msgpack-encoded snapshot to websocket viewers
// Slow viewers skip intermediate frames; each write carries the newest frame
type Server struct {
	log   zerolog.Logger
	every int64

	mu        sync.Mutex
	frame     []byte
	seq       uint64
	changed   chan struct{}
	lastFrame int64

	viewers   atomic.Int64
	published atomic.Int64
}

// NewServer creates a server publishing one snapshot per every frames
func NewServer(every int, log zerolog.Logger) *Server {
	if every <= 0 {
		every = 1
	}
	return &Server{
		log:       log,
		every:     int64(every),
		changed:   make(chan struct{}),
		lastFrame: -1,
	}
}

// Publish encodes snap as the current frame; returns false when sampled out
func (s *Server) Publish(snap *engine.Snapshot) (bool, error) {
	if snap == nil {
		return false, nil
	}
	s.mu.Lock()
	skip := s.lastFrame >= 0 && snap.Frame-s.lastFrame < s.every
	s.mu.Unlock()
	if skip {
		return false, nil
	}

	data, err := msgpack.Marshal(snap)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.frame = data
	s.seq++
	s.lastFrame = snap.Frame
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()

	s.published.Add(1)
	return true, nil
}

func (s *Server) current() ([]byte, uint64, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.seq, s.changed
}

// Handler returns the HTTP routes: /ws for viewers, /healthz for liveness checks
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveViewer)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) serveViewer(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("failed to accept viewer")
		return
	}
	defer conn.CloseNow()

	n := s.viewers.Add(1)
	defer s.viewers.Add(-1)
	s.log.Debug().Str("remote", r.RemoteAddr).Int64("viewers", n).Msg("viewer connected")

	// Viewers never send; CloseRead cancels ctx when the peer goes away
	ctx := conn.CloseRead(r.Context())

	var sent uint64
	for {
		frame, seq, changed := s.current()
		if frame != nil && seq != sent {
			if err := s.write(ctx, conn, frame); err != nil {
				if !errors.Is(err, context.Canceled) {
					s.log.Debug().Err(err).Msg("viewer write failed")
				}
				return
			}
			sent = seq
			continue
		}
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-changed:
		}
	}
}

func (s *Server) write(ctx context.Context, conn *websocket.Conn, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, frame)
}

// Viewers returns the number of connected viewers
func (s *Server) Viewers() int64 {
	return s.viewers.Load()
}

// Published returns how many snapshots were encoded
func (s *Server) Published() int64 {
	return s.published.Load()
}
