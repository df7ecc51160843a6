package audio

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

const (
	defaultSampleRate = 44100
	// Same-bank requests closer than this are merged into the first
	bankThrottle = 30 * time.Millisecond
	// Mixer voices beyond this are dropped
	maxVoices = 24
)

// ErrNotRunning is returned by Stop on a player that never started
var ErrNotRunning = errors.New("audio player not running")

// Config selects device and gain settings
type Config struct {
	Enabled    bool
	Volume     float64 // 0..1 master gain
	SampleRate int
	ArenaWidth float64 // World width used to pan by x position
}

// DefaultConfig returns an enabled player at 70% volume
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     0.7,
		SampleRate: defaultSampleRate,
		ArenaWidth: 40,
	}
}

// BankPlayer synthesizes bank voices into a beep mixer
// Play is safe from the simulation goroutine; the speaker drains the mixer on its own goroutine
type BankPlayer struct {
	cfg   Config
	rate  beep.SampleRate
	mixer *beep.Mixer

	mu       sync.Mutex
	lastPlay [core.SoundBankCount]time.Time
	clock    func() time.Time

	// Device lock hooks; no-ops until Start attaches the speaker
	lock   func()
	unlock func()

	running atomic.Bool
	muted   atomic.Bool
	played  atomic.Int64
	dropped atomic.Int64
}

// NewBankPlayer creates a player that mixes but does not output until Start
func NewBankPlayer(cfg Config) *BankPlayer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	p := &BankPlayer{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		clock:  time.Now,
		lock:   func() {},
		unlock: func() {},
	}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Start opens the speaker and attaches the mixer
func (p *BankPlayer) Start() error {
	if p.running.Load() {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	p.lock = speaker.Lock
	p.unlock = speaker.Unlock
	speaker.Play(p.mixer)
	p.running.Store(true)
	return nil
}

// Stop clears pending voices and releases the device
func (p *BankPlayer) Stop() error {
	if !p.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}
	speaker.Clear()
	speaker.Close()
	p.lock = func() {}
	p.unlock = func() {}
	return nil
}

// Play implements engine.AudioPlayer
func (p *BankPlayer) Play(bank core.SoundBank, pos vmath.Vec2, intensity float64) {
	if p.muted.Load() {
		return
	}
	gain := intensity * p.cfg.Volume
	if gain <= 0 || bank < 0 || bank >= core.SoundBankCount {
		return
	}

	p.mu.Lock()
	now := p.clock()
	if last := p.lastPlay[bank]; !last.IsZero() && now.Sub(last) < bankThrottle {
		p.mu.Unlock()
		p.dropped.Add(1)
		return
	}
	p.lastPlay[bank] = now
	p.mu.Unlock()

	voice := BankVoice(bank, gain, p.pan(pos.X), p.rate)
	if voice == nil {
		return
	}

	p.lock()
	if p.mixer.Len() >= maxVoices {
		p.unlock()
		p.dropped.Add(1)
		return
	}
	p.mixer.Add(voice)
	p.unlock()
	p.played.Add(1)
}

// pan maps an arena x coordinate to a stereo position
func (p *BankPlayer) pan(x float64) float64 {
	if p.cfg.ArenaWidth <= 0 {
		return 0
	}
	return max(-1, min(1, 2*x/p.cfg.ArenaWidth-1))
}

// ToggleMute flips the mute state, returns true if now audible
func (p *BankPlayer) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return !muted
}

func (p *BankPlayer) IsMuted() bool { return p.muted.Load() }
func (p *BankPlayer) IsRunning() bool { return p.running.Load() }

// Played and Dropped report voice counters since creation
func (p *BankPlayer) Played() int64 { return p.played.Load() }
func (p *BankPlayer) Dropped() int64 { return p.dropped.Load() }

// Voices returns the number of voices still in the mixer
func (p *BankPlayer) Voices() int {
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}
