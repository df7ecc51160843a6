package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/pixel-brawl/parameter"
)

// TimeProvider supplies wall-clock time to the frame loop
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// FixedStepper converts wall-clock progress into a whole number of fixed simulation steps
// Leftover time carries to the next call; a stall is capped at MaxStepsPerFrame
type FixedStepper struct {
	provider TimeProvider
	step     time.Duration
	last     time.Time
	acc      time.Duration
	paused   bool
}

// NewFixedStepper starts accumulating from the provider's current time
func NewFixedStepper(provider TimeProvider, step time.Duration) *FixedStepper {
	if step <= 0 {
		step = parameter.StepInterval
	}
	return &FixedStepper{
		provider: provider,
		step:     step,
		last:     provider.Now(),
	}
}

// Steps returns how many fixed steps are due since the previous call
func (f *FixedStepper) Steps() int {
	now := f.provider.Now()
	elapsed := now.Sub(f.last)
	f.last = now
	if f.paused || elapsed <= 0 {
		return 0
	}

	f.acc += elapsed
	n := int(f.acc / f.step)
	f.acc -= time.Duration(n) * f.step
	if n > parameter.MaxStepsPerFrame {
		n = parameter.MaxStepsPerFrame
		f.acc = 0
	}
	return n
}

// SetPaused stops accumulation; resuming does not replay the paused interval
func (f *FixedStepper) SetPaused(paused bool) {
	f.paused = paused
	f.acc = 0
	f.last = f.provider.Now()
}

// Step returns the fixed step duration
func (f *FixedStepper) Step() time.Duration {
	return f.step
}
