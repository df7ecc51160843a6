package engine

//go:generate go tool mockgen -destination=./mocks/audio_player_mock.go -package=mocks . AudioPlayer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/status"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// Resource holds singleton resources shared by all systems, accessed via World.Resources
type Resource struct {
	Time   *TimeResource
	Tuning *parameter.Tuning
	Event  *EventQueueResource
	Fx     *FxBuffer
	Rand   *vmath.FastRand
	Log    zerolog.Logger

	// Telemetry
	Status *status.Registry

	// Bridged resources from services
	Audio AudioPlayer
}

// ServiceBridge routes a service-contributed resource to its typed field
func (r *Resource) ServiceBridge(res any) {
	switch v := res.(type) {
	case AudioPlayer:
		r.Audio = v
	}
}

// TimeResource is the monotonically increasing simulation clock
// Every expiry (cooldown, freeze, status, schedule) is compared against Now
type TimeResource struct {
	Now         time.Duration
	DeltaTime   time.Duration
	FrameNumber int64
}

// Advance moves the clock by one step
func (tr *TimeResource) Advance(dt time.Duration) {
	tr.Now += dt
	tr.DeltaTime = dt
	tr.FrameNumber++
}

// EventQueueResource wraps the event queue for systems access
type EventQueueResource struct {
	Queue *event.EventQueue
}

// AudioPlayer is the audio collaborator: fire-and-forget playback from a bank
type AudioPlayer interface {
	Play(bank core.SoundBank, pos vmath.Vec2, intensity float64)
}

// NopAudio discards every request; used when no device is available
type NopAudio struct{}

func (NopAudio) Play(core.SoundBank, vmath.Vec2, float64) {}
