package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pixel-brawl/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave, optionally sweeping frequency
type oscillator struct {
	freq     float64
	sweep    float64 // Hz per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, 0, duration, wave, rate)
}

// NewSweep creates an oscillator whose frequency moves linearly by sweep Hz/s
func NewSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000)+1, uint64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		f := max(o.freq+o.sweep*t, 0)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero gain is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one partial of a bank voice
type tone struct {
	wave     WaveType
	freq     float64
	sweep    float64
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

func (t tone) streamer(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(t.freq, t.sweep, t.duration, t.wave, rate)
	return newVolume(NewEnvelope(osc, t.duration, t.attack, t.release, rate), t.gain)
}

// bankTones holds the partials mixed for each sound bank
var bankTones = [core.SoundBankCount][]tone{
	core.SoundMelee: {
		{wave: WaveNoise, duration: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.4},
		{wave: WaveSine, freq: 180, sweep: -900, duration: 90 * time.Millisecond, attack: 2 * time.Millisecond, release: 70 * time.Millisecond, gain: 0.5},
	},
	core.SoundProjectileImpact: {
		{wave: WaveSquare, freq: 520, sweep: -2400, duration: 70 * time.Millisecond, attack: time.Millisecond, release: 50 * time.Millisecond, gain: 0.35},
	},
	core.SoundWallImpact: {
		{wave: WaveNoise, duration: 40 * time.Millisecond, attack: time.Millisecond, release: 35 * time.Millisecond, gain: 0.3},
	},
	core.SoundClash: {
		{wave: WaveSine, freq: 1760, duration: 220 * time.Millisecond, attack: time.Millisecond, release: 200 * time.Millisecond, gain: 0.4},
		{wave: WaveSine, freq: 2637, duration: 160 * time.Millisecond, attack: time.Millisecond, release: 150 * time.Millisecond, gain: 0.25},
	},
	core.SoundExplosion: {
		{wave: WaveNoise, duration: 450 * time.Millisecond, attack: 5 * time.Millisecond, release: 400 * time.Millisecond, gain: 0.5},
		{wave: WaveSine, freq: 90, sweep: -120, duration: 400 * time.Millisecond, attack: 5 * time.Millisecond, release: 350 * time.Millisecond, gain: 0.45},
	},
	core.SoundFreeze: {
		{wave: WaveSine, freq: 2093, sweep: 1500, duration: 180 * time.Millisecond, attack: 10 * time.Millisecond, release: 120 * time.Millisecond, gain: 0.3},
	},
	core.SoundZap: {
		{wave: WaveSaw, freq: 660, sweep: 3000, duration: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.3},
		{wave: WaveNoise, duration: 80 * time.Millisecond, attack: time.Millisecond, release: 70 * time.Millisecond, gain: 0.15},
	},
	core.SoundDeath: {
		{wave: WaveSaw, freq: 330, sweep: -500, duration: 500 * time.Millisecond, attack: 10 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.45},
	},
	core.SoundSummon: {
		{wave: WaveSquare, freq: 440, sweep: 800, duration: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.2},
	},
}

// BankVoice builds a one-shot streamer for bank scaled by intensity and panned in [-1, 1]
// Returns nil for an unknown bank or a non-positive intensity
func BankVoice(bank core.SoundBank, intensity, pan float64, rate beep.SampleRate) beep.Streamer {
	if bank < 0 || bank >= core.SoundBankCount || intensity <= 0 {
		return nil
	}
	tones := bankTones[bank]
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, t.streamer(rate))
	}
	mixed := beep.Mix(parts...)
	return &effects.Pan{Streamer: newVolume(mixed, min(intensity, 1)), Pan: max(-1, min(1, pan))}
}

// bankLength is the longest partial of bank
func bankLength(bank core.SoundBank) time.Duration {
	var d time.Duration
	for _, t := range bankTones[bank] {
		d = max(d, t.duration)
	}
	return d
}
