package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func TestFreezeBodyAndJoint_ExtendsNeverShortens(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w, mem := engine.NewTestWorld()
		body := mem.CreateBody(physics.BodyDef{Type: physics.BodyDynamic, LinearVelocity: vmath.V(3, 4), SleepThreshold: 0.05})

		var want time.Duration
		n := rapid.IntRange(1, 8).Draw(rt, "freezes")
		for range n {
			w.Resources.Time.Now += time.Duration(rapid.IntRange(0, 200).Draw(rt, "advance")) * time.Millisecond
			d := time.Duration(rapid.IntRange(1, 500).Draw(rt, "duration")) * time.Millisecond
			FreezeBodyAndJoint(w, body, core.NullJoint, d)
			want = max(want, w.Now()+d)

			rec, ok := w.Registry.Freezes.Get(body)
			require.True(rt, ok)
			assert.Equal(rt, want, rec.Expiry)
			// The snapshot is taken once, later freezes see a zeroed body
			assert.Equal(rt, vmath.V(3, 4), rec.Velocity)
			assert.InDelta(rt, 0.05, rec.SleepThreshold, 1e-12)
			assert.Equal(rt, vmath.Vec2{}, mem.LinearVelocity(body))
		}
	})
}

func TestFreezeSystem_HoldsStillAcrossSteps(t *testing.T) {
	w, mem := engine.NewTestWorld()
	w.AddSystem(NewFreezeSystem(w))
	w.AddSystem(NewPhysicsSystem(w, 2))
	w.AddSystem(NewFreezeGuardSystem(w))

	start := vmath.V(5, 5)
	body := mem.CreateBody(physics.BodyDef{Type: physics.BodyDynamic, Position: start, LinearVelocity: vmath.V(5, 0)})
	FreezeBodyAndJoint(w, body, core.NullJoint, 150*time.Millisecond)

	for range 14 {
		// A contact or impulse while frozen must not leak into motion
		mem.SetAwake(body, true)
		mem.SetLinearVelocity(body, vmath.V(50, 50))
		w.Step(10 * time.Millisecond)
		assert.Equal(t, start, mem.Position(body))
		assert.Equal(t, vmath.Vec2{}, mem.LinearVelocity(body))
	}

	w.Step(10 * time.Millisecond)
	assert.False(t, w.IsFrozen(body))
	assert.InDelta(t, 5.0, mem.LinearVelocity(body).X, 1e-9)
	assert.Greater(t, mem.Position(body).X, start.X)
	assert.Equal(t, int64(1), w.Resources.Status.Ints.Get("freeze.released").Load())
}

func TestUnfreeze_ClampsReleasedVelocity(t *testing.T) {
	w, mem := engine.NewTestWorld()
	body := mem.CreateBody(physics.BodyDef{Type: physics.BodyDynamic, LinearVelocity: vmath.V(30, 40), AngularVelocity: -100})

	FreezeBodyAndJoint(w, body, core.NullJoint, time.Second)
	Unfreeze(w, body)

	assert.InDelta(t, parameter.MaxUnfreezeSpeed, mem.LinearVelocity(body).Length(), 1e-9)
	assert.InDelta(t, -parameter.MaxUnfreezeAngularSpeed, mem.AngularVelocity(body), 1e-9)
	assert.True(t, mem.IsAwake(body))
}

func TestUnfreeze_RestoresMotor(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))
	sword, wpn := weaponOf(t, w, a)
	before := mem.Motor(wpn.Joint)
	require.True(t, before.Enabled)

	freezeCharacter(w, a, time.Second)
	assert.False(t, mem.Motor(wpn.Joint).Enabled)
	assert.True(t, w.IsFrozen(sword))

	Unfreeze(w, sword)
	assert.Equal(t, before, mem.Motor(wpn.Joint))
}

func TestFreezeBodyAndJoint_IgnoresInvalid(t *testing.T) {
	w, mem := engine.NewTestWorld()
	body := mem.CreateBody(physics.BodyDef{Type: physics.BodyDynamic})
	mem.DestroyBody(body)

	FreezeBodyAndJoint(w, body, core.NullJoint, time.Second)
	FreezeBodyAndJoint(w, core.NullBody, core.NullJoint, time.Second)
	assert.Zero(t, w.Registry.Freezes.Len())
}
