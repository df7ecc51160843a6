package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

const stepSeconds = 1.0 / 60.0

// stepUntil alternates engine steps and contact routing until done reports true
func stepUntil(t *testing.T, mem *physics.MemWorld, contact engine.System, maxSteps int, done func() bool) {
	t.Helper()
	for range maxSteps {
		mem.Step(stepSeconds, 4)
		contact.Update()
		if done() {
			return
		}
	}
	t.Fatalf("condition not met within %d steps", maxSteps)
}

func TestContactSystem_ProjectileEntersSkin(t *testing.T) {
	w, mem := engine.NewTestWorld()
	contact := NewContactSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponUnarmed, vmath.V(20, 0))

	arrow := SpawnProjectile(w, component.ProjectileComponent{
		Kind:    component.ProjectileArrow,
		Owner:   b,
		Damage:  4,
		Primary: true,
	}, vmath.V(3, 0), vmath.V(-1, 0))

	stepUntil(t, mem, contact, 30, func() bool {
		return character(t, w, a).HP < parameter.CharacterHP
	})

	c := character(t, w, a)
	assert.Equal(t, parameter.CharacterHP-4, c.HP)
	assert.Equal(t, b, c.LastAttacker)
	assert.Equal(t, "arrow", c.LastCause)

	at, ok := w.Registry.Schedule.Get(arrow)
	require.True(t, ok)
	assert.Equal(t, w.Now(), at)
}

func TestContactSystem_KillzoneKillsCharacter(t *testing.T) {
	w, mem := engine.NewTestWorld()
	contact := NewContactSystem(w)
	BuildArena(w)

	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(parameter.ArenaWidth/2, -parameter.KillzoneDepth))

	stepUntil(t, mem, contact, 2, func() bool {
		return w.Registry.KillRequested(a)
	})
	c := character(t, w, a)
	assert.Zero(t, c.HP)
	assert.Equal(t, "killzone", c.LastCause)
}

func TestContactSystem_ShurikenReboundsOffWall(t *testing.T) {
	w, mem := engine.NewTestWorld()
	contact := NewContactSystem(w)
	BuildArena(w)

	body := SpawnProjectile(w, component.ProjectileComponent{
		Kind:     component.ProjectileShuriken,
		Rebounds: parameter.Projectiles[component.ProjectileShuriken].Rebounds,
	}, vmath.V(1, parameter.ArenaHeight/2), vmath.V(-1, 0))

	stepUntil(t, mem, contact, 30, func() bool {
		p, _ := w.Registry.Projectiles.Get(body)
		return p.Rebounds == 0
	})

	at, _ := w.Registry.Schedule.Get(body)
	assert.Greater(t, at, w.Now(), "first touch is within budget")
	assert.Greater(t, mem.LinearVelocity(body).X, 0.0)
}

func TestContactSystem_SkipsStaleShapes(t *testing.T) {
	w, mem := engine.NewTestWorld()
	contact := NewContactSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponUnarmed, vmath.V(20, 0))

	arrow := SpawnProjectile(w, component.ProjectileComponent{Kind: component.ProjectileArrow, Owner: b, Damage: 4}, vmath.V(0.5, 0), vmath.Vec2{})
	mem.SetLinearVelocity(arrow, vmath.Vec2{})
	mem.Step(stepSeconds, 1)

	// Destroyed between the engine step and routing
	destroyNow(w, arrow)
	contact.Update()

	assert.Equal(t, parameter.CharacterHP, character(t, w, a).HP)
	assert.Positive(t, w.Resources.Status.Ints.Get("contact.skipped").Load())
}
