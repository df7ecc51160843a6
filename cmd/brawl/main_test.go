package main

import (
	"bytes"
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/ledger"
	"github.com/lixenwraith/pixel-brawl/manifest"
	"github.com/lixenwraith/pixel-brawl/registry"
	"github.com/lixenwraith/pixel-brawl/replay"
	"github.com/lixenwraith/pixel-brawl/spectate"
	"github.com/lixenwraith/pixel-brawl/system"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func matchWorld(t *testing.T, roster ...component.RosterEntry) *engine.World {
	t.Helper()
	manifest.RegisterSystems()
	w, _ := engine.NewTestWorld()
	w.Registry.Roster = roster
	require.NoError(t, manifest.AddSystems(w, registry.Options{SubSteps: 1, MatchID: func() string { return "m" }}))
	system.StartMatch(w, "m-1")
	w.DispatchEvents()
	return w
}

func newLoop(t *testing.T, w *engine.World, rounds int) *simLoop {
	t.Helper()
	rep := replay.NewService()
	require.NoError(t, rep.Init(replay.Config{}))
	spec := spectate.NewService()
	require.NoError(t, spec.Init(spectate.Config{}))
	l := &simLoop{
		world:    w,
		step:     10 * time.Millisecond,
		rounds:   rounds,
		replay:   rep,
		spectate: spec,
		latest:   &atomic.Pointer[engine.Snapshot]{},
		log:      zerolog.Nop(),
	}
	for _, s := range w.Systems() {
		if m, ok := s.(*system.MatchSystem); ok {
			l.matchSys = m
		}
	}
	require.NotNil(t, l.matchSys)
	return l
}

var (
	red  = component.RosterEntry{Name: "red", Weapon: component.WeaponSword, Color: core.RGB{R: 255}, Position: vmath.V(10, 12)}
	blue = component.RosterEntry{Name: "blue", Weapon: component.WeaponBow, Color: core.RGB{B: 255}, Position: vmath.V(30, 12)}
)

func TestSimLoop_RoundsWaitForPause(t *testing.T) {
	// A lone character decides the match at once
	w := matchWorld(t, red)
	l := newLoop(t, w, 2)

	assert.False(t, l.advanceRounds(), "first observation starts the pause")
	assert.Equal(t, 1, l.played)
	assert.False(t, l.advanceRounds(), "pause not elapsed")

	w.Resources.Time.Now += roundPause
	assert.False(t, l.advanceRounds(), "second round starts")
	assert.Equal(t, 1, w.Registry.Characters.Len())

	assert.False(t, l.advanceRounds())
	assert.Equal(t, 2, l.played)
	w.Resources.Time.Now += roundPause
	assert.True(t, l.advanceRounds(), "all rounds played")
}

func TestSimLoop_RunningMatchNeverAdvances(t *testing.T) {
	w := matchWorld(t, red, blue)
	l := newLoop(t, w, 1)
	require.True(t, l.matchSys.Running())
	assert.False(t, l.advanceRounds())
	assert.Zero(t, l.played)
}

func TestSimLoop_StopsAtMaxDuration(t *testing.T) {
	w := matchWorld(t, red, blue)
	l := newLoop(t, w, 0)
	l.maxTime = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := l.run(ctx)
	assert.ErrorIs(t, err, errQuit)
	assert.GreaterOrEqual(t, w.Now(), l.maxTime)

	snap := l.latest.Load()
	require.NotNil(t, snap)
	assert.Len(t, snap.Characters, 2)
	assert.GreaterOrEqual(t, w.Resources.Status.Gauges.Get("loop.steps_peak").Get(), 1.0)
}

func TestSimLoop_ContextCancel(t *testing.T) {
	w := matchWorld(t, red, blue)
	l := newLoop(t, w, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.run(ctx), context.Canceled)
}

func screenRow(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	row := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		row = append(row, r)
	}
	return string(row)
}

func TestOverlay_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 20)

	o := newOverlay(screen, 40, 20)
	snap := &engine.Snapshot{
		Frame: 12,
		Time:  time.Second,
		Characters: []engine.CharacterView{
			{Name: "red", HP: 80, MaxHP: 100, Weapon: "sword", Damage: 3, Color: 0xff0000, X: 10.5, Y: 5.5, Passive: map[string]int{"hits": 4}},
			{Name: "blue", HP: 100, MaxHP: 100, Weapon: "unarmed", Damage: 1, Color: 0x0000ff, X: 30.5, Y: 5.5, Frozen: true},
		},
		Projectiles: []engine.ProjectileView{{Kind: "arrow", X: 20.5, Y: 10.5}},
		Turrets:     []engine.TurretView{{X: 2.5, Y: 1.5}},
	}
	o.draw(snap)

	// 20 rows minus two info rows minus one row per character
	rows := o.fieldHeight(2)
	require.Equal(t, 16, rows)

	cx, cy, ok := o.cell(10.5, 5.5, rows)
	require.True(t, ok)
	r, _, style, _ := screen.GetContent(cx, cy)
	assert.Equal(t, '@', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.NewHexColor(0xff0000), fg)

	cx, cy, _ = o.cell(30.5, 5.5, rows)
	_, _, style, _ = screen.GetContent(cx, cy)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "frozen characters draw reversed")

	cx, cy, _ = o.cell(20.5, 10.5, rows)
	r, _, _, _ = screen.GetContent(cx, cy)
	assert.Equal(t, '*', r)

	assert.Contains(t, screenRow(screen, rows+1), "red")
	assert.Contains(t, screenRow(screen, rows+1), "hits=4")
	assert.Contains(t, screenRow(screen, rows+2), "[frozen]")
	assert.Contains(t, screenRow(screen, rows+3), "frame 12")
}

func TestOverlay_WaitsForFirstFrame(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 10)

	newOverlay(screen, 40, 20).draw(nil)
	assert.Contains(t, screenRow(screen, 0), "waiting")
}

func TestOverlay_CellBounds(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)
	o := newOverlay(screen, 40, 20)

	_, cy, ok := o.cell(0, 0, 18)
	require.True(t, ok)
	assert.Equal(t, 17, cy, "ground sits on the bottom field row")

	_, _, ok = o.cell(-1, 5, 18)
	assert.False(t, ok)
	_, _, ok = o.cell(5, 25, 18)
	assert.False(t, ok)
}

func TestWeaponGlyph(t *testing.T) {
	assert.Equal(t, '─', weaponGlyph(0))
	assert.Equal(t, '─', weaponGlyph(3.14159))
	assert.Equal(t, '│', weaponGlyph(1.5708))
	assert.Equal(t, '╱', weaponGlyph(0.7854))
	assert.Equal(t, '╲', weaponGlyph(-0.7854))
}

func TestPrintStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brawl.db")
	store, err := ledger.Open(path)
	require.NoError(t, err)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.BeginMatch(&event.MatchStartPayload{
		MatchID: "m-1",
		Characters: []event.ParticipantInfo{
			{Body: 1, Name: "red", Weapon: "sword"},
			{Body: 2, Name: "blue", Weapon: "bow"},
		},
	}, start))
	require.NoError(t, store.EndMatch("m-1", "red", "sword", "", 4*time.Second, start.Add(5*time.Second)))
	require.NoError(t, store.Close())

	var buf bytes.Buffer
	require.NoError(t, printStats(&buf, path))
	out := buf.String()
	assert.Contains(t, out, "weapon")
	assert.Contains(t, out, "sword")
	assert.Contains(t, out, "bow")
	assert.Contains(t, out, "red (sword)")
	assert.Contains(t, out, "4.0s")
}

func TestQuitKey(t *testing.T) {
	assert.True(t, quitKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, quitKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, quitKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}
