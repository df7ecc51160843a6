package main

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

const (
	overlayFrame = 33 * time.Millisecond
	infoRows     = 2 // Header plus ground line
	ringPoints   = 12
)

var (
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGround = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 110))
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTurret = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleFx     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleFrozen = tcell.StyleDefault.Foreground(tcell.ColorLightCyan).Reverse(true)
	styleFlash  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// overlay draws snapshots as text cells; the arena occupies the screen above the info block
type overlay struct {
	screen tcell.Screen
	arenaW float64
	arenaH float64
}

func newOverlay(screen tcell.Screen, arenaW, arenaH float64) *overlay {
	return &overlay{screen: screen, arenaW: arenaW, arenaH: arenaH}
}

// fieldHeight is the row count reserved for the arena given n characters in the info block
func (o *overlay) fieldHeight(n int) int {
	_, h := o.screen.Size()
	return h - infoRows - n
}

// cell maps arena coordinates (y up) onto screen cells (y down)
func (o *overlay) cell(x, y float64, rows int) (int, int, bool) {
	cols, _ := o.screen.Size()
	if cols <= 0 || rows <= 0 || o.arenaW <= 0 || o.arenaH <= 0 {
		return 0, 0, false
	}
	cx := int(x / o.arenaW * float64(cols))
	cy := rows - 1 - int(y/o.arenaH*float64(rows))
	if cx < 0 || cx >= cols || cy < 0 || cy >= rows {
		return 0, 0, false
	}
	return cx, cy, true
}

func (o *overlay) put(x, y float64, rows int, r rune, style tcell.Style) {
	if cx, cy, ok := o.cell(x, y, rows); ok {
		o.screen.SetContent(cx, cy, r, nil, style)
	}
}

func (o *overlay) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		o.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (o *overlay) draw(snap *engine.Snapshot) {
	o.screen.Clear()
	cols, _ := o.screen.Size()
	if snap == nil {
		o.text(0, 0, "waiting for first frame", styleDim)
		o.screen.Show()
		return
	}

	rows := o.fieldHeight(len(snap.Characters))
	for x := 0; x < cols; x++ {
		o.screen.SetContent(x, rows, '▀', nil, styleGround)
	}

	for _, fx := range snap.Fx {
		switch fx.Kind {
		case engine.FxExplosion, engine.FxDeathBurst:
			o.ring(fx.From, fx.Radius, rows)
		case engine.FxSlashLine, engine.FxArc:
			o.line(fx.From, fx.To, rows)
		default:
			o.put(fx.From.X, fx.From.Y, rows, '+', styleFx)
		}
	}
	for _, t := range snap.Turrets {
		o.put(t.X, t.Y, rows, 'T', styleTurret)
	}
	for _, p := range snap.Projectiles {
		o.put(p.X, p.Y, rows, '*', styleShot)
	}

	for i, c := range snap.Characters {
		style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(c.Color)))
		switch {
		case c.Frozen:
			style = styleFrozen
		case c.Flash:
			style = styleFlash
		}
		o.put(c.X, c.Y, rows, '@', style)
		if c.Weapon != "unarmed" {
			// One cell out along the weapon angle
			tip := vmath.V(c.X, c.Y).Add(vmath.FromAngle(c.Angle).Scale(o.arenaW / float64(cols) * 1.5))
			o.put(tip.X, tip.Y, rows, weaponGlyph(c.Angle), style)
		}
		o.text(0, rows+1+i, characterLine(c), style)
	}

	header := fmt.Sprintf("frame %d  t=%.1fs  q quits", snap.Frame, snap.Time.Seconds())
	o.text(0, rows+1+len(snap.Characters), header, styleDim)
	o.screen.Show()
}

func (o *overlay) ring(center vmath.Vec2, radius float64, rows int) {
	if radius <= 0 {
		o.put(center.X, center.Y, rows, 'o', styleFx)
		return
	}
	for i := 0; i < ringPoints; i++ {
		a := 2 * math.Pi * float64(i) / ringPoints
		o.put(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a), rows, 'o', styleFx)
	}
}

func (o *overlay) line(from, to vmath.Vec2, rows int) {
	d := to.Sub(from)
	n := int(d.Length()*2) + 1
	for i := 0; i <= n; i++ {
		p := from.Add(d.Scale(float64(i) / float64(n)))
		o.put(p.X, p.Y, rows, '·', styleFx)
	}
}

// weaponGlyph picks the closest of four line characters for a direction
func weaponGlyph(angle float64) rune {
	a := math.Mod(angle, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return '─'
	case a < 3*math.Pi/8:
		return '╱'
	case a < 5*math.Pi/8:
		return '│'
	default:
		return '╲'
	}
}

// characterLine formats one info row: name, HP, weapon and damage, kills, passive counters
func characterLine(c engine.CharacterView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %3d/%-3d %-10s dmg %-3d kills %d", c.Name, c.HP, c.MaxHP, c.Weapon, c.Damage, c.Kills)
	if c.Frozen {
		b.WriteString(" [frozen]")
	}
	keys := make([]string, 0, len(c.Passive))
	for k := range c.Passive {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%d", k, c.Passive[k])
	}
	return b.String()
}

// runOverlay owns the terminal until ctx ends or the viewer quits
func runOverlay(ctx context.Context, latest *atomic.Pointer[engine.Snapshot], arenaW, arenaH float64) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("overlay screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("overlay init: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			err = fmt.Errorf("overlay panic: %v\n%s", r, debug.Stack())
			return
		}
		screen.Fini()
	}()

	o := newOverlay(screen, arenaW, arenaH)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(overlayFrame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return errQuit
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			o.draw(latest.Load())
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
