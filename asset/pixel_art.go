package asset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lixenwraith/pixel-brawl/core"
)

// ErrNotFound is returned when no pixel art is registered under a name
var ErrNotFound = errors.New("asset not found")

// PixelArt is a colored cell grid; a zero pixel is transparent
// Non-zero pixels are 0xRRGGBB or 0xAARRGGBB, alpha ignored
type PixelArt struct {
	Name   string
	Width  int
	Height int
	Pixels []uint32
}

// At returns the pixel at column x, row y, 0 outside the grid
func (a *PixelArt) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return 0
	}
	return a.Pixels[y*a.Width+x]
}

// Color returns the RGB of the pixel at (x, y)
func (a *PixelArt) Color(x, y int) core.RGB {
	p := a.At(x, y)
	return core.RGB{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// CellType classifies a pixel for collision building
type CellType uint8

const (
	CellVoid     CellType = iota // Transparent
	CellPhysical                 // Contour, solid collision
	CellSensor                   // Interior, sensor only
)

// ClassifyCells marks contour pixels Physical and fully enclosed pixels Sensor
// A pixel is interior when all four direct neighbors are colored
func ClassifyCells(a *PixelArt) []CellType {
	out := make([]CellType, a.Width*a.Height)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.At(x, y) == 0 {
				continue
			}
			if a.At(x-1, y) != 0 && a.At(x+1, y) != 0 && a.At(x, y-1) != 0 && a.At(x, y+1) != 0 {
				out[y*a.Width+x] = CellSensor
			} else {
				out[y*a.Width+x] = CellPhysical
			}
		}
	}
	return out
}

// FromPalette builds pixel art from palette indices; index 0 is transparent
func FromPalette(name string, w, h int, indices []uint8, palette []uint32) (*PixelArt, error) {
	if w <= 0 || h <= 0 || len(indices) != w*h {
		return nil, fmt.Errorf("asset %s: %d indices for %dx%d grid", name, len(indices), w, h)
	}
	art := &PixelArt{Name: name, Width: w, Height: h, Pixels: make([]uint32, w*h)}
	for i, idx := range indices {
		if idx == 0 {
			continue
		}
		if int(idx) >= len(palette) {
			return nil, fmt.Errorf("asset %s: palette index %d out of range", name, idx)
		}
		art.Pixels[i] = palette[idx]
	}
	return art, nil
}

// Parse builds pixel art from text rows; '.' and ' ' are transparent, other runes map through legend
// Rows are padded to the widest row
func Parse(name, rows string, legend map[rune]uint32) (*PixelArt, error) {
	var lines []string
	for _, line := range strings.Split(rows, "\n") {
		line = strings.TrimRight(line, " \t")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("asset %s: empty grid", name)
	}

	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}

	art := &PixelArt{Name: name, Width: width, Height: len(lines), Pixels: make([]uint32, width*len(lines))}
	for y, line := range lines {
		for x, r := range []rune(line) {
			if r == '.' || r == ' ' {
				continue
			}
			c, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("asset %s: rune %q not in legend", name, r)
			}
			art.Pixels[y*width+x] = c
		}
	}
	return art, nil
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*PixelArt)
)

// Register stores art under its name, replacing any previous entry
func Register(art *PixelArt) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[art.Name] = art
}

// Unregister removes a name; used to simulate a missing asset
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// Get returns the art registered under name, ErrNotFound if absent
func Get(name string) (*PixelArt, error) {
	registerBuiltins()
	registryMu.RLock()
	defer registryMu.RUnlock()
	art, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("pixel art %q: %w", name, ErrNotFound)
	}
	return art, nil
}

// Names lists every registered name in sorted order
func Names() []string {
	registerBuiltins()
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
