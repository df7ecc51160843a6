package asset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PadsAndMapsLegend(t *testing.T) {
	art, err := Parse("t", `
s.
sss`, map[rune]uint32{'s': 0x112233})
	require.NoError(t, err)
	assert.Equal(t, 3, art.Width)
	assert.Equal(t, 2, art.Height)
	assert.Equal(t, uint32(0x112233), art.At(0, 0))
	assert.Zero(t, art.At(1, 0))
	assert.Zero(t, art.At(2, 0), "short rows padded transparent")
	assert.Zero(t, art.At(-1, 0))
}

func TestParse_UnknownRune(t *testing.T) {
	_, err := Parse("t", "x", map[rune]uint32{})
	assert.Error(t, err)
}

func TestClassifyCells_ContourAndInterior(t *testing.T) {
	art, err := Parse("t", `
sss
sss
sss`, map[rune]uint32{'s': 1})
	require.NoError(t, err)

	cells := ClassifyCells(art)
	for i, c := range cells {
		if i == 4 {
			assert.Equal(t, CellSensor, c, "center is enclosed")
		} else {
			assert.Equal(t, CellPhysical, c)
		}
	}
}

func TestClassifyCells_Transparent(t *testing.T) {
	art, err := Parse("t", "s.s", map[rune]uint32{'s': 1})
	require.NoError(t, err)
	assert.Equal(t, []CellType{CellPhysical, CellVoid, CellPhysical}, ClassifyCells(art))
}

func TestFromPalette(t *testing.T) {
	art, err := FromPalette("p", 2, 1, []uint8{0, 1}, []uint32{0, 0xFF0000})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 0xFF0000}, art.Pixels)
	assert.Equal(t, uint8(0xFF), art.Color(1, 0).R)

	_, err = FromPalette("p", 2, 1, []uint8{0, 5}, []uint32{0})
	assert.Error(t, err)

	_, err = FromPalette("p", 2, 2, []uint8{0}, nil)
	assert.Error(t, err)
}

func TestRegistry_BuiltinsAndMissing(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "sword")
	assert.Contains(t, names, "spear")
	assert.IsNonDecreasing(t, names)

	sword, err := Get("sword")
	require.NoError(t, err)
	assert.Equal(t, "sword", sword.Name)

	_, err = Get("no-such-weapon")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRegistry_RegisterUnregister(t *testing.T) {
	art, err := FromPalette("custom", 1, 1, []uint8{1}, []uint32{0, 7})
	require.NoError(t, err)

	Register(art)
	got, err := Get("custom")
	require.NoError(t, err)
	assert.Same(t, art, got)

	Unregister("custom")
	_, err = Get("custom")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuiltins_EveryWeaponHasSolidCells(t *testing.T) {
	for _, name := range Names() {
		art, err := Get(name)
		require.NoError(t, err)
		physical := 0
		for _, c := range ClassifyCells(art) {
			if c == CellPhysical {
				physical++
			}
		}
		assert.Positive(t, physical, name)
	}
}
