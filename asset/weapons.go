package asset

import (
	"fmt"
	"sync"
)

// Weapon art is laid out along +X from the grip; column 0 sits against the owner

const (
	steel  = 0xC0C8D8
	dark   = 0x606878
	wood   = 0x8B5A2B
	gold   = 0xD4AF37
	frost  = 0x9AD8FF
	spark  = 0xFFF060
	venom  = 0x6ACD3C
	blood  = 0xB0102A
	brass  = 0xB8862E
	glass  = 0x7FE0C8
	powder = 0xE04040
	fuse   = 0xFFA500
)

var legend = map[rune]uint32{
	's': steel,
	'd': dark,
	'w': wood,
	'g': gold,
	'f': frost,
	'e': spark,
	'v': venom,
	'b': blood,
	'r': brass,
	'l': glass,
	'p': powder,
	'u': fuse,
}

var builtinArt = []struct {
	name string
	rows string
}{
	{"sword", `
..g.........
wwgsssssssss
..g.........`},
	{"dagger", `
.g....
wgssss
.g....`},
	{"bow", `
...wwd
..w..d
.w...d
w....d
.w...d
..w..d
...wwd`},
	{"knife", `
wwsss
wwss.`},
	{"shuriken", `
..s..
.sds.
ssdss
.sds.
..s..`},
	{"froststaff", `
.......fff
wwwwwwwfff
.......fff`},
	{"bomb", `
.....u.
..ddd..
.ddddd.
wdddddd
.ddddd.
..ddd..`},
	{"electricstaff", `
.......e.e
wwwwwwwddd
.......e.e`},
	{"blowgun", `
wwwwwwwwdd`},
	{"wrench", `
.......ss.
wwwwwsss..
.......ss.`},
	{"flask", `
..lll..
wwlllll
..lll..`},
	{"firework", `
......pp
wwwwwpppu
......pp`},
	{"katana", `
..g..........
wwgssssssssss
..g.........s`},
	{"vampire", `
..b........
wwbbbbbbbbb
..b........`},
	{"axe", `
......sss
wwwwwwsss
......sss
.......s.`},
	{"hammer", `
......ddd
wwwwwwddd
......ddd`},
	{"spear", `
.........s.
wwwwwwwwsss
.........s.`},
}

var builtinOnce sync.Once

// registerBuiltins installs the weapon art set on first lookup
func registerBuiltins() {
	builtinOnce.Do(func() {
		for _, b := range builtinArt {
			art, err := Parse(b.name, b.rows, legend)
			if err != nil {
				panic(fmt.Sprintf("builtin pixel art: %v", err))
			}
			registryMu.Lock()
			registry[art.Name] = art
			registryMu.Unlock()
		}
	})
}
