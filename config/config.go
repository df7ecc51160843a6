package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// EnvPrefix is prepended to every environment override, e.g. BRAWL_SIM_TICK_RATE
const EnvPrefix = "BRAWL"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type SimConfig struct {
	TickRate    int           `mapstructure:"tick_rate"`
	SubSteps    int           `mapstructure:"substeps"`
	ArenaWidth  float64       `mapstructure:"arena_width"`
	ArenaHeight float64       `mapstructure:"arena_height"`
	Seed        uint64        `mapstructure:"seed"`
	MaxDuration time.Duration `mapstructure:"max_duration"` // 0 runs until the match is over
}

// StepInterval is the fixed step derived from the tick rate
func (s SimConfig) StepInterval() time.Duration {
	if s.TickRate <= 0 {
		return parameter.StepInterval
	}
	return time.Second / time.Duration(s.TickRate)
}

type CombatConfig struct {
	CharacterHP     int     `mapstructure:"character_hp"`
	CharacterRadius float64 `mapstructure:"character_radius"`

	MeleeFreeze      time.Duration `mapstructure:"melee_freeze"`
	ProjectileFreeze time.Duration `mapstructure:"projectile_freeze"`
	FrostFreeze      time.Duration `mapstructure:"frost_freeze"`

	DefaultCooldown    time.Duration `mapstructure:"default_cooldown"`
	ProjectileCooldown time.Duration `mapstructure:"projectile_cooldown"`
	MinCooldown        time.Duration `mapstructure:"min_cooldown"`

	MaxUnfreezeSpeed        float64 `mapstructure:"max_unfreeze_speed"`
	MaxUnfreezeAngularSpeed float64 `mapstructure:"max_unfreeze_angular_speed"`

	ExplosionRadius float64 `mapstructure:"explosion_radius"`
	ExplosionDamage int     `mapstructure:"explosion_damage"`

	PoisonInterval time.Duration `mapstructure:"poison_interval"`
	PoisonDamage   int           `mapstructure:"poison_damage"`
	PoisonTicks    int           `mapstructure:"poison_ticks"`
	SlashInterval  time.Duration `mapstructure:"slash_interval"`
	SlashDamage    int           `mapstructure:"slash_damage"`
	SlashTicks     int           `mapstructure:"slash_ticks"`
}

// RosterConfig is one participant; Color is "#rrggbb"
type RosterConfig struct {
	Name   string  `mapstructure:"name"`
	Weapon string  `mapstructure:"weapon"`
	Color  string  `mapstructure:"color"`
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

type LedgerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Every   int    `mapstructure:"every"` // Frames between recorded snapshots
}

type SpectateConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Every   int    `mapstructure:"every"` // Frames between published snapshots
}

// Config is the full runtime configuration of the sandbox
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Sim      SimConfig      `mapstructure:"sim"`
	Combat   CombatConfig   `mapstructure:"combat"`
	Roster   []RosterConfig `mapstructure:"roster"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Replay   ReplayConfig   `mapstructure:"replay"`
	Spectate SpectateConfig `mapstructure:"spectate"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("sim.tick_rate", 60)
	v.SetDefault("sim.substeps", parameter.SubSteps)
	v.SetDefault("sim.arena_width", parameter.ArenaWidth)
	v.SetDefault("sim.arena_height", parameter.ArenaHeight)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.max_duration", "0s")

	v.SetDefault("combat.character_hp", parameter.CharacterHP)
	v.SetDefault("combat.character_radius", parameter.CharacterRadius)
	v.SetDefault("combat.melee_freeze", parameter.MeleeFreezeDuration.String())
	v.SetDefault("combat.projectile_freeze", parameter.ProjectileFreezeDuration.String())
	v.SetDefault("combat.frost_freeze", parameter.FrostFreezeDuration.String())
	v.SetDefault("combat.default_cooldown", parameter.DefaultHitCooldown.String())
	v.SetDefault("combat.projectile_cooldown", parameter.ProjectileHitCooldown.String())
	v.SetDefault("combat.min_cooldown", parameter.MinHitCooldown.String())
	v.SetDefault("combat.max_unfreeze_speed", parameter.MaxUnfreezeSpeed)
	v.SetDefault("combat.max_unfreeze_angular_speed", parameter.MaxUnfreezeAngularSpeed)
	v.SetDefault("combat.explosion_radius", parameter.ExplosionRadius)
	v.SetDefault("combat.explosion_damage", parameter.ExplosionDamage)
	v.SetDefault("combat.poison_interval", parameter.PoisonInterval.String())
	v.SetDefault("combat.poison_damage", parameter.PoisonDamage)
	v.SetDefault("combat.poison_ticks", parameter.PoisonTicks)
	v.SetDefault("combat.slash_interval", parameter.SlashInterval.String())
	v.SetDefault("combat.slash_damage", parameter.SlashDamage)
	v.SetDefault("combat.slash_ticks", parameter.SlashTicks)

	v.SetDefault("roster", []map[string]any{
		{"name": "red", "weapon": "sword", "color": "#e04040", "x": 10.0, "y": 12.0},
		{"name": "blue", "weapon": "bow", "color": "#4060e0", "x": 30.0, "y": 12.0},
	})

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.7)

	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.path", "brawl.db")

	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.path", "brawl.replay")
	v.SetDefault("replay.every", 6)

	v.SetDefault("spectate.enabled", false)
	v.SetDefault("spectate.addr", "127.0.0.1:8088")
	v.SetDefault("spectate.every", 2)
}

// Load reads defaults, an optional config file (TOML, JSON or YAML by extension) and BRAWL_ env overrides
// An empty path skips the file
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations the simulation cannot run
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: sim.tick_rate must be positive, got %d", ErrInvalid, c.Sim.TickRate))
	}
	if c.Sim.SubSteps <= 0 {
		errs = append(errs, fmt.Errorf("%w: sim.substeps must be positive, got %d", ErrInvalid, c.Sim.SubSteps))
	}
	if c.Sim.ArenaWidth <= 0 || c.Sim.ArenaHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: arena size must be positive", ErrInvalid))
	}
	if c.Combat.CharacterHP <= 0 {
		errs = append(errs, fmt.Errorf("%w: combat.character_hp must be positive", ErrInvalid))
	}
	if c.Combat.MinCooldown <= 0 {
		errs = append(errs, fmt.Errorf("%w: combat.min_cooldown must be positive", ErrInvalid))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("%w: audio.volume %.2f outside [0,1]", ErrInvalid, c.Audio.Volume))
	}
	if len(c.Roster) == 0 {
		errs = append(errs, fmt.Errorf("%w: roster is empty", ErrInvalid))
	}
	for i, r := range c.Roster {
		if _, ok := component.ParseWeaponKind(r.Weapon); !ok {
			errs = append(errs, fmt.Errorf("%w: roster[%d]: unknown weapon %q", ErrInvalid, i, r.Weapon))
		}
		if _, err := ParseColor(r.Color); err != nil {
			errs = append(errs, fmt.Errorf("%w: roster[%d]: %v", ErrInvalid, i, err))
		}
	}
	if c.Spectate.Enabled && c.Spectate.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: spectate.addr is empty", ErrInvalid))
	}
	return errors.Join(errs...)
}

// ToTuning overlays the combat and arena sections on the constant defaults
func (c *Config) ToTuning() parameter.Tuning {
	t := parameter.DefaultTuning()
	cc := c.Combat

	t.ArenaWidth = c.Sim.ArenaWidth
	t.ArenaHeight = c.Sim.ArenaHeight

	t.CharacterHP = cc.CharacterHP
	t.CharacterRadius = cc.CharacterRadius
	t.MeleeFreeze = cc.MeleeFreeze
	t.ProjectileFreeze = cc.ProjectileFreeze
	t.FrostFreeze = cc.FrostFreeze
	t.DefaultCooldown = cc.DefaultCooldown
	t.ProjectileCooldown = cc.ProjectileCooldown
	t.MinCooldown = cc.MinCooldown
	t.MaxUnfreezeSpeed = cc.MaxUnfreezeSpeed
	t.MaxUnfreezeAngularSpeed = cc.MaxUnfreezeAngularSpeed
	t.ExplosionRadius = cc.ExplosionRadius
	t.ExplosionDamage = cc.ExplosionDamage
	t.PoisonInterval = cc.PoisonInterval
	t.PoisonDamage = cc.PoisonDamage
	t.PoisonTicks = cc.PoisonTicks
	t.SlashInterval = cc.SlashInterval
	t.SlashDamage = cc.SlashDamage
	t.SlashTicks = cc.SlashTicks
	return t
}

// RosterEntries converts the roster section; call after Validate
// Unnamed entries are named after their weapon and position in the list
func (c *Config) RosterEntries() []component.RosterEntry {
	out := make([]component.RosterEntry, 0, len(c.Roster))
	for i, r := range c.Roster {
		kind, _ := component.ParseWeaponKind(r.Weapon)
		color, _ := ParseColor(r.Color)
		name := r.Name
		if name == "" {
			name = kind.String() + "-" + strconv.Itoa(i+1)
		}
		out = append(out, component.RosterEntry{
			Name:     name,
			Weapon:   kind,
			Color:    color,
			Position: vmath.V(r.X, r.Y),
		})
	}
	return out
}

// ParseColor accepts "#rrggbb" or "rrggbb"; empty is white
func ParseColor(s string) (core.RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return core.RGBWhite, nil
	}
	if len(s) != 6 {
		return core.RGB{}, fmt.Errorf("color %q is not rrggbb", s)
	}
	hex, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return core.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return core.RGBFromHex(uint32(hex)), nil
}
