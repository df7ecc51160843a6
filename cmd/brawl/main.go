package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/pixel-brawl/audio"
	"github.com/lixenwraith/pixel-brawl/config"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/ledger"
	"github.com/lixenwraith/pixel-brawl/logging"
	"github.com/lixenwraith/pixel-brawl/manifest"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/registry"
	"github.com/lixenwraith/pixel-brawl/replay"
	"github.com/lixenwraith/pixel-brawl/service"
	"github.com/lixenwraith/pixel-brawl/spectate"
	"github.com/lixenwraith/pixel-brawl/status"
	"github.com/lixenwraith/pixel-brawl/system"
)

var (
	configFlag   = flag.String("config", "", "Config file (toml, json or yaml); empty uses defaults and BRAWL_ env")
	headlessFlag = flag.Bool("headless", false, "Run without the terminal overlay")
	roundsFlag   = flag.Int("rounds", 1, "Matches to play before exiting; 0 plays until interrupted")
	levelFlag    = flag.String("log-level", "", "Override log.level")
	statsFlag    = flag.Bool("stats", false, "Print ledger weapon statistics and exit")
)

const (
	roundPause    = 3 * time.Second // Sim time shown between a match over and the next round
	recentMatches = 10
)

// errQuit ends the run group without reporting an error
var errQuit = errors.New("quit")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "brawl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *levelFlag != "" {
		cfg.Log.Level = *levelFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The overlay owns the terminal; console logging would tear it
	var console io.Writer = os.Stderr
	if !*headlessFlag && !*statsFlag {
		console = nil
	}
	log, logCloser, err := logging.Setup(cfg.Log.Level, cfg.Log.File, console)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if *statsFlag {
		return printStats(os.Stdout, cfg.Ledger.Path)
	}

	matchID := uuid.NewString()
	step := cfg.Sim.StepInterval()

	manifest.RegisterSystems()
	manifest.RegisterServices()

	hub := service.NewHub()
	for _, name := range manifest.ActiveServices() {
		factory, ok := registry.GetService(name)
		if !ok {
			return fmt.Errorf("service %q not registered", name)
		}
		if err := hub.Register(factory()); err != nil {
			return err
		}
	}
	err = hub.InitAll(map[string][]any{
		"audio": {audio.Config{
			Enabled:    cfg.Audio.Enabled,
			Volume:     cfg.Audio.Volume,
			SampleRate: audio.DefaultConfig().SampleRate,
			ArenaWidth: cfg.Sim.ArenaWidth,
		}, log},
		"ledger":   {ledger.Config{Enabled: cfg.Ledger.Enabled, Path: cfg.Ledger.Path}, log},
		"replay":   {replay.Config{Enabled: cfg.Replay.Enabled, Path: cfg.Replay.Path, Every: cfg.Replay.Every, MatchID: matchID, Step: step}, log},
		"spectate": {spectate.Config{Enabled: cfg.Spectate.Enabled, Addr: cfg.Spectate.Addr, Every: cfg.Spectate.Every}, log},
	})
	if err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	if off := hub.Disabled(); len(off) > 0 {
		log.Info().Strs("services", off).Msg("running without")
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			log.Warn().Err(err).Msg("service shutdown")
		}
	}()

	w := engine.NewWorld(physics.NewMemWorld(), cfg.ToTuning(), log, cfg.Sim.Seed)
	hub.ContributeAll(w.Resources.ServiceBridge)
	w.Registry.Roster = cfg.RosterEntries()

	if err := manifest.AddSystems(w, registry.Options{SubSteps: cfg.Sim.SubSteps, MatchID: uuid.NewString}); err != nil {
		return err
	}
	for _, name := range hub.Names() {
		svc, _ := hub.Get(name)
		if h, ok := svc.(engine.EventHandler); ok {
			w.AddHandler(h)
		}
	}

	if reg, err := w.Resources.Status.Observe(status.Meter()); err != nil {
		log.Warn().Err(err).Msg("telemetry export unavailable")
	} else {
		defer reg.Unregister()
	}

	w.RunSafe(func() { system.StartMatch(w, matchID) })
	w.DispatchEvents()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	latest := &atomic.Pointer[engine.Snapshot]{}
	sim := &simLoop{
		world:    w,
		step:     step,
		rounds:   *roundsFlag,
		maxTime:  cfg.Sim.MaxDuration,
		replay:   service.MustGet[*replay.ReplayService](hub, "replay"),
		spectate: service.MustGet[*spectate.SpectateService](hub, "spectate"),
		latest:   latest,
		log:      log,
	}
	g.Go(func() error { return sim.run(ctx) })

	if !*headlessFlag {
		g.Go(func() error { return runOverlay(ctx, latest, cfg.Sim.ArenaWidth, cfg.Sim.ArenaHeight) })
	}

	err = g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if led := service.MustGet[*ledger.LedgerService](hub, "ledger"); led != nil {
		written, dropped, failed := led.Counters()
		log.Info().Int64("written", written).Int64("dropped", dropped).Int64("failed", failed).Msg("ledger totals")
	}
	return err
}

// simLoop drives World.Step from wall time and fans snapshots out to the outer consumers
type simLoop struct {
	world    *engine.World
	step     time.Duration
	rounds   int
	maxTime  time.Duration
	replay   *replay.ReplayService
	spectate *spectate.SpectateService
	latest   *atomic.Pointer[engine.Snapshot]
	log      zerolog.Logger

	played   int
	overAt   time.Duration
	waiting  bool
	matchSys *system.MatchSystem
}

func (l *simLoop) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation panic: %v\n%s", r, debug.Stack())
		}
	}()

	for _, s := range l.world.Systems() {
		if m, ok := s.(*system.MatchSystem); ok {
			l.matchSys = m
		}
	}

	stepper := engine.NewFixedStepper(engine.NewMonotonicTimeProvider(), l.step)
	ticker := time.NewTicker(l.step)
	defer ticker.Stop()

	stepCost := l.world.Resources.Status.Gauges.Get("loop.step_ms")
	catchUp := l.world.Resources.Status.Gauges.Get("loop.steps_peak")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		n := stepper.Steps()
		if n == 0 {
			continue
		}
		start := time.Now()
		for i := 0; i < n; i++ {
			l.world.Step(l.step)
		}
		stepCost.Set(float64(time.Since(start).Microseconds()) / 1000 / float64(n))
		catchUp.Peak(float64(n))

		snap := l.world.Snapshot()
		l.latest.Store(snap)
		l.replay.Record(snap)
		l.spectate.Publish(snap)

		if l.maxTime > 0 && l.world.Now() >= l.maxTime {
			l.log.Info().Dur("sim_time", l.world.Now()).Msg("max duration reached")
			return errQuit
		}
		if done := l.advanceRounds(); done {
			return errQuit
		}
	}
}

// advanceRounds starts the next match after a pause; reports true when all rounds are played
func (l *simLoop) advanceRounds() bool {
	if l.matchSys == nil || l.matchSys.Running() {
		return false
	}
	now := l.world.Now()
	if !l.waiting {
		l.waiting = true
		l.overAt = now
		l.played++
		return false
	}
	if now-l.overAt < roundPause {
		return false
	}
	if l.rounds > 0 && l.played >= l.rounds {
		return true
	}
	l.waiting = false
	l.world.RunSafe(func() { system.RebuildWorld(l.world, uuid.NewString(), "next round") })
	l.world.DispatchEvents()
	return false
}

// printStats prints the per-weapon ledger aggregate
func printStats(out io.Writer, path string) error {
	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.WeaponStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%-14s %7s %6s %6s %5s\n", "weapon", "entries", "kills", "deaths", "wins")
	for _, st := range stats {
		fmt.Fprintf(out, "%-14s %7d %6d %6d %5d\n", st.Weapon, st.Entries, st.Kills, st.Deaths, st.Wins)
	}

	recent, err := store.RecentMatches(recentMatches)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	for _, m := range recent {
		result := "draw"
		if m.Winner != "" {
			result = m.Winner + " (" + m.WinnerWeapon + ")"
		}
		if m.EndedAt == nil {
			result = "unfinished"
		}
		fmt.Fprintf(out, "%s  %-24s %6.1fs  %s\n", m.StartedAt.Format(time.DateTime), result, float64(m.SimTimeMs)/1000, m.Reason)
	}
	return nil
}
