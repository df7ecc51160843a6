package manifest

import (
	"fmt"

	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/registry"
	"github.com/lixenwraith/pixel-brawl/system"
)

// RegisterSystems registers all system factories with the registry
func RegisterSystems() {
	registry.RegisterSystem("integrity", func(w *engine.World, o registry.Options) engine.System {
		return system.NewIntegritySystem(w, o.MatchID)
	})
	registry.RegisterSystem("contact", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewContactSystem(w)
	})
	registry.RegisterSystem("freeze", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewFreezeSystem(w)
	})
	registry.RegisterSystem("physics", func(w *engine.World, o registry.Options) engine.System {
		return system.NewPhysicsSystem(w, o.SubSteps)
	})
	registry.RegisterSystem("freeze_guard", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewFreezeGuardSystem(w)
	})
	registry.RegisterSystem("clash", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewClashSystem(w)
	})
	registry.RegisterSystem("weapon", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewWeaponSystem(w)
	})
	registry.RegisterSystem("turret", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewTurretSystem(w)
	})
	registry.RegisterSystem("passive", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewPassiveSystem(w)
	})
	registry.RegisterSystem("status", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewStatusSystem(w)
	})
	registry.RegisterSystem("destroy", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewDestroySystem(w)
	})
	registry.RegisterSystem("death", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewDeathSystem(w)
	})
	registry.RegisterSystem("match", func(w *engine.World, _ registry.Options) engine.System {
		return system.NewMatchSystem(w)
	})
}

// ActiveSystems returns the ordered list of systems to instantiate
// Run order is decided by priority; this order only affects event handler registration
func ActiveSystems() []string {
	return []string{
		"integrity",
		"contact",
		"freeze",
		"physics",
		"freeze_guard",
		"clash",
		"weapon",
		"turret",
		"passive",
		"status",
		"destroy",
		"death",
		"match",
	}
}

// AddSystems instantiates every active system into the world
func AddSystems(w *engine.World, opts registry.Options) error {
	for _, name := range ActiveSystems() {
		factory, ok := registry.GetSystem(name)
		if !ok {
			return fmt.Errorf("system not registered: %s", name)
		}
		w.AddSystem(factory(w, opts))
	}
	return nil
}
