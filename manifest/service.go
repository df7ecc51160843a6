package manifest

import (
	"github.com/lixenwraith/pixel-brawl/audio"
	"github.com/lixenwraith/pixel-brawl/ledger"
	"github.com/lixenwraith/pixel-brawl/registry"
	"github.com/lixenwraith/pixel-brawl/replay"
	"github.com/lixenwraith/pixel-brawl/service"
	"github.com/lixenwraith/pixel-brawl/spectate"
)

// RegisterServices registers all service factories
func RegisterServices() {
	registry.RegisterService("audio", func() service.Service {
		return audio.NewService()
	})

	registry.RegisterService("ledger", func() service.Service {
		return ledger.NewService()
	})

	registry.RegisterService("replay", func() service.Service {
		return replay.NewService()
	})

	registry.RegisterService("spectate", func() service.Service {
		return spectate.NewService()
	})
}

// ActiveServices returns the ordered list of services to instantiate
func ActiveServices() []string {
	return []string{
		"audio",
		"ledger",
		"replay",
		"spectate",
	}
}
