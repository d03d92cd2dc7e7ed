package bot

import (
	"time"

	"github.com/verte-zerg/cancatch/internal/clock"
	"github.com/verte-zerg/cancatch/internal/game"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
)

// SimStep is the virtual time advanced between checks for round end.
const SimStep = 50 * time.Millisecond

// Simulate plays rounds back to back on a virtual clock. Each finished round
// is passed to record and returned in play order.
func Simulate(cfg model.Config, profile Profile, rounds int, record func(model.RoundStats)) []model.RoundStats {
	v := clock.NewVirtual()
	spawns := generator.ForConfig(cfg)
	decisions := generator.ForConfig(cfg)
	if cfg.Seed != 0 {
		decisions = generator.NewSeeded(cfg.Seed + 1)
	}
	player := New(v, decisions, profile)

	var played []model.RoundStats
	session := game.NewSession(cfg, v, player, spawns, game.WithRoundHook(func(r model.RoundStats) {
		played = append(played, r)
		if record != nil {
			record(r)
		}
	}))

	for i := 0; i < rounds; i++ {
		session.Start()
		for session.IsActive() {
			v.Advance(SimStep)
		}
	}
	return played
}
