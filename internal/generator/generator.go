// Package generator picks spawn targets for the grid.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/cancatch/internal/model"
)

// Generator produces randomized spawn choices.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed for reproducible rounds.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// ForConfig seeds from cfg.Seed when set, otherwise from the clock.
func ForConfig(cfg model.Config) *Generator {
	if cfg.Seed != 0 {
		return NewSeeded(cfg.Seed)
	}
	return New()
}

// Slot selects a slot uniformly among slots.
func (g *Generator) Slot(slots int) int {
	if slots <= 1 {
		return 0
	}
	return g.rnd.Intn(slots)
}

// Kind returns Bad with probability badChance, Good otherwise.
func (g *Generator) Kind(badChance float64) model.Kind {
	if badChance <= 0 {
		return model.Good
	}
	if g.rnd.Float64() < badChance {
		return model.Bad
	}
	return model.Good
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return g.rnd.Float64() < p
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}
