// Package bot provides a headless player that drives the game engine
// through the same renderer boundary a human uses.
package bot

import (
	"time"

	"github.com/verte-zerg/cancatch/internal/clock"
	"github.com/verte-zerg/cancatch/internal/game"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
)

// Profile describes how the bot plays.
type Profile struct {
	// Reaction is the delay between a can appearing and the click.
	Reaction time.Duration
	// Accuracy is the probability of recognizing and skipping a bad can.
	Accuracy float64
	// Miss is the probability of not reacting to a can at all.
	Miss float64
}

// DefaultProfile is a quick, mostly careful player.
func DefaultProfile() Profile {
	return Profile{Reaction: 450 * time.Millisecond, Accuracy: 0.85, Miss: 0.1}
}

// Player implements game.Renderer and clicks cans after its reaction time.
type Player struct {
	sched   clock.Scheduler
	gen     *generator.Generator
	profile Profile

	serial  uint64
	shown   map[int]game.ItemHandle
	pending map[uint64]func()

	Clicks       int
	Skips        int
	Celebrations int
	LastMessage  string
	Seconds      int
	Count        int
}

// New returns a bot that schedules its clicks on sched.
func New(sched clock.Scheduler, gen *generator.Generator, profile Profile) *Player {
	return &Player{
		sched:   sched,
		gen:     gen,
		profile: profile,
		shown:   map[int]game.ItemHandle{},
		pending: map[uint64]func(){},
	}
}

// RenderGrid implements game.Renderer.
func (p *Player) RenderGrid(int) {}

// ShowItem implements game.Renderer.
func (p *Player) ShowItem(slot int, kind model.Kind) game.ItemHandle {
	p.serial++
	h := game.ItemHandle{Slot: slot, Serial: p.serial}
	p.shown[slot] = h
	if p.gen.Chance(p.profile.Miss) || (kind == model.Bad && p.gen.Chance(p.profile.Accuracy)) {
		p.Skips++
		return h
	}
	p.sched.After(p.profile.Reaction, func() { p.click(h) })
	return h
}

// ClearSlot implements game.Renderer.
func (p *Player) ClearSlot(slot int) {
	if h, ok := p.shown[slot]; ok {
		delete(p.pending, h.Serial)
		delete(p.shown, slot)
	}
}

// OnItemClicked implements game.Renderer.
func (p *Player) OnItemClicked(h game.ItemHandle, fn func()) {
	p.pending[h.Serial] = fn
}

// UpdateScore implements game.Renderer.
func (p *Player) UpdateScore(current, _ int, _ float64) { p.Count = current }

// UpdateTimer implements game.Renderer.
func (p *Player) UpdateTimer(seconds int) { p.Seconds = seconds }

// ShowMessage implements game.Renderer.
func (p *Player) ShowMessage(text string, _ game.Style) { p.LastMessage = text }

// Celebrate implements game.Renderer.
func (p *Player) Celebrate() { p.Celebrations++ }

// FlashSlot implements game.Renderer.
func (p *Player) FlashSlot(int, model.Kind) {}

// SetControls implements game.Renderer.
func (p *Player) SetControls(bool, bool) {}

func (p *Player) click(h game.ItemHandle) {
	fn, ok := p.pending[h.Serial]
	if !ok {
		return
	}
	delete(p.pending, h.Serial)
	p.Clicks++
	fn()
}
