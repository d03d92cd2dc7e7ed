package game

import (
	"time"

	"github.com/verte-zerg/cancatch/internal/clock"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
)

// Resolution is how a spawned item left the grid.
type Resolution int

const (
	Clicked Resolution = iota
	Expired
	Discarded
)

// SpawnedItem is the can currently on the grid.
type SpawnedItem struct {
	Slot     int
	Kind     model.Kind
	Resolved bool
	// How is set once Resolved.
	How Resolution

	handle ItemHandle
	expiry clock.Token
}

// Tally counts what happened to spawned items during a round.
type Tally struct {
	Spawned   int
	GoodHits  int
	BadHits   int
	Expired   int
	Discarded int
}

// Spawner places one can per spawn tick and resolves it exactly once.
type Spawner struct {
	sched     clock.Scheduler
	render    Renderer
	gen       *generator.Generator
	slots     int
	badChance float64
	lifetime  time.Duration

	active    func() bool
	onClicked func(model.Kind)

	current *SpawnedItem
	tally   Tally
}

// NewSpawner wires a spawner. active gates every effect; onClicked receives
// the kind of each can the player clicks.
func NewSpawner(sched clock.Scheduler, render Renderer, gen *generator.Generator, cfg model.Config, active func() bool, onClicked func(model.Kind)) *Spawner {
	return &Spawner{
		sched:     sched,
		render:    render,
		gen:       gen,
		slots:     model.Slots,
		badChance: cfg.BadChance,
		lifetime:  cfg.ItemLifetime,
		active:    active,
		onClicked: onClicked,
	}
}

// OnSpawnTick replaces whatever is on the grid with a fresh can.
func (sp *Spawner) OnSpawnTick() {
	if !sp.active() {
		return
	}
	sp.Clear()

	it := &SpawnedItem{
		Slot: sp.gen.Slot(sp.slots),
		Kind: sp.gen.Kind(sp.badChance),
	}
	it.handle = sp.render.ShowItem(it.Slot, it.Kind)
	sp.current = it
	sp.tally.Spawned++

	sp.render.OnItemClicked(it.handle, func() { sp.click(it) })
	it.expiry = sp.sched.After(sp.lifetime, func() { sp.expire(it) })
}

// Clear removes every can from the grid. An unresolved can is discarded
// without effect on the score.
func (sp *Spawner) Clear() {
	if it := sp.current; it != nil && !it.Resolved {
		sp.finish(it, Discarded)
	}
	sp.current = nil
	for i := 0; i < sp.slots; i++ {
		sp.render.ClearSlot(i)
	}
}

// Current returns the can on the grid, or nil.
func (sp *Spawner) Current() *SpawnedItem {
	return sp.current
}

// Tally returns the counters since the last ResetTally.
func (sp *Spawner) Tally() Tally {
	return sp.tally
}

// ResetTally zeroes the round counters.
func (sp *Spawner) ResetTally() {
	sp.tally = Tally{}
}

func (sp *Spawner) click(it *SpawnedItem) {
	if !sp.active() || it.Resolved || sp.current != it {
		return
	}
	sp.finish(it, Clicked)
	sp.render.FlashSlot(it.Slot, it.Kind)
	sp.onClicked(it.Kind)
}

func (sp *Spawner) expire(it *SpawnedItem) {
	if !sp.active() || it.Resolved || sp.current != it {
		return
	}
	sp.finish(it, Expired)
}

// finish resolves it exactly once and counts the outcome.
func (sp *Spawner) finish(it *SpawnedItem, how Resolution) {
	it.Resolved = true
	it.How = how
	if how != Expired {
		sp.sched.Cancel(it.expiry)
	}
	sp.current = nil
	sp.render.ClearSlot(it.Slot)

	switch how {
	case Clicked:
		if it.Kind == model.Bad {
			sp.tally.BadHits++
		} else {
			sp.tally.GoodHits++
		}
	case Expired:
		sp.tally.Expired++
	case Discarded:
		sp.tally.Discarded++
	}
}
