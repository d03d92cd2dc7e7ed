package game

import (
	"github.com/verte-zerg/cancatch/internal/clock"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
)

type message struct {
	text  string
	style Style
}

type fakeRenderer struct {
	gridSlots int
	serial    uint64
	shown     map[int]ItemHandle
	kinds     map[int]model.Kind
	clicks    map[uint64]func()
	lastClick func()

	shows        int
	current      int
	goal         int
	progress     float64
	timer        int
	messages     []message
	celebrations int
	flashes      []model.Kind
	canStart     bool
	canReset     bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		shown:  map[int]ItemHandle{},
		kinds:  map[int]model.Kind{},
		clicks: map[uint64]func(){},
	}
}

func (f *fakeRenderer) RenderGrid(slots int) { f.gridSlots = slots }

func (f *fakeRenderer) ShowItem(slot int, kind model.Kind) ItemHandle {
	f.serial++
	f.shows++
	h := ItemHandle{Slot: slot, Serial: f.serial}
	f.shown[slot] = h
	f.kinds[slot] = kind
	return h
}

func (f *fakeRenderer) ClearSlot(slot int) {
	if h, ok := f.shown[slot]; ok {
		delete(f.clicks, h.Serial)
	}
	delete(f.shown, slot)
	delete(f.kinds, slot)
}

func (f *fakeRenderer) OnItemClicked(h ItemHandle, fn func()) {
	f.clicks[h.Serial] = fn
	f.lastClick = fn
}

func (f *fakeRenderer) UpdateScore(current, goal int, progress float64) {
	f.current, f.goal, f.progress = current, goal, progress
}

func (f *fakeRenderer) UpdateTimer(seconds int) { f.timer = seconds }

func (f *fakeRenderer) ShowMessage(text string, style Style) {
	f.messages = append(f.messages, message{text: text, style: style})
}

func (f *fakeRenderer) Celebrate() { f.celebrations++ }

func (f *fakeRenderer) FlashSlot(_ int, kind model.Kind) { f.flashes = append(f.flashes, kind) }

func (f *fakeRenderer) SetControls(canStart, canReset bool) {
	f.canStart, f.canReset = canStart, canReset
}

// clickShown clicks whatever is displayed, reporting false if the grid is empty.
func (f *fakeRenderer) clickShown() bool {
	for _, h := range f.shown {
		fn, ok := f.clicks[h.Serial]
		if !ok {
			return false
		}
		delete(f.clicks, h.Serial)
		fn()
		return true
	}
	return false
}

func (f *fakeRenderer) lastMessage() message {
	if len(f.messages) == 0 {
		return message{}
	}
	return f.messages[len(f.messages)-1]
}

func (f *fakeRenderer) countMessages(text string) int {
	n := 0
	for _, m := range f.messages {
		if m.text == text {
			n++
		}
	}
	return n
}

func testConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.Seed = 1
	cfg.BadChance = 0
	return cfg
}

func newTestSession(cfg model.Config, opts ...Option) (*Session, *clock.Virtual, *fakeRenderer) {
	v := clock.NewVirtual()
	f := newFakeRenderer()
	s := NewSession(cfg, v, f, generator.NewSeeded(cfg.Seed), opts...)
	return s, v, f
}

// spawnAndClick waits for the next spawn tick and clicks the can it shows.
func spawnAndClick(s *Session, v *clock.Virtual, f *fakeRenderer) bool {
	v.Advance(s.cfg.SpawnInterval)
	if !s.IsActive() {
		return false
	}
	return f.clickShown()
}

func setKind(s *Session, kind model.Kind) {
	if kind == model.Bad {
		s.spawner.badChance = 1
		return
	}
	s.spawner.badChance = 0
}
