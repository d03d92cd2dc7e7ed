package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/cancatch/internal/game"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
)

func newTestModel(t *testing.T, badChance float64) *Model {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.BadChance = badChance
	m := NewModel(cfg, nil, generator.NewSeeded(9))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func press(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// runFor feeds frames covering d of game time.
func runFor(m *Model, start time.Time, d time.Duration) time.Time {
	now := start
	m.Update(frameMsg(now))
	for elapsed := time.Duration(0); elapsed < d; elapsed += 100 * time.Millisecond {
		now = now.Add(100 * time.Millisecond)
		m.Update(frameMsg(now))
	}
	return now
}

func occupiedSlot(m *Model) (int, bool) {
	for i, c := range m.cells {
		if c.occupied {
			return i, true
		}
	}
	return 0, false
}

func TestModelStartAndKeypadHit(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "s")
	if !m.session.IsActive() {
		t.Fatalf("expected session to start")
	}
	if m.keys.Start.Enabled() {
		t.Fatalf("start should be disabled while running")
	}

	runFor(m, time.Unix(0, 0), 900*time.Millisecond)
	slot, ok := occupiedSlot(m)
	if !ok {
		t.Fatalf("expected a can after the first spawn tick")
	}
	press(m, slotLabel(slot))

	if m.current != 1 {
		t.Fatalf("expected 1 can, got %d", m.current)
	}
	if _, ok := occupiedSlot(m); ok {
		t.Fatalf("expected the clicked can to be removed")
	}
	if !m.cells[slot].flashing || m.cells[slot].flashKind != model.Good {
		t.Fatalf("expected a good flash on slot %d", slot)
	}
}

func TestModelMouseHit(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "s")
	runFor(m, time.Unix(0, 0), 900*time.Millisecond)
	slot, ok := occupiedSlot(m)
	if !ok {
		t.Fatalf("expected a can on the grid")
	}
	x := marginLeft + (slot%gridCols)*(cellWidth+cellGap) + 1
	y := gridTop + (slot/gridCols)*(cellHeight+cellGap) + 1
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if m.current != 1 {
		t.Fatalf("expected mouse click to score, got %d", m.current)
	}
}

func TestModelEmptySlotClickIgnored(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "s")
	runFor(m, time.Unix(0, 0), 900*time.Millisecond)
	slot, _ := occupiedSlot(m)
	press(m, slotLabel((slot+1)%9))

	if m.current != 0 {
		t.Fatalf("expected no score for an empty slot, got %d", m.current)
	}
}

func TestModelLossAndReset(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "s")
	runFor(m, time.Unix(0, 0), 31*time.Second)

	if m.session.IsActive() {
		t.Fatalf("expected the round to end")
	}
	if m.message != "Time! You collected 0/25. Try again!" || m.messageStyle != game.StyleBad {
		t.Fatalf("unexpected loss message: %q", m.message)
	}
	if m.footer.Rounds != 1 || m.footer.LastCount != 0 {
		t.Fatalf("expected the round in the footer, got %+v", m.footer)
	}

	press(m, "r")
	if m.message != "" || m.seconds != 30 || m.current != 0 {
		t.Fatalf("expected reset state, got msg=%q seconds=%d current=%d", m.message, m.seconds, m.current)
	}
	if m.keys.Reset.Enabled() || !m.keys.Start.Enabled() {
		t.Fatalf("unexpected controls after reset")
	}
	if m.sched.Live() != 0 {
		t.Fatalf("expected no live timers, got %d", m.sched.Live())
	}
}

func TestModelLongFrameGapIsCapped(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "s")
	start := time.Unix(0, 0)
	m.Update(frameMsg(start))
	m.Update(frameMsg(start.Add(time.Minute)))

	if m.sched.Now() != maxFrameGap {
		t.Fatalf("expected game time %v, got %v", maxFrameGap, m.sched.Now())
	}
	if !m.session.IsActive() {
		t.Fatalf("a stalled frame must not end the round")
	}
}

func TestModelViewShowsBoard(t *testing.T) {
	m := newTestModel(t, 0)
	out := m.View()
	if !containsAll(out, []string{"cancatch", "Cans 0/25", "Time 30s", "start"}) {
		t.Fatalf("view missing expected content:\n%s", out)
	}
	if strings.Count(out, "\n") < gridTop+3*cellHeight {
		t.Fatalf("view too short:\n%s", out)
	}
}

func TestModelCelebrateStartsConfetti(t *testing.T) {
	m := newTestModel(t, 0)
	m.Celebrate()
	if !m.confetti.active() {
		t.Fatalf("expected confetti after celebrate")
	}
	m.confetti.step(2 * time.Second)
	if m.confetti.active() {
		t.Fatalf("expected confetti to clear after its lifetime")
	}
}
