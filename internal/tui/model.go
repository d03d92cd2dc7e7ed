// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cancatch/internal/clock"
	"github.com/verte-zerg/cancatch/internal/game"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
	"github.com/verte-zerg/cancatch/internal/store"
)

const (
	framesPerSecond = 30
	frameInterval   = time.Second / framesPerSecond
	// Longer gaps (a suspended terminal) are not credited to game time.
	maxFrameGap = 250 * time.Millisecond
)

type frameMsg time.Time

// Model implements the Bubble Tea game UI and is the engine's renderer.
type Model struct {
	config  model.Config
	store   *store.Store
	sched   *clock.Virtual
	session *game.Session

	keys     keyMap
	help     help.Model
	progress progress.Model
	spring   harmonica.Spring
	confetti *confetti

	width     int
	height    int
	lastFrame time.Time

	cells    []cell
	serial   uint64
	clickFns map[uint64]func()

	current      int
	goal         int
	seconds      int
	shownPct     float64
	pctVelocity  float64
	targetPct    float64
	message      string
	messageStyle game.Style

	footer model.RoundAggregate
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC907")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	goodMsgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#159A48"))
	badMsgStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5402C"))
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	screenStyle  = lipgloss.NewStyle().MarginLeft(marginLeft)
)

// NewModel constructs the game UI. store may be nil to skip the round log.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator) *Model {
	m := &Model{
		config:   cfg,
		store:    st,
		sched:    clock.NewVirtual(),
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithGradient("#2E9DF7", "#FFC907"), progress.WithoutPercentage(), progress.WithWidth(gridWidth())),
		spring:   harmonica.NewSpring(harmonica.FPS(framesPerSecond), 8.0, 0.6),
		confetti: newConfetti(gen),
		clickFns: map[uint64]func(){},
	}
	m.session = game.NewSession(cfg, m.sched, m, gen, game.WithRoundHook(m.recordRound))
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - marginLeft
		return m, nil
	case frameMsg:
		m.advance(time.Time(msg))
		return m, frameCmd()
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if slot, ok := slotAt(msg.X, msg.Y, len(m.cells)); ok {
				m.clickSlot(slot)
			}
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.session.Start()
		case key.Matches(msg, m.keys.Reset):
			m.session.Reset()
		case key.Matches(msg, m.keys.Hit):
			if slot, ok := keypad[msg.String()]; ok {
				m.clickSlot(slot)
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	state := "ready"
	if m.session.IsActive() {
		state = "running"
	}
	header := []string{
		titleStyle.Render("cancatch") + "  " + statusStyle.Render(state),
		fmt.Sprintf("Cans %d/%d   Time %ds", m.current, m.goal, m.seconds),
		m.progress.ViewAs(clampUnit(m.shownPct)),
		"",
	}

	board := renderGrid(m.cells, m.sched.Now())
	if m.confetti.active() && m.width > 0 {
		sky := m.width - marginLeft - gridWidth() - 2
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", m.confetti.render(sky, lipgloss.Height(board)))
	}

	lines := append(header, board, "", m.renderMessage())
	if footer := m.renderFooter(); footer != "" {
		lines = append(lines, footer)
	}
	lines = append(lines, m.help.View(m.keys))
	return screenStyle.Render(strings.Join(lines, "\n"))
}

// RenderGrid implements game.Renderer.
func (m *Model) RenderGrid(slots int) {
	m.cells = make([]cell, slots)
	clear(m.clickFns)
}

// ShowItem implements game.Renderer.
func (m *Model) ShowItem(slot int, kind model.Kind) game.ItemHandle {
	m.serial++
	m.cells[slot] = cell{occupied: true, kind: kind, serial: m.serial}
	return game.ItemHandle{Slot: slot, Serial: m.serial}
}

// ClearSlot implements game.Renderer.
func (m *Model) ClearSlot(slot int) {
	c := &m.cells[slot]
	if c.occupied {
		delete(m.clickFns, c.serial)
	}
	c.occupied = false
}

// OnItemClicked implements game.Renderer.
func (m *Model) OnItemClicked(h game.ItemHandle, fn func()) {
	m.clickFns[h.Serial] = fn
}

// UpdateScore implements game.Renderer.
func (m *Model) UpdateScore(current, goal int, pct float64) {
	m.current = current
	m.goal = goal
	m.targetPct = pct
}

// UpdateTimer implements game.Renderer.
func (m *Model) UpdateTimer(seconds int) {
	m.seconds = seconds
}

// ShowMessage implements game.Renderer.
func (m *Model) ShowMessage(text string, style game.Style) {
	m.message = text
	m.messageStyle = style
}

// Celebrate implements game.Renderer.
func (m *Model) Celebrate() {
	sky := m.width - marginLeft - gridWidth() - 2
	m.confetti.burst(sky, cellHeight*gridCols+cellGap*(gridCols-1))
}

// FlashSlot implements game.Renderer.
func (m *Model) FlashSlot(slot int, kind model.Kind) {
	c := &m.cells[slot]
	c.flashing = true
	c.flashKind = kind
	c.flashUntil = m.sched.Now() + flashFor
}

// SetControls implements game.Renderer.
func (m *Model) SetControls(canStart, canReset bool) {
	m.keys.Start.SetEnabled(canStart)
	m.keys.Reset.SetEnabled(canReset)
}

func (m *Model) clickSlot(slot int) {
	if slot < 0 || slot >= len(m.cells) {
		return
	}
	c := m.cells[slot]
	if !c.occupied {
		return
	}
	fn, ok := m.clickFns[c.serial]
	if !ok {
		return
	}
	delete(m.clickFns, c.serial)
	fn()
}

func (m *Model) advance(now time.Time) {
	if m.lastFrame.IsZero() {
		m.lastFrame = now
		return
	}
	elapsed := now.Sub(m.lastFrame)
	m.lastFrame = now
	if elapsed < 0 {
		return
	}
	if elapsed > maxFrameGap {
		elapsed = maxFrameGap
	}
	m.sched.Advance(elapsed)
	m.shownPct, m.pctVelocity = m.spring.Update(m.shownPct, m.pctVelocity, m.targetPct)
	m.confetti.step(elapsed)
}

func (m *Model) renderMessage() string {
	switch m.messageStyle {
	case game.StyleGood:
		return goodMsgStyle.Render(m.message)
	case game.StyleBad:
		return badMsgStyle.Render(m.message)
	default:
		return neutralStyle.Render(m.message)
	}
}

func (m *Model) renderFooter() string {
	if m.footer.Rounds == 0 {
		return ""
	}
	segments := []string{
		fmt.Sprintf("Round %d", m.footer.Rounds),
		fmt.Sprintf("Last %d/%d", m.footer.LastCount, m.footer.Goal),
		fmt.Sprintf("Best %d/%d", m.footer.BestCount, m.footer.Goal),
		fmt.Sprintf("Wins %d", m.footer.Wins),
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	agg, err := m.store.Aggregate(context.Background())
	if err != nil {
		logErrf("failed to load round stats: %v\n", err)
		return
	}
	m.footer = agg
}

func (m *Model) recordRound(r model.RoundStats) {
	if m.store == nil {
		m.footer.Rounds++
		if r.Won {
			m.footer.Wins++
		}
		if r.Count > m.footer.BestCount {
			m.footer.BestCount = r.Count
		}
		m.footer.LastCount = r.Count
		m.footer.Goal = r.Goal
		return
	}
	if err := m.store.InsertRound(context.Background(), r); err != nil {
		logErrf("failed to save round: %v\n", err)
		return
	}
	m.loadFooterStats()
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
