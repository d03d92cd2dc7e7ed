package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cancatch/internal/generator"
)

const (
	confettiPieces   = 80
	confettiLifetime = 1600 * time.Millisecond
)

var confettiColors = []lipgloss.Color{
	"#FFC907", "#2E9DF7", "#8BD1CB", "#4FCB53", "#FF902A", "#F5402C", "#159A48", "#F16061",
}

var confettiGlyphs = []string{"*", "+", "•", "▪", "~"}

type confettiPiece struct {
	proj  *harmonica.Projectile
	style lipgloss.Style
	glyph string
}

type confetti struct {
	gen       *generator.Generator
	pieces    []confettiPiece
	remaining time.Duration
}

func newConfetti(gen *generator.Generator) *confetti {
	return &confetti{gen: gen}
}

// burst drops a fresh batch of pieces from the top of a width x height area.
func (c *confetti) burst(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	c.pieces = c.pieces[:0]
	for i := 0; i < confettiPieces; i++ {
		pos := harmonica.Point{
			X: c.gen.Float64() * float64(width),
			Y: -c.gen.Float64() * float64(height) / 4,
		}
		vel := harmonica.Vector{
			X: (c.gen.Float64() - 0.5) * 6,
			Y: c.gen.Float64() * 2,
		}
		c.pieces = append(c.pieces, confettiPiece{
			proj:  harmonica.NewProjectile(harmonica.FPS(framesPerSecond), pos, vel, harmonica.TerminalGravity),
			style: lipgloss.NewStyle().Foreground(confettiColors[c.gen.Slot(len(confettiColors))]),
			glyph: confettiGlyphs[c.gen.Slot(len(confettiGlyphs))],
		})
	}
	c.remaining = confettiLifetime
}

func (c *confetti) active() bool {
	return len(c.pieces) > 0
}

// step moves every piece one frame and clears the batch once it has expired.
func (c *confetti) step(elapsed time.Duration) {
	if !c.active() {
		return
	}
	c.remaining -= elapsed
	if c.remaining <= 0 {
		c.pieces = c.pieces[:0]
		return
	}
	for _, p := range c.pieces {
		p.proj.Update()
	}
}

// render draws the pieces that fall inside a width x height canvas.
func (c *confetti) render(width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	canvas := make([][]string, height)
	for y := range canvas {
		canvas[y] = make([]string, width)
		for x := range canvas[y] {
			canvas[y][x] = " "
		}
	}
	for _, p := range c.pieces {
		pos := p.proj.Position()
		x, y := int(pos.X), int(pos.Y)
		if x < 0 || y < 0 || x >= width || y >= height {
			continue
		}
		canvas[y][x] = p.style.Render(p.glyph)
	}
	lines := make([]string, height)
	for y, row := range canvas {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
