package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/cancatch/internal/model"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		footer: model.RoundAggregate{Rounds: 4, Wins: 1, BestCount: 25, LastCount: 12, Goal: 25},
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Round 4", "Last 12/25", "Best 25/25", "Wins 1"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterEmptyBeforeFirstRound(t *testing.T) {
	m := &Model{}
	if out := m.renderFooter(); out != "" {
		t.Fatalf("expected no footer, got %q", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
