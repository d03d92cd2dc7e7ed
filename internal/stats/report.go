// Package stats contains round statistics and reporting.
package stats

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/cancatch/internal/model"
	"github.com/verte-zerg/cancatch/internal/store"
)

// Report contains precomputed data for round reporting.
type Report struct {
	Summary Summary    `yaml:"summary"`
	Rounds  []RoundRow `yaml:"rounds"`

	raw []model.RoundStats
}

// RoundRow is the exported view of one round.
type RoundRow struct {
	ID         string  `yaml:"id"`
	Won        bool    `yaml:"won"`
	Count      int     `yaml:"count"`
	Goal       int     `yaml:"goal"`
	Spawned    int     `yaml:"spawned"`
	GoodHits   int     `yaml:"good_hits"`
	BadHits    int     `yaml:"bad_hits"`
	Expired    int     `yaml:"expired"`
	Discarded  int     `yaml:"discarded"`
	Accuracy   float64 `yaml:"accuracy"`
	CatchRate  float64 `yaml:"catch_rate"`
	DurationMs int64   `yaml:"duration_ms"`
}

// BuildReport loads the last limit rounds (all when limit <= 0).
func BuildReport(ctx context.Context, st *store.Store, limit int) (Report, error) {
	rounds, err := st.ListRounds(ctx, limit)
	if err != nil {
		return Report{}, err
	}
	return NewReport(rounds), nil
}

// NewReport builds a Report from rounds in play order.
func NewReport(rounds []model.RoundStats) Report {
	rows := make([]RoundRow, 0, len(rounds))
	for _, r := range rounds {
		acc, catchRate, _ := RoundMetrics(r)
		rows = append(rows, RoundRow{
			ID:         r.ID,
			Won:        r.Won,
			Count:      r.Count,
			Goal:       r.Goal,
			Spawned:    r.Spawned,
			GoodHits:   r.GoodHits,
			BadHits:    r.BadHits,
			Expired:    r.Expired,
			Discarded:  r.Discarded,
			Accuracy:   acc,
			CatchRate:  catchRate,
			DurationMs: r.DurationMs,
		})
	}
	return Report{Summary: Summarize(rounds), Rounds: rows, raw: rounds}
}

// WriteText prints the round table and summary.
func (r Report) WriteText(w io.Writer, width int) error {
	if err := RenderRounds(w, r.raw, width); err != nil {
		return err
	}
	return RenderSummary(w, r.raw)
}

// WriteYAML encodes the report as YAML.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
