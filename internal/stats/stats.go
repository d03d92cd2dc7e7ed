// Package stats contains round statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/cancatch/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"
	// trendWindow is how many recent rounds the rolling mean covers.
	trendWindow = 5
)

// RoundMetrics computes hit accuracy, catch rate, and cans per second.
// Accuracy is good clicks over all clicks; catch rate is good clicks over
// spawned cans.
func RoundMetrics(r model.RoundStats) (accuracy, catchRate, perSecond float64) {
	clicks := r.GoodHits + r.BadHits
	if clicks > 0 {
		accuracy = float64(r.GoodHits) / float64(clicks)
	}
	if r.Spawned > 0 {
		catchRate = float64(r.GoodHits) / float64(r.Spawned)
	}
	if r.DurationMs > 0 {
		perSecond = float64(r.Count) / (float64(r.DurationMs) / 1000.0)
	}
	return accuracy, catchRate, perSecond
}

// Summary aggregates a list of rounds.
type Summary struct {
	Rounds       int     `yaml:"rounds"`
	Wins         int     `yaml:"wins"`
	WinRate      float64 `yaml:"win_rate"`
	BestCount    int     `yaml:"best_count"`
	MeanCount    float64 `yaml:"mean_count"`
	MeanAccuracy float64 `yaml:"mean_accuracy"`
	RecentMean   float64 `yaml:"recent_mean"`
	FastestWinMs int64   `yaml:"fastest_win_ms,omitempty"`
}

// Summarize aggregates rounds into a Summary.
func Summarize(rounds []model.RoundStats) Summary {
	var s Summary
	if len(rounds) == 0 {
		return s
	}
	var totalCount, totalAcc float64
	counts := make([]float64, 0, len(rounds))
	for _, r := range rounds {
		s.Rounds++
		if r.Won {
			s.Wins++
			if s.FastestWinMs == 0 || r.DurationMs < s.FastestWinMs {
				s.FastestWinMs = r.DurationMs
			}
		}
		if r.Count > s.BestCount {
			s.BestCount = r.Count
		}
		acc, _, _ := RoundMetrics(r)
		totalCount += float64(r.Count)
		totalAcc += acc
		counts = append(counts, float64(r.Count))
	}
	n := float64(s.Rounds)
	s.WinRate = float64(s.Wins) / n
	s.MeanCount = totalCount / n
	s.MeanAccuracy = totalAcc / n
	trend := MovingAverage(counts, trendWindow)
	s.RecentMean = trend[len(trend)-1]
	return s
}

// MovingAverage returns, for each index, the mean of the last window values
// up to and including it. Early indexes average what is available.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if n > window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the summary block for rounds.
func RenderSummary(w io.Writer, rounds []model.RoundStats) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds played.")
		return err
	}
	s := Summarize(rounds)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", s.Rounds),
		fmt.Sprintf("Wins: %d (%.1f%%)", s.Wins, s.WinRate*100),
		fmt.Sprintf("Best: %d/%d", s.BestCount, rounds[0].Goal),
		fmt.Sprintf("Mean cans: %.1f", s.MeanCount),
		fmt.Sprintf("Mean accuracy: %.1f%%", s.MeanAccuracy*100),
		fmt.Sprintf("Recent mean (last %d): %.1f", trendWindow, s.RecentMean),
	}
	if s.FastestWinMs > 0 {
		lines = append(lines, fmt.Sprintf("Fastest win: %.1fs", float64(s.FastestWinMs)/1000))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRounds prints one table row per round followed by sparklines of the
// final counts and their rolling mean, trimmed to width when width > 0.
func RenderRounds(w io.Writer, rounds []model.RoundStats, width int) error {
	if len(rounds) == 0 {
		return nil
	}
	cols := []column{
		{title: "#", right: true},
		{title: "Result"},
		{title: "Cans", right: true},
		{title: "Good", right: true},
		{title: "Bad", right: true},
		{title: "Expired", right: true},
		{title: "Accuracy", right: true},
		{title: "Time", right: true},
	}
	rows := make([][]string, 0, len(rounds))
	counts := make([]float64, 0, len(rounds))
	for i, r := range rounds {
		acc, _, _ := RoundMetrics(r)
		result := "lost"
		if r.Won {
			result = "won"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			result,
			fmt.Sprintf("%d/%d", r.Count, r.Goal),
			fmt.Sprintf("%d", r.GoodHits),
			fmt.Sprintf("%d", r.BadHits),
			fmt.Sprintf("%d", r.Expired),
			fmt.Sprintf("%.1f%%", acc*100),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
		})
		counts = append(counts, float64(r.Count))
	}
	lines := formatTable(cols, rows)
	lines = append(lines,
		sparkLine("Cans ", counts, width),
		sparkLine("Avg  ", MovingAverage(counts, trendWindow), width),
		"",
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// sparkLine labels a sparkline, keeping the most recent values that fit.
func sparkLine(label string, values []float64, width int) string {
	spark := Sparkline(values)
	if width > 0 && len(label)+len(spark) > width {
		keep := max(width-len(label), 1)
		spark = spark[len(spark)-keep:]
	}
	return label + spark
}
