// Package model defines shared data structures.
package model

import "time"

// Kind distinguishes good cans from bad ones.
type Kind int

const (
	// Good cans award a point when clicked.
	Good Kind = iota
	// Bad cans cost a point when clicked.
	Bad
)

func (k Kind) String() string {
	if k == Bad {
		return "bad"
	}
	return "good"
}

// Config defines game settings.
type Config struct {
	Goal          int
	Duration      time.Duration
	SpawnInterval time.Duration
	ItemLifetime  time.Duration
	BadChance     float64
	Seed          int64
}

// Slots is the number of cells in the 3x3 grid.
const Slots = 9

// DefaultConfig returns the stock game settings.
func DefaultConfig() Config {
	return Config{
		Goal:          25,
		Duration:      30 * time.Second,
		SpawnInterval: 900 * time.Millisecond,
		ItemLifetime:  950 * time.Millisecond,
		BadChance:     0.22,
	}
}

// DurationSeconds returns the countdown length in whole seconds.
func (c Config) DurationSeconds() int {
	return int(c.Duration / time.Second)
}

// SessionState is the mutable state of one round.
type SessionState struct {
	Active           bool
	SecondsRemaining int
	CurrentCount     int
}

// RoundStats captures a completed round.
type RoundStats struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	Goal       int
	Count      int
	Won        bool
	Spawned    int
	GoodHits   int
	BadHits    int
	Expired    int
	Discarded  int
	DurationMs int64
}

// RoundAggregate summarizes stored rounds for reporting.
type RoundAggregate struct {
	Rounds    int
	Wins      int
	BestCount int
	LastCount int
	Goal      int
}
