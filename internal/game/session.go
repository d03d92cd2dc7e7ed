package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/cancatch/internal/clock"
	"github.com/verte-zerg/cancatch/internal/generator"
	"github.com/verte-zerg/cancatch/internal/model"
)

const (
	msgStart   = "Game on! Tap yellow cans, avoid brown ones."
	msgBadCan  = "Uh oh, dirty water! -1"
	msgWon     = "You did it! Clean water unlocked!"
	msgLostFmt = "Time! You collected %d/%d. Try again!"
)

// Option customizes a Session.
type Option func(*Session)

// WithRoundHook registers fn to receive every finished round.
func WithRoundHook(fn func(model.RoundStats)) Option {
	return func(s *Session) { s.onRoundEnd = fn }
}

// WithWallClock overrides the wall clock used for round timestamps.
func WithWallClock(now func() time.Time) Option {
	return func(s *Session) { s.wallNow = now }
}

// Session owns one game's lifecycle and every timer it schedules.
type Session struct {
	cfg     model.Config
	sched   clock.Scheduler
	render  Renderer
	score   *Score
	spawner *Spawner

	active           bool
	secondsRemaining int
	spawnTok         clock.Token
	countdownTok     clock.Token

	roundID    string
	startedAt  time.Time
	startedOn  time.Duration
	wallNow    func() time.Time
	onRoundEnd func(model.RoundStats)
}

// NewSession builds an idle session and draws the empty grid.
func NewSession(cfg model.Config, sched clock.Scheduler, render Renderer, gen *generator.Generator, opts ...Option) *Session {
	s := &Session{
		cfg:              cfg,
		sched:            sched,
		render:           render,
		score:            NewScore(cfg.Goal, render),
		secondsRemaining: cfg.DurationSeconds(),
		wallNow:          time.Now,
	}
	s.spawner = NewSpawner(sched, render, gen, cfg, s.IsActive, s.resolve)
	for _, opt := range opts {
		opt(s)
	}
	render.RenderGrid(model.Slots)
	s.Reset()
	return s
}

// Start begins a round. No-op while a round is running.
func (s *Session) Start() {
	if s.active {
		return
	}
	s.score.Begin()
	s.secondsRemaining = s.cfg.DurationSeconds()
	s.render.UpdateTimer(s.secondsRemaining)
	s.spawner.Clear()
	s.spawner.ResetTally()

	s.active = true
	s.roundID = uuid.NewString()
	s.startedAt = s.wallNow()
	s.startedOn = s.sched.Now()
	s.render.SetControls(false, true)
	s.render.ShowMessage(msgStart, StyleNeutral)

	s.spawnTok = s.sched.Every(s.cfg.SpawnInterval, s.spawner.OnSpawnTick)
	s.countdownTok = s.sched.Every(time.Second, s.onCountdownTick)
}

// End stops the running round and reports the outcome. No-op when idle.
func (s *Session) End(won bool) {
	if !s.active {
		return
	}
	s.active = false
	s.stopAll()
	s.score.Halt()
	s.render.SetControls(true, true)

	if won {
		s.render.ShowMessage(msgWon, StyleGood)
		s.render.Celebrate()
	} else {
		s.render.ShowMessage(fmt.Sprintf(msgLostFmt, s.score.Count(), s.score.Goal()), StyleBad)
	}
	s.recordRound(won)
}

// Reset cancels everything and returns to the initial idle state. Safe to
// call at any time; an unfinished round is not recorded.
func (s *Session) Reset() {
	s.active = false
	s.stopAll()
	s.score.Clear()
	s.secondsRemaining = s.cfg.DurationSeconds()
	s.render.UpdateTimer(s.secondsRemaining)
	s.render.ShowMessage("", StyleNeutral)
	s.render.SetControls(true, false)
}

// IsActive reports whether a round is running.
func (s *Session) IsActive() bool {
	return s.active
}

// State returns a snapshot of the session state.
func (s *Session) State() model.SessionState {
	return model.SessionState{
		Active:           s.active,
		SecondsRemaining: s.secondsRemaining,
		CurrentCount:     s.score.Count(),
	}
}

// Phase returns the score machine state.
func (s *Session) Phase() Phase {
	return s.score.Phase()
}

// Spawner exposes the spawn controller.
func (s *Session) Spawner() *Spawner {
	return s.spawner
}

// Config returns the session settings.
func (s *Session) Config() model.Config {
	return s.cfg
}

func (s *Session) stopAll() {
	s.sched.Cancel(s.spawnTok)
	s.sched.Cancel(s.countdownTok)
	s.spawnTok, s.countdownTok = 0, 0
	s.spawner.Clear()
	s.sched.CancelAll()
}

func (s *Session) onCountdownTick() {
	if !s.active {
		return
	}
	if s.secondsRemaining > 0 {
		s.secondsRemaining--
	}
	s.render.UpdateTimer(s.secondsRemaining)
	if s.secondsRemaining == 0 {
		s.End(false)
	}
}

func (s *Session) resolve(kind model.Kind) {
	if !s.active {
		return
	}
	if kind == model.Bad {
		s.score.ApplyDelta(-1)
		s.render.ShowMessage(msgBadCan, StyleBad)
		return
	}
	s.score.ApplyDelta(1)
	s.score.CheckMilestone(s.score.Count())
	if s.score.Won() {
		s.End(true)
	}
}

func (s *Session) recordRound(won bool) {
	if s.onRoundEnd == nil {
		return
	}
	t := s.spawner.Tally()
	elapsed := s.sched.Now() - s.startedOn
	s.onRoundEnd(model.RoundStats{
		ID:         s.roundID,
		StartedAt:  s.startedAt,
		EndedAt:    s.startedAt.Add(elapsed),
		Goal:       s.score.Goal(),
		Count:      s.score.Count(),
		Won:        won,
		Spawned:    t.Spawned,
		GoodHits:   t.GoodHits,
		BadHits:    t.BadHits,
		Expired:    t.Expired,
		Discarded:  t.Discarded,
		DurationMs: elapsed.Milliseconds(),
	})
}
