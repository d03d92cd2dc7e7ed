package game

// Phase is the state of the score machine.
type Phase int

const (
	Idle Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "idle"
}

// Score tracks progress toward the goal and pushes it to the renderer.
type Score struct {
	goal   int
	count  int
	phase  Phase
	render Renderer
}

// NewScore returns an idle Score for goal.
func NewScore(goal int, render Renderer) *Score {
	if goal < 1 {
		goal = 1
	}
	return &Score{goal: goal, render: render}
}

// Begin zeroes the count and enters Running.
func (s *Score) Begin() {
	s.count = 0
	s.phase = Running
	s.publish()
}

// Halt enters Idle and keeps the final count for reporting.
func (s *Score) Halt() {
	s.phase = Idle
}

// Clear enters Idle with a zero count.
func (s *Score) Clear() {
	s.count = 0
	s.phase = Idle
	s.publish()
}

// ApplyDelta adds delta, clamped to [0, goal]. Ignored unless Running.
func (s *Score) ApplyDelta(delta int) {
	if s.phase != Running {
		return
	}
	s.count = clamp(s.count+delta, 0, s.goal)
	s.publish()
}

// CheckMilestone shows the flavor message for count, if it has one.
func (s *Score) CheckMilestone(count int) bool {
	text, style, ok := Milestone(count)
	if !ok {
		return false
	}
	s.render.ShowMessage(text, style)
	return true
}

// Won reports whether the goal has been reached.
func (s *Score) Won() bool {
	return s.count >= s.goal
}

// Count returns the current count.
func (s *Score) Count() int { return s.count }

// Goal returns the target count.
func (s *Score) Goal() int { return s.goal }

// Phase returns the machine state.
func (s *Score) Phase() Phase { return s.phase }

// Progress returns count/goal capped at 1.
func (s *Score) Progress() float64 {
	p := float64(s.count) / float64(s.goal)
	if p > 1 {
		return 1
	}
	return p
}

func (s *Score) publish() {
	s.render.UpdateScore(s.count, s.goal, s.Progress())
}

// Milestone returns the message shown when a good can brings the count to
// exactly count.
func Milestone(count int) (string, Style, bool) {
	switch count {
	case 5:
		return "Milestone: 5 cans! Keep going!", StyleGood, true
	case 15:
		return "Milestone: 15 cans! You're close!", StyleGood, true
	case 20:
		return "Bonus time? No, just hustle!", StyleNeutral, true
	}
	return "", StyleNeutral, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
