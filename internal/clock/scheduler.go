// Package clock provides cancellable game-time scheduling.
package clock

import "time"

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

// Scheduler runs periodic and one-shot callbacks on a single logical thread.
type Scheduler interface {
	// Every runs fn each interval until cancelled.
	Every(interval time.Duration, fn func()) Token
	// After runs fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Token
	// Cancel stops a callback. Unknown or spent tokens are ignored.
	Cancel(tok Token)
	// CancelAll stops every pending callback.
	CancelAll()
	// Live reports how many callbacks are still pending.
	Live() int
	// Now returns elapsed game time.
	Now() time.Duration
}

type entry struct {
	tok      Token
	due      time.Duration
	interval time.Duration
	fn       func()
}

// Virtual is a Scheduler whose time only moves through Advance.
// Callbacks fire inside Advance, one at a time, ordered by due time and
// then by registration order.
type Virtual struct {
	now     time.Duration
	next    Token
	entries map[Token]*entry
}

// NewVirtual returns a Virtual scheduler at time zero.
func NewVirtual() *Virtual {
	return &Virtual{entries: map[Token]*entry{}}
}

// Every implements Scheduler. Non-positive intervals are not scheduled.
func (v *Virtual) Every(interval time.Duration, fn func()) Token {
	if interval <= 0 {
		return 0
	}
	return v.add(interval, interval, fn)
}

// After implements Scheduler. A non-positive delay fires on the next Advance.
func (v *Virtual) After(delay time.Duration, fn func()) Token {
	if delay < 0 {
		delay = 0
	}
	return v.add(delay, 0, fn)
}

func (v *Virtual) add(delay, interval time.Duration, fn func()) Token {
	v.next++
	tok := v.next
	v.entries[tok] = &entry{tok: tok, due: v.now + delay, interval: interval, fn: fn}
	return tok
}

// Cancel implements Scheduler.
func (v *Virtual) Cancel(tok Token) {
	delete(v.entries, tok)
}

// CancelAll implements Scheduler.
func (v *Virtual) CancelAll() {
	clear(v.entries)
}

// Live implements Scheduler.
func (v *Virtual) Live() int {
	return len(v.entries)
}

// Now implements Scheduler.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Advance moves time forward by d, firing every callback that falls due.
// Work scheduled or cancelled by a callback is honored within the same call.
func (v *Virtual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := v.now + d
	for {
		e := v.earliest(target)
		if e == nil {
			break
		}
		v.now = e.due
		if e.interval > 0 {
			e.due += e.interval
		} else {
			delete(v.entries, e.tok)
		}
		e.fn()
	}
	v.now = target
}

func (v *Virtual) earliest(limit time.Duration) *entry {
	var best *entry
	for _, e := range v.entries {
		if e.due > limit {
			continue
		}
		if best == nil || e.due < best.due || (e.due == best.due && e.tok < best.tok) {
			best = e
		}
	}
	return best
}
