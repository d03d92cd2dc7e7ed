// Package game implements the can-catching round engine: spawning, scoring
// and the session lifecycle. All methods must be called from one logical
// thread, the same one that advances the clock.Scheduler.
package game

import "github.com/verte-zerg/cancatch/internal/model"

// Style selects how a message is presented.
type Style int

const (
	StyleNeutral Style = iota
	StyleGood
	StyleBad
)

// ItemHandle identifies one displayed can.
type ItemHandle struct {
	Slot   int
	Serial uint64
}

// Renderer is the display and input boundary the engine drives.
type Renderer interface {
	RenderGrid(slots int)
	ShowItem(slot int, kind model.Kind) ItemHandle
	ClearSlot(slot int)
	// OnItemClicked registers fn to run on the first click of the item
	// behind h. Clearing the slot drops the registration.
	OnItemClicked(h ItemHandle, fn func())
	UpdateScore(current, goal int, progress float64)
	UpdateTimer(secondsRemaining int)
	// ShowMessage replaces the status line. Empty text clears it.
	ShowMessage(text string, style Style)
	Celebrate()
	FlashSlot(slot int, kind model.Kind)
	SetControls(canStart, canReset bool)
}
