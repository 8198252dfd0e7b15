package tui

import (
	"time"

	"github.com/vovakirdan/coinrun/internal/core"
)

// DefaultHoldWindow is how long a movement key counts as held after the
// terminal last reported it. It has to bridge the autorepeat delay.
const DefaultHoldWindow = 250 * time.Millisecond

// KeyLatch turns key presses into held flags. Terminals report presses and
// autorepeats but never releases, so a key is held until no repeat arrives
// for the hold window.
//
// Opposite directions cancel: pressing left releases right at once.
type KeyLatch struct {
	holdTicks int
	remaining map[core.Action]int
	pending   core.InputFrame // One-shot actions for the next tick
}

// NewKeyLatch creates a latch for the given tick rate and hold window.
func NewKeyLatch(tickRate int, hold time.Duration) *KeyLatch {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := int(hold * time.Duration(tickRate) / time.Second)
	if ticks < 1 {
		ticks = 1
	}
	return &KeyLatch{
		holdTicks: ticks,
		remaining: make(map[core.Action]int),
		pending:   core.NewInputFrame(),
	}
}

// Press records a key press or autorepeat.
func (l *KeyLatch) Press(a core.Action) {
	if !IsHeld(a) {
		if a != core.ActionNone {
			l.pending.Set(a)
		}
		return
	}

	switch a {
	case core.ActionLeft:
		delete(l.remaining, core.ActionRight)
	case core.ActionRight:
		delete(l.remaining, core.ActionLeft)
	}
	l.remaining[a] = l.holdTicks
}

// Frame fills the input for one tick and ages the held keys.
func (l *KeyLatch) Frame(frame *core.InputFrame) {
	frame.Clear()
	for a := range l.pending.Actions {
		frame.Set(a)
	}
	l.pending.Clear()

	for a, n := range l.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(l.remaining, a)
		} else {
			l.remaining[a] = n - 1
		}
	}
}

// Release drops every held key.
func (l *KeyLatch) Release() {
	for a := range l.remaining {
		delete(l.remaining, a)
	}
}
