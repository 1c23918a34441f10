package auction

import (
	"time"

	model "lot-bidding/internal/models"
)

const (
	DefaultExtensionWindow = 15 * time.Minute
	DefaultMaxExtension    = 60 * time.Minute
)

// State is a lot's position in the bidding lifecycle
type State int

const (
	StateOpen State = iota + 1
	StateEndedPendingClose
	StateSold
	StateUnsold
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateEndedPendingClose:
		return "ENDED_PENDING_CLOSE"
	case StateSold:
		return "SOLD"
	case StateUnsold:
		return "UNSOLD"
	default:
		return "UNKNOWN"
	}
}

// Clock owns a lot's calculated end time and the dynamic ending rule.
type Clock struct {
	// Window is how close to the deadline a bid must land to extend it
	Window time.Duration
	// MaxExtension caps how far past the scheduled end the deadline may move
	MaxExtension time.Duration
}

// NewClock returns a clock, falling back to the defaults for zero durations
func NewClock(window, maxExtension time.Duration) Clock {
	if window <= 0 {
		window = DefaultExtensionWindow
	}
	if maxExtension <= 0 {
		maxExtension = DefaultMaxExtension
	}
	return Clock{Window: window, MaxExtension: maxExtension}
}

// CalculatedEnd is the lot's stored end time, or now when none is set.
func (c Clock) CalculatedEnd(lot model.Lot, now time.Time) time.Time {
	if lot.DateEnd == nil {
		return now
	}
	return *lot.DateEnd
}

// HardEnd is the latest the deadline may ever be extended to.
func (c Clock) HardEnd(lot model.Lot, now time.Time) time.Time {
	scheduled := lot.ScheduledEnd
	if scheduled == nil {
		scheduled = lot.DateEnd
	}
	if scheduled == nil {
		return now.Add(c.MaxExtension)
	}
	return scheduled.Add(c.MaxExtension)
}

// WithinExtensionWindow reports whether the time left is at most the window.
func (c Clock) WithinExtensionWindow(lot model.Lot, now time.Time) bool {
	return c.CalculatedEnd(lot, now).Sub(now) <= c.Window
}

// Ended reports whether now is past the calculated end.
func (c Clock) Ended(lot model.Lot, now time.Time) bool {
	return now.After(c.CalculatedEnd(lot, now))
}

// ExtendIfNeeded pushes the deadline so a full window remains after bidTime,
// clamped to HardEnd. It returns the new end and whether the lot changed.
// Sealed lots and lots without dynamic ending never extend.
func (c Clock) ExtendIfNeeded(lot *model.Lot, bidTime time.Time) (time.Time, bool) {
	end := c.CalculatedEnd(*lot, bidTime)
	if lot.SealedBid || !lot.DynamicEnd || lot.DateEnd == nil {
		return end, false
	}
	if !c.WithinExtensionWindow(*lot, bidTime) {
		return end, false
	}

	target := bidTime.Add(c.Window)
	if hard := c.HardEnd(*lot, bidTime); target.After(hard) {
		target = hard
	}
	if !target.After(end) {
		return end, false
	}
	if lot.ScheduledEnd == nil {
		scheduled := end
		lot.ScheduledEnd = &scheduled
	}
	lot.DateEnd = &target
	return target, true
}

// StateOf places the lot in its lifecycle.
func (c Clock) StateOf(lot model.Lot, now time.Time) State {
	switch {
	case lot.Sold():
		return StateSold
	case lot.ClosedAt != nil:
		return StateUnsold
	case c.Ended(lot, now):
		return StateEndedPendingClose
	default:
		return StateOpen
	}
}
