package carousel

import "math"

// Controller owns a fixed, cyclic list of media items and tracks which one is
// active along with its playback flags. It is not safe for concurrent use;
// callers serialise access (see showcase.Session).
type Controller struct {
	items    []MediaItem
	active   int
	playing  bool
	muted    bool
	progress float64
	closed   bool
}

// New creates a controller over items with start as the initial active index.
// start is normalised modulo the item count. The controller starts in muted
// autoplay.
func New(items []MediaItem, start int) (*Controller, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCollection
	}
	owned := make([]MediaItem, len(items))
	copy(owned, items)

	return &Controller{
		items:   owned,
		active:  wrap(start, len(owned)),
		playing: true,
		muted:   true,
	}, nil
}

// wrap maps n into [0, size) for any sign of n.
func wrap(n, size int) int {
	return ((n % size) + size) % size
}

// Len returns the number of items.
func (c *Controller) Len() int { return len(c.items) }

// ActiveIndex returns the index of the active item.
func (c *Controller) ActiveIndex() int { return c.active }

// Active returns the active item.
func (c *Controller) Active() MediaItem { return c.items[c.active] }

// Items returns a copy of the item list.
func (c *Controller) Items() []MediaItem {
	out := make([]MediaItem, len(c.items))
	copy(out, c.items)
	return out
}

// IsPlaying reports the play flag of the active item.
func (c *Controller) IsPlaying() bool { return c.playing }

// IsMuted reports the mute flag of the active item.
func (c *Controller) IsMuted() bool { return c.muted }

// Progress returns the playback position of the active item in [0,1].
func (c *Controller) Progress() float64 { return c.progress }

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }

// Next activates the following item, wrapping around at the end.
func (c *Controller) Next() error {
	return c.activate(c.active + 1)
}

// Previous activates the preceding item, wrapping around at the start.
func (c *Controller) Previous() error {
	return c.activate(c.active - 1)
}

// Jump activates the item at index, normalised modulo the item count.
func (c *Controller) Jump(index int) error {
	return c.activate(index)
}

// activate moves the active index and restarts muted autoplay. Progress goes
// back to zero since the new element starts from its own beginning.
func (c *Controller) activate(index int) error {
	if c.closed {
		return ErrClosed
	}
	c.active = wrap(index, len(c.items))
	c.playing = true
	c.muted = true
	c.progress = 0
	return nil
}

// SelectSlot handles a click on the card at relative position -1, 0 or 1.
// Neighbours navigate; the active card toggles mute.
func (c *Controller) SelectSlot(position int) error {
	switch position {
	case -1:
		return c.Previous()
	case 1:
		return c.Next()
	case 0:
		return c.ToggleMute()
	default:
		return ErrInvalidPosition
	}
}

// ToggleMute flips the mute flag of the active item.
func (c *Controller) ToggleMute() error {
	if c.closed {
		return ErrClosed
	}
	c.muted = !c.muted
	return nil
}

// TogglePlay flips the play flag of the active item.
func (c *Controller) TogglePlay() error {
	if c.closed {
		return ErrClosed
	}
	c.playing = !c.playing
	return nil
}

// RelativePosition returns the signed offset of itemIndex from the active
// index, folded so the item just before the active one reports -1.
func (c *Controller) RelativePosition(itemIndex int) int {
	n := len(c.items)
	position := wrap(wrap(itemIndex, n)-c.active, n)
	if position > 1 {
		position -= n
	}
	return position
}

// SlotFor classifies itemIndex relative to the active item. It has no side
// effects. With three items nothing is ever hidden.
func (c *Controller) SlotFor(itemIndex int) Slot {
	switch c.RelativePosition(itemIndex) {
	case 0:
		return SlotCenter
	case -1:
		return SlotLeft
	case 1:
		return SlotRight
	default:
		return SlotHidden
	}
}

// ReportProgress records the playback position reported by the media element
// of itemIndex. Reports from anything but the active item are ignored and
// false is returned.
func (c *Controller) ReportProgress(itemIndex int, currentTime, duration float64) bool {
	if c.closed || wrap(itemIndex, len(c.items)) != c.active {
		return false
	}
	c.progress = fraction(currentTime, duration)
	return true
}

func fraction(currentTime, duration float64) float64 {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) || math.IsNaN(currentTime) {
		return 0
	}
	f := currentTime / duration
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	return State{
		ActiveIndex: c.active,
		Count:       len(c.items),
		Playing:     c.playing,
		Muted:       c.muted,
		Progress:    c.progress,
		Closed:      c.closed,
	}
}

// View computes the presentation view of the item at index.
func (c *Controller) View(index int) ItemView {
	index = wrap(index, len(c.items))
	slot := c.SlotFor(index)
	v := ItemView{
		Index:    index,
		Item:     c.items[index],
		Slot:     slot,
		Position: c.RelativePosition(index),
		Muted:    true,
		Intent:   IntentStop,
	}
	if slot != SlotCenter {
		return v
	}

	v.Active = true
	v.Progress = c.progress
	if c.closed {
		return v
	}
	v.Muted = c.muted
	v.Playing = c.playing
	if c.playing {
		v.Intent = IntentPlay
	} else {
		v.Intent = IntentPause
	}
	return v
}

// Views computes the view of every item, in item order. Only the centre item
// may carry IntentPlay; every other item is stopped and muted.
func (c *Controller) Views() []ItemView {
	views := make([]ItemView, len(c.items))
	for i := range c.items {
		views[i] = c.View(i)
	}
	return views
}

// Close stops all playback. Navigation and toggles fail with ErrClosed
// afterwards; Views keeps working and reports every item as stopped.
func (c *Controller) Close() {
	c.closed = true
	c.playing = false
	c.progress = 0
}
