package carousel

import "errors"

var (
	// ErrEmptyCollection is returned by New when no items are given.
	ErrEmptyCollection = errors.New("carousel: empty media collection")
	// ErrInvalidPosition is returned by SelectSlot for positions other than -1, 0 and 1.
	ErrInvalidPosition = errors.New("carousel: relative position must be -1, 0 or 1")
	// ErrClosed is returned by navigation calls after Close.
	ErrClosed = errors.New("carousel: controller closed")
)

// MediaItem is a single playable entry of the carousel. Items are loaded once
// and never mutated.
type MediaItem struct {
	ID     string `json:"id" yaml:"id" koanf:"id"`
	Source string `json:"source" yaml:"source" koanf:"source"`
	Label  string `json:"label" yaml:"label" koanf:"label"`
}

// Slot is the visual position of an item relative to the active one.
type Slot string

const (
	SlotCenter Slot = "center"
	SlotLeft   Slot = "left"
	SlotRight  Slot = "right"
	SlotHidden Slot = "hidden"
)

// String returns the slot name.
func (s Slot) String() string {
	return string(s)
}

// Visible reports whether the slot is rendered on screen.
func (s Slot) Visible() bool {
	return s == SlotCenter || s == SlotLeft || s == SlotRight
}

// PlaybackIntent tells the renderer what to do with an item's media element.
type PlaybackIntent string

const (
	// IntentPlay means the element should be playing.
	IntentPlay PlaybackIntent = "play"
	// IntentPause means the element should be paused where it is.
	IntentPause PlaybackIntent = "pause"
	// IntentStop means the element should be paused and rewound to the start.
	IntentStop PlaybackIntent = "stop"
)

// State is a point-in-time copy of the controller's mutable state.
type State struct {
	ActiveIndex int     `json:"active_index"`
	Count       int     `json:"count"`
	Playing     bool    `json:"playing"`
	Muted       bool    `json:"muted"`
	Progress    float64 `json:"progress"`
	Closed      bool    `json:"closed,omitempty"`
}

// ItemView is what the presentation layer receives for one item.
type ItemView struct {
	Index    int            `json:"index"`
	Item     MediaItem      `json:"item"`
	Slot     Slot           `json:"slot"`
	Position int            `json:"position"`
	Active   bool           `json:"active"`
	Playing  bool           `json:"playing"`
	Muted    bool           `json:"muted"`
	Progress float64        `json:"progress"`
	Intent   PlaybackIntent `json:"intent"`
}
