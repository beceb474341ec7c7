package carousel

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func makeItems(n int) []MediaItem {
	items := make([]MediaItem, n)
	for i := range items {
		items[i] = MediaItem{
			ID:     fmt.Sprintf("item-%d", i),
			Source: fmt.Sprintf("/assets/videos/avatar%d.mp4", i+1),
			Label:  fmt.Sprintf("Avatar %d", i+1),
		}
	}
	return items
}

func newController(t *testing.T, n, start int) *Controller {
	t.Helper()
	c, err := New(makeItems(n), start)
	if err != nil {
		t.Fatalf("New(%d items, %d): %v", n, start, err)
	}
	return c
}

func TestNewRejectsEmptyCollection(t *testing.T) {
	c, err := New(nil, 0)
	if !errors.Is(err, ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
	if c != nil {
		t.Error("expected nil controller for empty collection")
	}
}

func TestNewNormalisesStartIndex(t *testing.T) {
	tests := []struct {
		n, start, want int
	}{
		{3, 1, 1},
		{3, 3, 0},
		{3, -1, 2},
		{5, -7, 3},
		{1, 42, 0},
	}
	for _, tt := range tests {
		c := newController(t, tt.n, tt.start)
		if got := c.ActiveIndex(); got != tt.want {
			t.Errorf("New(n=%d, start=%d).ActiveIndex() = %d, want %d", tt.n, tt.start, got, tt.want)
		}
	}
}

func TestNewStartsInMutedAutoplay(t *testing.T) {
	c := newController(t, 3, 1)
	if !c.IsPlaying() {
		t.Error("expected playing at start")
	}
	if !c.IsMuted() {
		t.Error("expected muted at start")
	}
	if c.Progress() != 0 {
		t.Errorf("expected zero progress, got %f", c.Progress())
	}
}

func TestNewCopiesItems(t *testing.T) {
	items := makeItems(3)
	c, err := New(items, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items[0].Label = "changed"
	if c.Active().Label != "Avatar 1" {
		t.Errorf("controller items changed with caller slice: %q", c.Active().Label)
	}
}

func TestCyclicWraparound(t *testing.T) {
	for n := 1; n <= 7; n++ {
		c := newController(t, n, 0)
		// Deterministic mixed walk: forwards, backwards, forwards.
		for step := 0; step < 4*n+3; step++ {
			var err error
			if step%3 == 1 {
				err = c.Previous()
			} else {
				err = c.Next()
			}
			if err != nil {
				t.Fatalf("n=%d step=%d: %v", n, step, err)
			}
			if idx := c.ActiveIndex(); idx < 0 || idx >= n {
				t.Fatalf("n=%d step=%d: active index %d out of range", n, step, idx)
			}
		}
		for step := 0; step < 2*n+1; step++ {
			if err := c.Previous(); err != nil {
				t.Fatalf("Previous: %v", err)
			}
			if idx := c.ActiveIndex(); idx < 0 || idx >= n {
				t.Fatalf("n=%d: active index %d out of range after Previous", n, idx)
			}
		}
	}
}

func TestNextWrapsToStart(t *testing.T) {
	c := newController(t, 3, 2)
	if err := c.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if c.ActiveIndex() != 0 {
		t.Errorf("expected 0 after wrapping, got %d", c.ActiveIndex())
	}
}

func TestPreviousWrapsToEnd(t *testing.T) {
	c := newController(t, 3, 0)
	if err := c.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if c.ActiveIndex() != 2 {
		t.Errorf("expected 2 after wrapping, got %d", c.ActiveIndex())
	}
}

func TestNextPreviousInverse(t *testing.T) {
	for start := 0; start < 4; start++ {
		c := newController(t, 4, start)
		c.Next()
		c.Previous()
		if c.ActiveIndex() != start {
			t.Errorf("next+previous from %d ended at %d", start, c.ActiveIndex())
		}
		c.Previous()
		c.Next()
		if c.ActiveIndex() != start {
			t.Errorf("previous+next from %d ended at %d", start, c.ActiveIndex())
		}
	}
}

func TestNavigationResetsPlayback(t *testing.T) {
	nav := map[string]func(*Controller) error{
		"next":     (*Controller).Next,
		"previous": (*Controller).Previous,
		"jump":     func(c *Controller) error { return c.Jump(2) },
	}
	for name, move := range nav {
		c := newController(t, 4, 1)
		c.ToggleMute()
		c.TogglePlay()
		c.ReportProgress(1, 3, 10)

		if err := move(c); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !c.IsPlaying() || !c.IsMuted() {
			t.Errorf("%s: expected playing and muted, got playing=%v muted=%v", name, c.IsPlaying(), c.IsMuted())
		}
		if c.Progress() != 0 {
			t.Errorf("%s: expected progress reset, got %f", name, c.Progress())
		}
	}
}

func TestToggleMute(t *testing.T) {
	c := newController(t, 3, 1)
	c.ToggleMute()
	if c.IsMuted() {
		t.Error("expected unmuted after first toggle")
	}
	if c.ActiveIndex() != 1 {
		t.Errorf("ToggleMute moved active index to %d", c.ActiveIndex())
	}
	c.ToggleMute()
	if !c.IsMuted() {
		t.Error("expected muted after second toggle")
	}
}

func TestTogglePlay(t *testing.T) {
	c := newController(t, 3, 1)
	c.ToggleMute()
	c.TogglePlay()
	if c.IsPlaying() {
		t.Error("expected paused after toggle")
	}
	if c.IsMuted() {
		t.Error("TogglePlay must not change mute state")
	}
	if c.ActiveIndex() != 1 {
		t.Errorf("TogglePlay moved active index to %d", c.ActiveIndex())
	}
}

func TestSlotForThreeItems(t *testing.T) {
	for active := 0; active < 3; active++ {
		c := newController(t, 3, active)
		counts := map[Slot]int{}
		for i := 0; i < 3; i++ {
			counts[c.SlotFor(i)]++
		}
		if counts[SlotCenter] != 1 || counts[SlotLeft] != 1 || counts[SlotRight] != 1 {
			t.Errorf("active=%d: slot counts = %v", active, counts)
		}
		if counts[SlotHidden] != 0 {
			t.Errorf("active=%d: %d hidden items with three items", active, counts[SlotHidden])
		}
	}
}

func TestSlotForFiveItems(t *testing.T) {
	c := newController(t, 5, 0)
	want := map[int]Slot{
		0: SlotCenter,
		1: SlotRight,
		2: SlotHidden,
		3: SlotHidden,
		4: SlotLeft,
	}
	for idx, slot := range want {
		if got := c.SlotFor(idx); got != slot {
			t.Errorf("SlotFor(%d) = %s, want %s", idx, got, slot)
		}
	}
}

func TestSlotForSingleAndPair(t *testing.T) {
	c := newController(t, 1, 0)
	if got := c.SlotFor(0); got != SlotCenter {
		t.Errorf("single item: SlotFor(0) = %s, want center", got)
	}

	c = newController(t, 2, 0)
	if got := c.SlotFor(1); got != SlotRight {
		t.Errorf("pair: SlotFor(1) = %s, want right", got)
	}
}

func TestSlotForIsPure(t *testing.T) {
	c := newController(t, 5, 3)
	before := c.Snapshot()
	for i := -2; i < 8; i++ {
		c.SlotFor(i)
	}
	if c.Snapshot() != before {
		t.Errorf("SlotFor changed state: %+v -> %+v", before, c.Snapshot())
	}
}

func TestSlotSweep(t *testing.T) {
	// Item 0 in a five item carousel as the active index sweeps forward.
	c := newController(t, 5, 3)
	want := []Slot{SlotHidden, SlotLeft, SlotCenter, SlotRight, SlotHidden}
	// active: 3 -> 4 -> 0 -> 1 -> 2
	for step, slot := range want {
		if step > 0 {
			c.Next()
		}
		if got := c.SlotFor(0); got != slot {
			t.Errorf("step %d (active=%d): SlotFor(0) = %s, want %s", step, c.ActiveIndex(), got, slot)
		}
	}
}

func TestSelectSlotCenterTogglesMute(t *testing.T) {
	c := newController(t, 3, 1)
	if err := c.SelectSlot(0); err != nil {
		t.Fatalf("SelectSlot(0): %v", err)
	}
	if c.ActiveIndex() != 1 {
		t.Errorf("SelectSlot(0) changed active index to %d", c.ActiveIndex())
	}
	if c.IsMuted() {
		t.Error("SelectSlot(0) should toggle mute off")
	}
}

func TestSelectSlotLeftActsAsPrevious(t *testing.T) {
	c := newController(t, 5, 2)
	original := c.ActiveIndex()
	if err := c.SelectSlot(-1); err != nil {
		t.Fatalf("SelectSlot(-1): %v", err)
	}
	if c.ActiveIndex() != 1 {
		t.Errorf("expected active 1, got %d", c.ActiveIndex())
	}
	if got := c.SlotFor(original); got != SlotRight {
		t.Errorf("previous active item slot = %s, want right", got)
	}
}

func TestSelectSlotRightActsAsNext(t *testing.T) {
	c := newController(t, 3, 0)
	if err := c.SelectSlot(1); err != nil {
		t.Fatalf("SelectSlot(1): %v", err)
	}
	if c.ActiveIndex() != 1 {
		t.Errorf("expected active 1, got %d", c.ActiveIndex())
	}
}

func TestSelectSlotRejectsInvalidPosition(t *testing.T) {
	c := newController(t, 5, 0)
	before := c.Snapshot()
	for _, pos := range []int{-2, 2, 7} {
		if err := c.SelectSlot(pos); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("SelectSlot(%d): expected ErrInvalidPosition, got %v", pos, err)
		}
	}
	if c.Snapshot() != before {
		t.Error("invalid SelectSlot changed state")
	}
}

func TestScenarioThreeItems(t *testing.T) {
	c, err := New([]MediaItem{{ID: "A"}, {ID: "B"}, {ID: "C"}}, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.Next()
	if c.ActiveIndex() != 2 || c.Active().ID != "C" {
		t.Fatalf("expected C active, got index %d", c.ActiveIndex())
	}
	if !c.IsPlaying() || !c.IsMuted() {
		t.Errorf("expected playing muted, got playing=%v muted=%v", c.IsPlaying(), c.IsMuted())
	}
	if got := c.SlotFor(0); got != SlotLeft {
		t.Errorf("SlotFor(A) = %s, want left", got)
	}

	c.SelectSlot(-1)
	if c.ActiveIndex() != 1 {
		t.Errorf("expected B active again, got index %d", c.ActiveIndex())
	}
}

func TestReportProgress(t *testing.T) {
	c := newController(t, 3, 1)

	tests := []struct {
		current, duration float64
		want              float64
	}{
		{5, 10, 0.5},
		{7, 0, 0},
		{3, -1, 0},
		{12, 10, 1},
		{-1, 10, 0},
		{1, math.NaN(), 0},
		{1, math.Inf(1), 0},
	}
	for _, tt := range tests {
		if !c.ReportProgress(1, tt.current, tt.duration) {
			t.Fatalf("ReportProgress(%v, %v) was ignored for active item", tt.current, tt.duration)
		}
		if got := c.Progress(); got != tt.want {
			t.Errorf("ReportProgress(%v, %v): progress = %v, want %v", tt.current, tt.duration, got, tt.want)
		}
	}
}

func TestReportProgressIgnoresInactiveItems(t *testing.T) {
	c := newController(t, 3, 1)
	c.ReportProgress(1, 2, 10)

	if c.ReportProgress(0, 9, 10) {
		t.Error("expected report from inactive item to be ignored")
	}
	if c.Progress() != 0.2 {
		t.Errorf("progress changed by inactive report: %f", c.Progress())
	}
}

func TestViewsPlaybackCoupling(t *testing.T) {
	c := newController(t, 5, 0)
	c.ToggleMute()
	c.ReportProgress(0, 1, 4)

	views := c.Views()
	if len(views) != 5 {
		t.Fatalf("expected 5 views, got %d", len(views))
	}

	playing := 0
	for _, v := range views {
		if v.Intent == IntentPlay {
			playing++
		}
		if v.Slot != SlotCenter {
			if v.Active || v.Playing || !v.Muted || v.Progress != 0 || v.Intent != IntentStop {
				t.Errorf("non-centre view %d not stopped: %+v", v.Index, v)
			}
		}
	}
	if playing != 1 {
		t.Errorf("expected exactly one playing view, got %d", playing)
	}

	center := views[0]
	if !center.Active || !center.Playing || center.Muted || center.Progress != 0.25 {
		t.Errorf("unexpected centre view: %+v", center)
	}
	if views[4].Position != -1 || views[1].Position != 1 {
		t.Errorf("unexpected positions: left=%d right=%d", views[4].Position, views[1].Position)
	}
}

func TestViewPausedIntent(t *testing.T) {
	c := newController(t, 3, 0)
	c.TogglePlay()
	if v := c.View(0); v.Intent != IntentPause || v.Playing {
		t.Errorf("expected paused centre view, got %+v", v)
	}
}

func TestClose(t *testing.T) {
	c := newController(t, 3, 1)
	c.Close()

	if c.IsPlaying() {
		t.Error("expected playback stopped after Close")
	}
	for _, v := range c.Views() {
		if v.Intent != IntentStop {
			t.Errorf("view %d intent = %s after Close", v.Index, v.Intent)
		}
	}
	if err := c.Next(); !errors.Is(err, ErrClosed) {
		t.Errorf("Next after Close: expected ErrClosed, got %v", err)
	}
	if err := c.ToggleMute(); !errors.Is(err, ErrClosed) {
		t.Errorf("ToggleMute after Close: expected ErrClosed, got %v", err)
	}
	if c.ReportProgress(1, 1, 2) {
		t.Error("expected progress report ignored after Close")
	}
	if !c.Snapshot().Closed {
		t.Error("expected snapshot to report closed")
	}
}
