// Package showcase shares one carousel between every connected viewer. A
// Session applies commands one at a time and pushes the resulting frame to
// all subscribers.
package showcase

import (
	"sync"

	"github.com/ziadkadry99/avatar-launch/internal/carousel"
	"github.com/ziadkadry99/avatar-launch/internal/metrics"
)

// Frame is the full presentation state sent to viewers after every change.
type Frame struct {
	State carousel.State      `json:"state"`
	Items []carousel.ItemView `json:"items"`
}

// Session owns a carousel controller and serialises access to it.
type Session struct {
	mu     sync.Mutex
	ctrl   *carousel.Controller
	subs   map[*Subscription]struct{}
	closed bool
}

// NewSession wraps ctrl. The session takes ownership; ctrl must not be used
// directly afterwards.
func NewSession(ctrl *carousel.Controller) *Session {
	return &Session{
		ctrl: ctrl,
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscription receives frames from a Session. Only the most recent frame is
// buffered: a slow reader skips intermediate frames.
type Subscription struct {
	C <-chan Frame

	ch      chan Frame
	session *Session
	once    sync.Once
}

// Close detaches the subscription and closes C. It is safe to call more than
// once.
func (sub *Subscription) Close() {
	sub.session.mu.Lock()
	defer sub.session.mu.Unlock()
	sub.closeLocked()
}

func (sub *Subscription) closeLocked() {
	sub.once.Do(func() {
		delete(sub.session.subs, sub)
		close(sub.ch)
	})
}

// Subscribe registers a new subscriber. The returned subscription already
// holds the current frame. On a closed session C is closed immediately after
// that frame.
func (s *Session) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Frame, 1)
	sub := &Subscription{C: ch, ch: ch, session: s}
	ch <- s.frameLocked()
	if s.closed {
		sub.closeLocked()
		return sub
	}
	s.subs[sub] = struct{}{}
	return sub
}

// Frame returns the current frame.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

// Next advances to the following item.
func (s *Session) Next() (Frame, error) {
	return s.apply("next", (*carousel.Controller).Next)
}

// Previous goes back to the preceding item.
func (s *Session) Previous() (Frame, error) {
	return s.apply("previous", (*carousel.Controller).Previous)
}

// Jump activates the item at index.
func (s *Session) Jump(index int) (Frame, error) {
	return s.apply("jump", func(c *carousel.Controller) error { return c.Jump(index) })
}

// SelectSlot handles a click on the card at relative position -1, 0 or 1.
func (s *Session) SelectSlot(position int) (Frame, error) {
	return s.apply("select", func(c *carousel.Controller) error { return c.SelectSlot(position) })
}

// ToggleMute flips the mute flag of the active item.
func (s *Session) ToggleMute() (Frame, error) {
	return s.apply("mute", (*carousel.Controller).ToggleMute)
}

// TogglePlay flips the play flag of the active item.
func (s *Session) TogglePlay() (Frame, error) {
	return s.apply("play", (*carousel.Controller).TogglePlay)
}

// ReportProgress records a playback position for itemIndex. Subscribers are
// only notified when the stored fraction actually changed. The returned bool
// reports whether the report was accepted.
func (s *Session) ReportProgress(itemIndex int, currentTime, duration float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ctrl.Progress()
	if !s.ctrl.ReportProgress(itemIndex, currentTime, duration) {
		return false
	}
	metrics.CarouselCommands.WithLabelValues("progress").Inc()
	if s.ctrl.Progress() != before {
		s.broadcastLocked(s.frameLocked())
	}
	return true
}

// Close stops playback, sends the final frame and closes every subscription.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.ctrl.Close()
	s.broadcastLocked(s.frameLocked())
	for sub := range s.subs {
		sub.closeLocked()
	}
}

func (s *Session) apply(command string, op func(*carousel.Controller) error) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := op(s.ctrl); err != nil {
		return Frame{}, err
	}
	metrics.CarouselCommands.WithLabelValues(command).Inc()
	f := s.frameLocked()
	s.broadcastLocked(f)
	return f, nil
}

func (s *Session) frameLocked() Frame {
	return Frame{State: s.ctrl.Snapshot(), Items: s.ctrl.Views()}
}

// broadcastLocked replaces any undelivered frame with f.
func (s *Session) broadcastLocked(f Frame) {
	for sub := range s.subs {
		select {
		case sub.ch <- f:
			continue
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- f:
		default:
		}
	}
}
