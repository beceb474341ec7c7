package showcase

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/avatar-launch/internal/metrics"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// command is the incoming WebSocket message format. Only the fields relevant
// to Type are read.
type command struct {
	Type        string  `json:"type"` // next, previous, jump, select, mute, play, progress
	Index       int     `json:"index"`
	Position    int     `json:"position"`
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
}

// event is the outgoing WebSocket message format.
type event struct {
	Type  string `json:"type"` // "frame" or "error"
	Frame *Frame `json:"frame,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("showcase: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sub := h.session.Subscribe()
	metrics.CarouselViewers.Inc()
	defer metrics.CarouselViewers.Dec()

	errs := make(chan string, 8)
	done := make(chan struct{})
	readerDone := make(chan struct{})
	go h.writeLoop(conn, sub, errs, readerDone, done)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("showcase: websocket read: %v", err)
			}
			break
		}

		var cmd command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			queueError(errs, "invalid message format")
			continue
		}
		if err := h.apply(cmd); err != nil {
			queueError(errs, err.Error())
		}
	}

	close(readerDone)
	sub.Close()
	<-done
}

// apply runs cmd against the session. Successful commands reach this
// connection through its subscription like any other change.
func (h *handler) apply(cmd command) error {
	var err error
	switch cmd.Type {
	case "next":
		_, err = h.session.Next()
	case "previous":
		_, err = h.session.Previous()
	case "jump":
		_, err = h.session.Jump(cmd.Index)
	case "select":
		_, err = h.session.SelectSlot(cmd.Position)
	case "mute":
		_, err = h.session.ToggleMute()
	case "play":
		_, err = h.session.TogglePlay()
	case "progress":
		h.session.ReportProgress(cmd.Index, cmd.CurrentTime, cmd.Duration)
	default:
		return fmt.Errorf("unknown message type: %s", cmd.Type)
	}
	return err
}

// writeLoop is the only writer on conn. It exits when the subscription is
// closed or a write fails. readerDone is closed once the read loop has
// returned.
func (h *handler) writeLoop(conn *websocket.Conn, sub *Subscription, errs <-chan string, readerDone <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case f, ok := <-sub.C:
			if !ok {
				// Session closed or reader gone: say goodbye, then drop the
				// connection if the peer never answers so the reader unblocks.
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				select {
				case <-readerDone:
				case <-time.After(h.closeWait):
					conn.Close()
				}
				return
			}
			if !send(conn, event{Type: "frame", Frame: &f}) {
				conn.Close()
				return
			}
		case msg := <-errs:
			if !send(conn, event{Type: "error", Error: msg}) {
				conn.Close()
				return
			}
		}
	}
}

func send(conn *websocket.Conn, ev event) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		log.Printf("showcase: websocket write: %v", err)
		return false
	}
	return true
}

// queueError hands msg to the writer, dropping it when the writer is behind.
func queueError(errs chan<- string, msg string) {
	select {
	case errs <- msg:
	default:
	}
}
