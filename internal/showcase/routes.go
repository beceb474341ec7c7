package showcase

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/avatar-launch/internal/carousel"
)

// RegisterRoutes mounts the carousel REST API. A nil session means the
// catalog is empty; every carousel route then answers 503.
func RegisterRoutes(r chi.Router, s *Session) {
	h := &handler{session: s}

	r.Route("/api/carousel", func(r chi.Router) {
		r.Use(h.requireSession)
		r.Get("/", h.handleFrame)
		r.Post("/next", h.handleNext)
		r.Post("/previous", h.handlePrevious)
		r.Post("/jump", h.handleJump)
		r.Post("/select", h.handleSelect)
		r.Post("/mute", h.handleMute)
		r.Post("/play", h.handlePlay)
		r.Post("/progress", h.handleProgress)
	})
}

// RegisterStream mounts the /ws/carousel WebSocket. r should not impose a
// request timeout.
func RegisterStream(r chi.Router, s *Session) {
	h := &handler{session: s, closeWait: writeWait}
	r.With(h.requireSession).Get("/ws/carousel", h.handleWebSocket)
}

type handler struct {
	session *Session

	// closeWait is how long a peer gets to answer our close frame before
	// the connection is dropped.
	closeWait time.Duration
}

func (h *handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.session == nil {
			writeError(w, http.StatusServiceUnavailable, carousel.ErrEmptyCollection.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) handleFrame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Frame())
}

func (h *handler) handleNext(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.session.Next())
}

func (h *handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.session.Previous())
}

func (h *handler) handleMute(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.session.ToggleMute())
}

func (h *handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.session.TogglePlay())
}

type jumpRequest struct {
	Index *int `json:"index"`
}

func (h *handler) handleJump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Index == nil {
		writeError(w, http.StatusBadRequest, "index is required")
		return
	}
	h.respond(w)(h.session.Jump(*req.Index))
}

type selectRequest struct {
	Position *int `json:"position"`
}

func (h *handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Position == nil {
		writeError(w, http.StatusBadRequest, "position is required")
		return
	}
	h.respond(w)(h.session.SelectSlot(*req.Position))
}

type progressRequest struct {
	Index       int     `json:"index"`
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
}

func (h *handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.session.ReportProgress(req.Index, req.CurrentTime, req.Duration)
	w.WriteHeader(http.StatusNoContent)
}

// respond writes the frame produced by a session operation, or maps its
// error to a status code.
func (h *handler) respond(w http.ResponseWriter) func(Frame, error) {
	return func(f Frame, err error) {
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, carousel.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, carousel.ErrClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("showcase: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
