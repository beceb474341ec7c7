package studio

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/avatar-launch/internal/history"
	"github.com/ziadkadry99/avatar-launch/internal/imagegen"
	"github.com/ziadkadry99/avatar-launch/internal/prompt"
)

// RegisterRoutes mounts POST /api/prompts and POST /api/images.
func RegisterRoutes(r chi.Router, s *Studio) {
	r.Post("/api/prompts", handleBuildPrompt)
	r.Post("/api/images", s.handleGenerate)
}

func handleBuildPrompt(w http.ResponseWriter, r *http.Request) {
	var form prompt.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.Lighting != "" && !prompt.ValidLighting(form.Lighting) {
		writeError(w, http.StatusBadRequest, "unknown lighting style: "+form.Lighting)
		return
	}
	writeJSON(w, http.StatusOK, prompt.Build(form))
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Studio) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.Generate(r.Context(), req.Prompt, history.SourceAPI)
	if err != nil {
		var genErr *imagegen.GenerationError
		switch {
		case errors.Is(err, ErrEmptyPrompt):
			writeError(w, http.StatusBadRequest, "prompt is required")
		case errors.Is(err, ErrNoGenerator):
			writeError(w, http.StatusServiceUnavailable, "image generation is not configured")
		case errors.As(err, &genErr):
			writeError(w, http.StatusBadGateway, genErr.Message)
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
