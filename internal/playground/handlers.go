package playground

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/lessons"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

// transformRequest is the body of POST /api/ciphers/{id}/transform.
type transformRequest struct {
	Input string `json:"input"`
	Key   string `json:"key"`
	Mode  string `json:"mode"`
}

// transformResponse is the result of a one-shot transform.
type transformResponse struct {
	Output string   `json:"output"`
	Units  []string `json:"units"`
}

// lessonResponse is a lesson rendered to HTML.
type lessonResponse struct {
	lessons.Lesson
	HTML string `json:"html"`
}

// starsResponse is the decorative repository star count.
type starsResponse struct {
	Count int  `json:"count"`
	Known bool `json:"known"`
}

// settingsResponse tells the page how to boot.
type settingsResponse struct {
	DefaultCipher string      `json:"default_cipher"`
	TourKey       string      `json:"tour_key"`
	TourAutoStart bool        `json:"tour_auto_start"`
	TourSteps     []tour.Step `json:"tour_steps"`
}

func (p *Playground) handleCiphers(w http.ResponseWriter, r *http.Request) {
	all := ciphers.All()
	infos := make([]ciphers.Info, len(all))
	for i, c := range all {
		infos[i] = c.Info()
	}
	writeJSON(w, http.StatusOK, infos)
}

func (p *Playground) handleTransform(w http.ResponseWriter, r *http.Request) {
	c, ok := ciphers.Lookup(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown cipher"})
		return
	}

	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	mode, err := ciphers.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	units, err := ciphers.TransformUnits(c, req.Input, req.Key, mode)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	if units == nil {
		units = []string{}
	}
	writeJSON(w, http.StatusOK, transformResponse{Output: strings.Join(units, ""), Units: units})
}

func (p *Playground) handleLessons(w http.ResponseWriter, r *http.Request) {
	if p.opts.Lessons == nil {
		writeJSON(w, http.StatusOK, []lessons.Lesson{})
		return
	}
	writeJSON(w, http.StatusOK, p.opts.Lessons.List())
}

func (p *Playground) handleLesson(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if p.opts.Lessons == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lessons not loaded"})
		return
	}
	lesson, ok := p.opts.Lessons.Get(slug)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown lesson"})
		return
	}
	html, err := p.opts.Lessons.Render(slug)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, lessonResponse{Lesson: lesson, HTML: html})
}

func (p *Playground) handleStars(w http.ResponseWriter, r *http.Request) {
	var resp starsResponse
	if p.opts.Stars != nil {
		resp.Count, resp.Known = p.opts.Stars.Count(r.Context())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (p *Playground) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsResponse{
		DefaultCipher: p.opts.DefaultCipher,
		TourKey:       p.opts.Tour.StorageKey,
		TourAutoStart: p.opts.Tour.AutoStart,
		TourSteps:     tour.CipherPageTour(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
