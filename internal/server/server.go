// Package server exposes the session triggers over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/melody"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Session is the part of robot.Session the server drives.
type Session interface {
	PlayMelody() (robot.Report, error)
	Reset() error
	State() robot.State
	Melody() []melody.NoteEvent
}

// MelodyNote is the wire form of a melody note.
type MelodyNote struct {
	Note     string  `json:"note"`
	Key      int     `json:"key"`
	Duration float64 `json:"duration"` // Seconds.
}

type errorBody struct {
	Error string `json:"error"`
}

type handlers struct {
	session Session
	keys    melody.KeyMapper
	logger  contracts.Logger
}

// New builds the router: GET /state, POST /play, POST /reset and GET /melody. Requests
// from allowedOrigins pass CORS.
func New(session Session, keys melody.KeyMapper, allowedOrigins []string, logger contracts.Logger) http.Handler {
	h := &handlers{session: session, keys: keys, logger: logger}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/state", h.state).Methods(http.MethodGet)
	router.HandleFunc("/play", h.play).Methods(http.MethodPost)
	router.HandleFunc("/reset", h.reset).Methods(http.MethodPost)
	router.HandleFunc("/melody", h.melody).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)
}

func (h *handlers) state(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, h.session.State())
}

// play blocks until the melody has finished.
func (h *handlers) play(w http.ResponseWriter, _ *http.Request) {
	report, err := h.session.PlayMelody()
	if err != nil {
		h.fail(w, err)
		return
	}
	h.write(w, http.StatusOK, report)
}

func (h *handlers) reset(w http.ResponseWriter, _ *http.Request) {
	if err := h.session.Reset(); err != nil {
		h.fail(w, err)
		return
	}
	h.write(w, http.StatusOK, h.session.State())
}

func (h *handlers) melody(w http.ResponseWriter, _ *http.Request) {
	events := h.session.Melody()
	notes := make([]MelodyNote, 0, len(events))
	for _, ev := range events {
		key, err := h.keys.KeyIndex(ev.Note)
		if err != nil {
			h.fail(w, err)
			return
		}
		notes = append(notes, MelodyNote{Note: ev.Note, Key: key, Duration: ev.Duration.Seconds()})
	}
	h.write(w, http.StatusOK, notes)
}

func (h *handlers) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, robot.ErrBusy) {
		status = http.StatusConflict
	}
	h.logger.Warn("Request failed", h.logger.Field().Int("status", status), h.logger.Field().Error("error", err))
	h.write(w, status, errorBody{Error: err.Error()})
}

func (h *handlers) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", h.logger.Field().Error("error", err))
	}
}
