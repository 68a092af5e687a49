package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/service/practice"
)

type practiceService interface {
	SelectNext(ctx context.Context, input practice.SelectInput) (*practice.Prompt, error)
	RecordAttempt(ctx context.Context, input practice.AttemptInput) (*practice.AttemptResult, error)
	Hint(ctx context.Context) (*practice.HintResult, error)
	RevealWord(ctx context.Context) (*practice.Reveal, error)
	Session(ctx context.Context) (domain.SessionStats, error)
	Restart(ctx context.Context) error
	Stats(ctx context.Context) (*practice.Stats, error)
	SoundEnabled(ctx context.Context) (bool, error)
	SetSoundEnabled(ctx context.Context, enabled bool) error
}

// PracticeHandler serves practice rounds, statistics and the sound setting.
type PracticeHandler struct {
	svc practiceService
	log *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(svc practiceService, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{svc: svc, log: logger.With("handler", "practice")}
}

type nextRequest struct {
	Mode  string   `json:"mode"`
	Words []string `json:"words"`
}

type attemptRequest struct {
	Word        string `json:"word"`
	Answer      string `json:"answer"`
	Correct     *bool  `json:"correct"`
	RevealCount int    `json:"revealCount"`
}

type soundRequest struct {
	Enabled *bool `json:"enabled"`
}

type soundResponse struct {
	Enabled bool `json:"enabled"`
}

// Next handles POST /api/practice/next.
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	req := nextRequest{Mode: string(domain.ModeCatalogue)}
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	prompt, err := h.svc.SelectNext(r.Context(), practice.SelectInput{
		Mode:  domain.PracticeMode(req.Mode),
		Words: req.Words,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// Attempt handles POST /api/practice/attempt.
func (h *PracticeHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.RecordAttempt(r.Context(), practice.AttemptInput{
		Word:        req.Word,
		Answer:      req.Answer,
		Correct:     req.Correct,
		RevealCount: req.RevealCount,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Hint handles GET /api/practice/hint.
func (h *PracticeHandler) Hint(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Hint(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Reveal handles POST /api/practice/reveal.
func (h *PracticeHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RevealWord(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Session handles GET /api/practice/session.
func (h *PracticeHandler) Session(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Session(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Restart handles POST /api/practice/restart.
func (h *PracticeHandler) Restart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Restart(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/stats.
func (h *PracticeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Sound handles GET /api/settings/sound.
func (h *PracticeHandler) Sound(w http.ResponseWriter, r *http.Request) {
	on, err := h.svc.SoundEnabled(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, soundResponse{Enabled: on})
}

// SetSound handles PUT /api/settings/sound.
func (h *PracticeHandler) SetSound(w http.ResponseWriter, r *http.Request) {
	var req soundRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if req.Enabled == nil {
		handleError(h.log, w, r, domain.NewValidationError("enabled", "required"))
		return
	}

	if err := h.svc.SetSoundEnabled(r.Context(), *req.Enabled); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, soundResponse{Enabled: *req.Enabled})
}
