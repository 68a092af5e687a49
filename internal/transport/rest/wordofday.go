package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordpractice/internal/service/wordofday"
)

type wordOfDayService interface {
	Today(ctx context.Context) (*wordofday.Word, error)
}

// WordOfDayHandler serves the daily word.
type WordOfDayHandler struct {
	svc wordOfDayService
	log *slog.Logger
}

// NewWordOfDayHandler creates a WordOfDayHandler.
func NewWordOfDayHandler(svc wordOfDayService, logger *slog.Logger) *WordOfDayHandler {
	return &WordOfDayHandler{svc: svc, log: logger.With("handler", "wordofday")}
}

// Today handles GET /api/word-of-the-day.
func (h *WordOfDayHandler) Today(w http.ResponseWriter, r *http.Request) {
	word, err := h.svc.Today(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, word)
}
