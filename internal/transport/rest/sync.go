package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/service/syncer"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

type syncService interface {
	Sync(ctx context.Context, userID uuid.UUID) (syncer.Result, error)
}

// SyncHandler triggers a reconcile with the remote store.
type SyncHandler struct {
	svc syncService
	log *slog.Logger
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(svc syncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{svc: svc, log: logger.With("handler", "sync")}
}

type syncResponse struct {
	Outcome syncer.Outcome `json:"outcome"`
	Words   int            `json:"words"`
	Error   string         `json:"error,omitempty"`
}

// Sync handles POST /api/sync. Only signed-in users have a remote copy.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	res, err := h.svc.Sync(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := syncResponse{Outcome: res.Outcome, Words: len(res.Catalogue)}
	if res.Err != nil {
		resp.Error = "remote store unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}
