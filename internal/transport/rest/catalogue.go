package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/service/catalogue"
)

// maxImportBytes caps the size of an uploaded catalogue.
const maxImportBytes = 10 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type catalogueService interface {
	AddWord(ctx context.Context, input catalogue.AddWordInput) (*domain.WordEntry, error)
	RemoveWord(ctx context.Context, word string) error
	ListWords(ctx context.Context) (domain.Catalogue, error)
	UpdateDefinition(ctx context.Context, input catalogue.UpdateDefinitionInput) (*domain.WordEntry, error)
	ExportJSON(ctx context.Context) ([]byte, error)
	ImportJSON(ctx context.Context, data []byte) (*catalogue.ImportResult, error)
	ExportXLSX(ctx context.Context, w io.Writer) error
	ImportXLSX(ctx context.Context, r io.Reader) (*catalogue.ImportResult, error)
}

// CatalogueHandler serves the word list and catalogue import/export.
type CatalogueHandler struct {
	svc catalogueService
	log *slog.Logger
	now func() time.Time
}

// NewCatalogueHandler creates a CatalogueHandler.
func NewCatalogueHandler(svc catalogueService, logger *slog.Logger) *CatalogueHandler {
	return &CatalogueHandler{svc: svc, log: logger.With("handler", "catalogue"), now: time.Now}
}

type addWordRequest struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

type definitionRequest struct {
	Definition string `json:"definition"`
}

// List handles GET /api/words.
func (h *CatalogueHandler) List(w http.ResponseWriter, r *http.Request) {
	cat, err := h.svc.ListWords(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// Add handles POST /api/words.
func (h *CatalogueHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.svc.AddWord(r.Context(), catalogue.AddWordInput{Word: req.Word, Definition: req.Definition})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// Remove handles DELETE /api/words/{word}.
func (h *CatalogueHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveWord(r.Context(), r.PathValue("word")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDefinition handles PUT /api/words/{word}/definition.
func (h *CatalogueHandler) UpdateDefinition(w http.ResponseWriter, r *http.Request) {
	var req definitionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.svc.UpdateDefinition(r.Context(), catalogue.UpdateDefinitionInput{
		Word:       r.PathValue("word"),
		Definition: req.Definition,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Export handles GET /api/catalogue/export?format=json|xlsx.
func (h *CatalogueHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := transferFormat(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	name := fmt.Sprintf("catalogue-%s.%s", h.now().Format(time.DateOnly), format)

	switch format {
	case "xlsx":
		// Buffered so a failed export can still be answered with an error status.
		var buf bytes.Buffer
		if err := h.svc.ExportXLSX(r.Context(), &buf); err != nil {
			handleError(h.log, w, r, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck
	default:
		data, err := h.svc.ExportJSON(r.Context())
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data) //nolint:errcheck
	}
}

// Import handles POST /api/catalogue/import?format=json|xlsx. The body is
// the raw file.
func (h *CatalogueHandler) Import(w http.ResponseWriter, r *http.Request) {
	format, err := transferFormat(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	var res *catalogue.ImportResult
	switch format {
	case "xlsx":
		res, err = h.svc.ImportXLSX(r.Context(), body)
	default:
		var data []byte
		if data, err = io.ReadAll(body); err != nil {
			handleError(h.log, w, r, domain.NewValidationError("file", "unreadable or too large"))
			return
		}
		res, err = h.svc.ImportJSON(r.Context(), data)
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func transferFormat(r *http.Request) (string, error) {
	switch f := r.URL.Query().Get("format"); f {
	case "", "json":
		return "json", nil
	case "xlsx":
		return "xlsx", nil
	default:
		return "", domain.NewValidationError("format", "must be json or xlsx")
	}
}
