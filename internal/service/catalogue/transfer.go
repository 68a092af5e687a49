package catalogue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/workspace"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

// ExportJSON returns the caller's catalogue as an indented JSON array.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	cat, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalogue: %w", err)
	}
	return out, nil
}

// ImportJSON replaces the caller's catalogue with the entries in data. The
// whole document is validated first; on any problem the current catalogue
// is left untouched.
func (s *Service) ImportJSON(ctx context.Context, data []byte) (*ImportResult, error) {
	cat, err := s.decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, cat, "json")
}

func (s *Service) decodeJSON(data []byte) (domain.Catalogue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, domain.NewValidationError("file", "must be a JSON array of words")
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, domain.NewValidationError("file", "malformed JSON: "+err.Error())
	}

	now := s.now()
	records := make([]map[string]any, len(raws))
	var errs domain.FieldErrors
	for i, raw := range raws {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			errs.Add(fmt.Sprintf("entries[%d]", i), "must be an object")
			continue
		}
		if w, ok := obj["word"].(string); !ok || strings.TrimSpace(w) == "" {
			errs.Add(fmt.Sprintf("entries[%d].word", i), "must be a non-empty string")
			continue
		}
		records[i] = obj
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	return buildCatalogue(records, now)
}

// buildCatalogue normalizes validated records and rejects duplicate words.
func buildCatalogue(records []map[string]any, now time.Time) (domain.Catalogue, error) {
	cat := make(domain.Catalogue, 0, len(records))
	for i, rec := range records {
		e, ok := domain.ParseEntry(rec, now)
		if !ok {
			return nil, domain.NewValidationError(fmt.Sprintf("entries[%d].word", i), "must be a non-empty string")
		}
		cat = append(cat, e)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// replace swaps in cat as the caller's catalogue.
func (s *Service) replace(ctx context.Context, cat domain.Catalogue, format string) (*ImportResult, error) {
	userID := ctxutil.UserOrGuest(ctx)
	err := s.mutate(ctx, userID, func(ws *workspace.Workspace) error {
		if err := ws.ReplaceCatalogue(ctx, cat); err != nil {
			return fmt.Errorf("save catalogue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "catalogue imported",
		slog.String("user_id", userID.String()),
		slog.String("format", format),
		slog.Int("words", len(cat)),
	)
	return &ImportResult{Imported: len(cat)}, nil
}

func (s *Service) snapshot(ctx context.Context) (domain.Catalogue, error) {
	var out domain.Catalogue
	err := s.workspaces.Do(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		out = ws.Catalogue.Clone()
		return nil
	})
	if out == nil {
		out = domain.Catalogue{}
	}
	return out, err
}
