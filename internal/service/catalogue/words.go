package catalogue

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/workspace"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

// AddWord appends a word to the caller's catalogue. When no definition is
// given the dictionary is asked for one; a failed lookup leaves it empty.
func (s *Service) AddWord(ctx context.Context, input AddWordInput) (*domain.WordEntry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID := ctxutil.UserOrGuest(ctx)
	word := strings.TrimSpace(input.Word)

	// Reject duplicates before spending a lookup on them.
	err := s.workspaces.Do(ctx, userID, func(ws *workspace.Workspace) error {
		return checkNew(ws.Catalogue, word)
	})
	if err != nil {
		return nil, err
	}

	definition := strings.TrimSpace(input.Definition)
	if definition == "" {
		definition = s.lookupDefinition(ctx, word)
	}

	var added domain.WordEntry
	err = s.mutate(ctx, userID, func(ws *workspace.Workspace) error {
		if err := checkNew(ws.Catalogue, word); err != nil {
			return err
		}
		added = domain.NewWordEntry(word, definition, s.now())

		prev := ws.Catalogue
		ws.Catalogue = append(slices.Clip(ws.Catalogue), added)
		if err := ws.SaveCatalogue(ctx); err != nil {
			ws.Catalogue = prev
			return fmt.Errorf("save catalogue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "word added",
		slog.String("user_id", userID.String()),
		slog.String("word", added.Word),
		slog.Bool("has_definition", added.Definition != ""),
	)
	return &added, nil
}

// RemoveWord deletes word from the caller's catalogue.
func (s *Service) RemoveWord(ctx context.Context, word string) error {
	userID := ctxutil.UserOrGuest(ctx)

	err := s.mutate(ctx, userID, func(ws *workspace.Workspace) error {
		idx := ws.Catalogue.Index(word)
		if idx < 0 {
			return fmt.Errorf("word %q: %w", word, domain.ErrNotFound)
		}

		next := slices.Delete(slices.Clone(ws.Catalogue), idx, idx+1)
		if err := ws.ReplaceCatalogue(ctx, next); err != nil {
			return fmt.Errorf("save catalogue: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "word removed",
		slog.String("user_id", userID.String()),
		slog.String("word", word),
	)
	return nil
}

// ListWords returns a copy of the caller's catalogue sorted by word.
func (s *Service) ListWords(ctx context.Context) (domain.Catalogue, error) {
	var out domain.Catalogue
	err := s.workspaces.Do(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		out = ws.Catalogue.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = domain.Catalogue{}
	}
	slices.SortFunc(out, func(a, b domain.WordEntry) int {
		return strings.Compare(domain.WordKey(a.Word), domain.WordKey(b.Word))
	})
	return out, nil
}

// UpdateDefinition replaces the definition of an existing word.
func (s *Service) UpdateDefinition(ctx context.Context, input UpdateDefinitionInput) (*domain.WordEntry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated domain.WordEntry
	err := s.mutate(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		e := ws.Catalogue.Find(input.Word)
		if e == nil {
			return fmt.Errorf("word %q: %w", input.Word, domain.ErrNotFound)
		}

		prev := e.Definition
		e.Definition = strings.TrimSpace(input.Definition)
		if err := ws.SaveCatalogue(ctx); err != nil {
			e.Definition = prev
			return fmt.Errorf("save catalogue: %w", err)
		}
		updated = e.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) lookupDefinition(ctx context.Context, word string) string {
	if s.dictionary == nil {
		return ""
	}
	def, err := s.dictionary.LookupDefinition(ctx, word)
	if err != nil {
		s.log.WarnContext(ctx, "definition lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return def
}

func checkNew(cat domain.Catalogue, word string) error {
	if cat.Index(word) >= 0 {
		return domain.NewValidationError("word", "already in the catalogue")
	}
	return nil
}
