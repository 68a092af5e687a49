// Package supabase stores catalogues in a Supabase (PostgREST) table with
// one row per user: user_id uuid primary key, entries jsonb, updated_at.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/adapter/remote"
	"github.com/heartmarshall/wordpractice/internal/domain"
)

// Store is a remote catalogue store over the PostgREST API.
type Store struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
}

// NewStore creates a Store for the given project URL and table.
func NewStore(projectURL, apiKey, table string, timeout time.Duration, logger *slog.Logger) *Store {
	return &Store{
		baseURL:    strings.TrimRight(projectURL, "/"),
		apiKey:     apiKey,
		table:      table,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "supabase"),
		now:        time.Now,
	}
}

type row struct {
	UserID    string          `json:"user_id,omitempty"`
	Entries   json.RawMessage `json:"entries"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

func (s *Store) tableURL(query url.Values) string {
	return s.baseURL + "/rest/v1/" + url.PathEscape(s.table) + "?" + query.Encode()
}

// FetchCatalogue returns the user's catalogue, or domain.ErrNotFound when the
// table has no row for the user.
func (s *Store) FetchCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error) {
	q := url.Values{}
	q.Set("user_id", "eq."+userID.String())
	q.Set("select", "entries")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := remote.Do(ctx, s.httpClient, req, s.log)
	if err != nil {
		s.log.ErrorContext(ctx, "supabase fetch failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("supabase: %w", err)
	}
	if err := remote.CheckStatus(req, resp); err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}
	defer resp.Body.Close()

	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("supabase: decode rows: %w: %w", domain.ErrTransport, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase: catalogue of %s: %w", userID, domain.ErrNotFound)
	}

	cat, err := domain.ParseCatalogueStrict(rows[0].Entries, s.now())
	if err != nil {
		return nil, fmt.Errorf("supabase: %w: %w", domain.ErrTransport, err)
	}
	return cat, nil
}

// UpsertCatalogue inserts or replaces the user's row.
func (s *Store) UpsertCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error {
	if cat == nil {
		cat = domain.Catalogue{}
	}
	entries, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("supabase: encode catalogue: %w", err)
	}
	updated := s.now().UTC()
	payload, err := json.Marshal([]row{{
		UserID:    userID.String(),
		Entries:   entries,
		UpdatedAt: &updated,
	}})
	if err != nil {
		return fmt.Errorf("supabase: encode row: %w", err)
	}

	q := url.Values{}
	q.Set("on_conflict", "user_id")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tableURL(q), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("supabase: create request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := remote.Do(ctx, s.httpClient, req, s.log)
	if err != nil {
		return fmt.Errorf("supabase: %w", err)
	}
	if err := remote.CheckStatus(req, resp); err != nil {
		return fmt.Errorf("supabase: upsert: %w: %w", domain.ErrTransport, err)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()
	return nil
}

func (s *Store) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
}
