// Package jsonapi stores catalogues on a plain JSON HTTP service:
// GET and PUT {base}/users/{id}/catalogue with an array of word entries.
package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

// Store is a remote catalogue store over a JSON HTTP API.
type Store struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
}

// NewStore creates a Store. token is sent as a bearer token when non-empty.
func NewStore(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Store {
	return &Store{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "jsonapi"),
		now:        time.Now,
	}
}

func (s *Store) catalogueURL(userID uuid.UUID) string {
	return s.baseURL + "/users/" + url.PathEscape(userID.String()) + "/catalogue"
}

// FetchCatalogue returns the stored catalogue or domain.ErrNotFound.
func (s *Store) FetchCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.catalogueURL(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("jsonapi: create request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := remote.Do(ctx, s.httpClient, req, s.log)
	if err != nil {
		s.log.ErrorContext(ctx, "jsonapi fetch failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("jsonapi: %w", err)
	}
	if err := remote.CheckStatus(req, resp); err != nil {
		return nil, fmt.Errorf("jsonapi: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jsonapi: read body: %w: %w", domain.ErrTransport, err)
	}

	cat, err := domain.ParseCatalogueStrict(body, s.now())
	if err != nil {
		return nil, fmt.Errorf("jsonapi: %w: %w", domain.ErrTransport, err)
	}

	s.log.DebugContext(ctx, "jsonapi catalogue fetched",
		slog.String("user_id", userID.String()),
		slog.Int("words", len(cat)),
	)
	return cat, nil
}

// UpsertCatalogue replaces the stored catalogue.
func (s *Store) UpsertCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error {
	if cat == nil {
		cat = domain.Catalogue{}
	}
	payload, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("jsonapi: encode catalogue: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.catalogueURL(userID), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("jsonapi: create request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := remote.Do(ctx, s.httpClient, req, s.log)
	if err != nil {
		return fmt.Errorf("jsonapi: %w", err)
	}
	if err := remote.CheckStatus(req, resp); err != nil {
		// A 404 on write means the service has no such endpoint, not an
		// empty catalogue.
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("jsonapi: %w: %w", domain.ErrTransport, err)
		}
		return fmt.Errorf("jsonapi: %w", err)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	s.log.DebugContext(ctx, "jsonapi catalogue stored",
		slog.String("user_id", userID.String()),
		slog.Int("words", len(cat)),
	)
	return nil
}

func (s *Store) authorize(req *http.Request) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
}
