// Package freedict looks words up in the FreeDictionary API
// (https://dictionaryapi.dev).
package freedict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/wordpractice/internal/adapter/remote"
	"github.com/heartmarshall/wordpractice/internal/domain"
)

// DefaultBaseURL is the public FreeDictionary endpoint for English.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Provider serves definitions and pronunciation recordings. It is safe for
// concurrent use.
type Provider struct {
	baseURL    string
	accent     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects DefaultBaseURL;
// accent is the preferred recording accent.
func NewProvider(baseURL string, timeout time.Duration, accent string, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accent:     strings.ToLower(accent),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// Lookup returns the merged entry for word, or nil when the dictionary does
// not know it. Upstream failures match domain.ErrTransport.
func (p *Provider) Lookup(ctx context.Context, word string) (*Result, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := remote.Do(ctx, p.httpClient, req, p.log)
	if err != nil {
		return nil, fmt.Errorf("freedict: lookup %q: %w", word, err)
	}
	if err := remote.CheckStatus(req, resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.log.DebugContext(ctx, "word not in dictionary", slog.String("word", word))
			return nil, nil
		}
		return nil, fmt.Errorf("freedict: %w", err)
	}
	defer resp.Body.Close()

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("freedict: decode %q: %w: %w", word, domain.ErrTransport, err)
	}

	res := merge(entries)
	p.log.DebugContext(ctx, "word looked up",
		slog.String("word", word),
		slog.Int("definitions", len(res.Definitions)),
		slog.Int("recordings", len(res.Recordings)),
	)
	return res, nil
}

// LookupDefinition returns the first definition of word, or "" for an
// unknown word.
func (p *Provider) LookupDefinition(ctx context.Context, word string) (string, error) {
	res, err := p.Lookup(ctx, word)
	if err != nil {
		return "", err
	}
	return res.FirstDefinition(), nil
}

// LookupAudio returns a recording of word in the preferred accent when one
// exists, any recording otherwise, or "" when there is none.
func (p *Provider) LookupAudio(ctx context.Context, word string) (string, error) {
	res, err := p.Lookup(ctx, word)
	if err != nil {
		return "", err
	}
	rec, _ := res.Recording(p.accent)
	return rec.URL, nil
}
