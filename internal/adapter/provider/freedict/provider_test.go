package freedict

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

const helloBody = `[{
	"word": "hello",
	"phonetic": "/həˈloʊ/",
	"phonetics": [
		{"text": "/həˈloʊ/", "audio": "https://example.com/hello-us.mp3"},
		{"text": "/hɛˈləʊ/", "audio": "https://example.com/hello-uk.mp3"},
		{"text": "/hɛˈləʊ/", "audio": ""}
	],
	"meanings": [
		{"partOfSpeech": "noun", "definitions": [{"definition": "A greeting.", "example": "She gave a cheerful hello."}]},
		{"partOfSpeech": "interjection", "definitions": [
			{"definition": "  "},
			{"definition": "Used to attract attention.", "example": ""}
		]}
	]
}]`

func newTestProvider(url, accent string) *Provider {
	return NewProvider(url, time.Second, accent, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serveBody(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestProvider_Lookup(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAccept = r.URL.Path, r.Header.Get("Accept")
		w.Write([]byte(helloBody)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	res, err := newTestProvider(srv.URL+"/", AccentUS).Lookup(context.Background(), " hello ")
	require.NoError(t, err)

	assert.Equal(t, "/hello", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "hello", res.Word)
	assert.Equal(t, "/həˈloʊ/", res.Phonetic)
	assert.Equal(t, []Definition{
		{PartOfSpeech: "noun", Text: "A greeting.", Example: "She gave a cheerful hello."},
		{PartOfSpeech: "interjection", Text: "Used to attract attention."},
	}, res.Definitions)
	assert.Equal(t, []Recording{
		{URL: "https://example.com/hello-us.mp3", Accent: AccentUS},
		{URL: "https://example.com/hello-uk.mp3", Accent: AccentUK},
	}, res.Recordings)
}

func TestProvider_LookupAudio_PrefersAccent(t *testing.T) {
	t.Parallel()

	srv, _ := serveBody(t, http.StatusOK, helloBody)

	tests := []struct {
		accent string
		want   string
	}{
		{AccentUK, "https://example.com/hello-uk.mp3"},
		{AccentUS, "https://example.com/hello-us.mp3"},
		{AccentAU, "https://example.com/hello-us.mp3"},
	}
	for _, tt := range tests {
		got, err := newTestProvider(srv.URL, tt.accent).LookupAudio(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "accent %q", tt.accent)
	}
}

func TestProvider_LookupDefinition(t *testing.T) {
	t.Parallel()

	srv, _ := serveBody(t, http.StatusOK, helloBody)

	def, err := newTestProvider(srv.URL, AccentUS).LookupDefinition(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "A greeting.", def)
}

func TestProvider_UnknownWord(t *testing.T) {
	t.Parallel()

	srv, calls := serveBody(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)
	p := newTestProvider(srv.URL, AccentUS)

	res, err := p.Lookup(context.Background(), "asdfxyz")
	require.NoError(t, err)
	assert.Nil(t, res)

	def, err := p.LookupDefinition(context.Background(), "asdfxyz")
	require.NoError(t, err)
	assert.Empty(t, def)

	audio, err := p.LookupAudio(context.Background(), "asdfxyz")
	require.NoError(t, err)
	assert.Empty(t, audio)

	assert.EqualValues(t, 3, calls.Load(), "404 is not retried")
}

func TestProvider_BlankWordSkipsRequest(t *testing.T) {
	t.Parallel()

	srv, calls := serveBody(t, http.StatusOK, helloBody)

	res, err := newTestProvider(srv.URL, AccentUS).Lookup(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Zero(t, calls.Load())
}

func TestProvider_RetriesServerErrorOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"word":"test","phonetics":[],"meanings":[]}]`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	res, err := newTestProvider(srv.URL, AccentUS).Lookup(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "test", res.Word)
	assert.EqualValues(t, 2, calls.Load())
}

func TestProvider_TransportErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantCalls int32
	}{
		{"server error twice", http.StatusInternalServerError, "", 2},
		{"invalid json", http.StatusOK, "not valid json", 1},
		{"object instead of array", http.StatusOK, `{"word":"x"}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, calls := serveBody(t, tt.status, tt.body)

			_, err := newTestProvider(srv.URL, AccentUS).Lookup(context.Background(), "fail")
			assert.True(t, errors.Is(err, domain.ErrTransport), "err = %v", err)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("empty response", func(t *testing.T) {
		res := merge(nil)
		assert.Empty(t, res.Word)
		assert.NotNil(t, res.Definitions)
		assert.NotNil(t, res.Recordings)
		assert.Empty(t, res.FirstDefinition())
		_, ok := res.Recording(AccentUS)
		assert.False(t, ok)
	})

	t.Run("etymologies merged", func(t *testing.T) {
		var entries []apiEntry
		require.NoError(t, decodeEntries(`[
			{"word": "run", "phonetics": [{"text": "/rʌn/", "audio": "https://example.com/run-us.mp3"}],
			 "meanings": [{"partOfSpeech": "verb", "definitions": [{"definition": "To move fast."}]}]},
			{"word": "run", "phonetics": [{"text": "/rʌn/", "audio": "https://example.com/run-us.mp3"}],
			 "meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "An act of running."}]}]}
		]`, &entries))

		res := merge(entries)
		assert.Equal(t, "/rʌn/", res.Phonetic, "phonetic falls back to the first transcription")
		require.Len(t, res.Definitions, 2)
		assert.Equal(t, "verb", res.Definitions[0].PartOfSpeech)
		assert.Equal(t, "noun", res.Definitions[1].PartOfSpeech)
		assert.Len(t, res.Recordings, 1, "recordings are unique by URL")
	})
}

func TestAccentOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/hello-us.mp3", AccentUS},
		{"https://example.com/Hello-UK.mp3", AccentUK},
		{"https://example.com/hello-au.ogg", AccentAU},
		{"https://example.com/us-hello.mp3", AccentUnknown},
		{"https://example.com/well-known.mp3", AccentUnknown},
		{"https://example.com/hello.mp3", AccentUnknown},
		{"", AccentUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, accentOf(tt.url), tt.url)
	}
}

func decodeEntries(raw string, v *[]apiEntry) error {
	return json.Unmarshal([]byte(raw), v)
}
