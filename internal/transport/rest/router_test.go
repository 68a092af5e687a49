package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordpractice/internal/localstore"
	"github.com/heartmarshall/wordpractice/internal/service/catalogue"
	"github.com/heartmarshall/wordpractice/internal/service/practice"
	"github.com/heartmarshall/wordpractice/internal/service/syncer"
	"github.com/heartmarshall/wordpractice/internal/service/wordofday"
	"github.com/heartmarshall/wordpractice/internal/workspace"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

type staticPool []string

func (p staticPool) Words() []string { return p }

type testServer struct {
	handler http.Handler
	kv      *localstore.MemoryKV
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := localstore.NewMemoryKV()
	store := localstore.New(kv, log)
	reg := workspace.NewRegistry(store, log)
	pool := staticPool{"rhythm"}

	sync := syncer.NewService(log, reg, nil, time.Second)
	mux := NewRouter(Handlers{
		Health:    NewHealthHandler("test", HealthCheck{Name: "local_store", Ping: kv.Ping}),
		Practice:  NewPracticeHandler(practice.NewService(log, reg, pool, sync, nil, store, practice.Options{Seed: 1}), log),
		Catalogue: NewCatalogueHandler(catalogue.NewService(log, reg, sync, nil), log),
		Sync:      NewSyncHandler(sync, log),
		WordOfDay: NewWordOfDayHandler(wordofday.NewService(log, pool, store, nil, time.UTC), log),
	})
	return &testServer{handler: mux, kv: kv}
}

func (s *testServer) do(t *testing.T, method, target, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if userID != uuid.Nil {
		req = req.WithContext(ctxutil.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestRouter_PracticeFlow(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/words", `{"word":"cat","definition":"feline"}`, uuid.Nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/practice/next", "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	prompt := decode[practice.Prompt](t, rec)
	assert.Equal(t, "cat", prompt.Word)
	assert.Equal(t, "___", prompt.CoveredForm)

	rec = srv.do(t, http.MethodPost, "/api/practice/attempt", `{"answer":"cot"}`, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[practice.AttemptResult](t, rec)
	assert.False(t, res.Correct)
	assert.Equal(t, "___", res.Hint)

	rec = srv.do(t, http.MethodGet, "/api/practice/hint", "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[practice.HintResult](t, rec).Attempts)

	rec = srv.do(t, http.MethodPost, "/api/practice/attempt", `{"word":"dog","answer":"dog"}`, uuid.Nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/stats", "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[practice.Stats](t, rec)
	require.Len(t, stats.TopMistakes, 1)
	assert.Equal(t, "cot", stats.TopMistakes[0].Variant)
}

func TestRouter_ErrorMapping(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name, method, target, body string
		want                       int
	}{
		{"hint without round", http.MethodGet, "/api/practice/hint", "", http.StatusConflict},
		{"next on empty catalogue", http.MethodPost, "/api/practice/next", `{"mode":"catalogue"}`, http.StatusBadRequest},
		{"unknown mode", http.MethodPost, "/api/practice/next", `{"mode":"later"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/words", `{"word":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/words", `{"wrd":"cat"}`, http.StatusBadRequest},
		{"remove missing word", http.MethodDelete, "/api/words/ghost", "", http.StatusNotFound},
		{"bad format", http.MethodGet, "/api/catalogue/export?format=csv", "", http.StatusBadRequest},
		{"sync as guest", http.MethodPost, "/api/sync", "", http.StatusUnauthorized},
		{"sound without value", http.MethodPut, "/api/settings/sound", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.target, tt.body, uuid.Nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_ValidationFields(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/words", `{"word":"cat"}`, uuid.Nil)
	rec := srv.do(t, http.MethodPost, "/api/words", `{"word":"CAT"}`, uuid.Nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[errorResponse](t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "word", resp.Fields[0].Field)
}

func TestRouter_ImportExport(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/catalogue/import", `[{"word":"owl"},{"word":"bat"}]`, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[catalogue.ImportResult](t, rec).Imported)

	before := srv.do(t, http.MethodGet, "/api/catalogue/export", "", uuid.Nil)
	require.Equal(t, http.StatusOK, before.Code)
	assert.Contains(t, before.Header().Get("Content-Disposition"), ".json")

	rec = srv.do(t, http.MethodPost, "/api/catalogue/import?format=json", `[{"definition":"no word"}]`, uuid.Nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	after := srv.do(t, http.MethodGet, "/api/catalogue/export", "", uuid.Nil)
	assert.Equal(t, before.Body.String(), after.Body.String())

	xlsx := srv.do(t, http.MethodGet, "/api/catalogue/export?format=xlsx", "", uuid.Nil)
	require.Equal(t, http.StatusOK, xlsx.Code)
	assert.Equal(t, xlsxContentType, xlsx.Header().Get("Content-Type"))

	other := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/catalogue/import?format=xlsx", bytes.NewReader(xlsx.Body.Bytes()))
	rec = httptest.NewRecorder()
	other.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[catalogue.ImportResult](t, rec).Imported)
}

func TestRouter_WordsCRUD(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/words", `{"word":"cat"}`, uuid.Nil)

	rec := srv.do(t, http.MethodPut, "/api/words/cat/definition", `{"definition":"purrs"}`, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/words", "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"definition":"purrs"`)

	rec = srv.do(t, http.MethodDelete, "/api/words/CAT", "", uuid.Nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/words", "", uuid.Nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_SyncWithoutBackend(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	userID := uuid.New()

	srv.do(t, http.MethodPost, "/api/words", `{"word":"cat"}`, userID)
	rec := srv.do(t, http.MethodPost, "/api/sync", "", userID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[syncResponse](t, rec)
	assert.Equal(t, syncer.OutcomeLocal, resp.Outcome)
	assert.Equal(t, 1, resp.Words)
}

func TestRouter_SoundAndWordOfDay(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPut, "/api/settings/sound", `{"enabled":true}`, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodGet, "/api/settings/sound", "", uuid.Nil)
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/word-of-the-day", "", uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rhythm", decode[wordofday.Word](t, rec).Word)
}
