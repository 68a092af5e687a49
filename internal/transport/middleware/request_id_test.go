package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

func serveRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	RequestID()(handler).ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	t.Parallel()

	ctxID, headerID := serveRequestID(t, "client-42")
	if ctxID != "client-42" || headerID != "client-42" {
		t.Errorf("context %q, header %q; want client-42 for both", ctxID, headerID)
	}
}

func TestRequestID_GeneratesWhenMissingOrMalformed(t *testing.T) {
	t.Parallel()

	for _, incoming := range []string{"", "has space", "line\nbreak", strings.Repeat("x", maxRequestIDLen+1)} {
		ctxID, headerID := serveRequestID(t, incoming)
		if _, err := uuid.Parse(ctxID); err != nil {
			t.Errorf("incoming %q: context id %q is not a UUID", incoming, ctxID)
		}
		if headerID != ctxID {
			t.Errorf("incoming %q: header %q != context %q", incoming, headerID, ctxID)
		}
	}
}
