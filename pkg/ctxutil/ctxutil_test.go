package ctxutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

func TestUserIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name   string
		ctx    context.Context
		wantID uuid.UUID
		wantOK bool
	}{
		{"signed in", WithUserID(context.Background(), id), id, true},
		{"empty context", context.Background(), uuid.Nil, false},
		{"explicit nil", WithUserID(context.Background(), uuid.Nil), uuid.Nil, false},
		{"foreign key type", context.WithValue(context.Background(), "user_id", id), uuid.Nil, false}, //nolint:staticcheck
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := UserIDFromCtx(tt.ctx)
			if got != tt.wantID || ok != tt.wantOK {
				t.Errorf("UserIDFromCtx = %s, %v; want %s, %v", got, ok, tt.wantID, tt.wantOK)
			}
			if g := UserOrGuest(tt.ctx); g != tt.wantID {
				t.Errorf("UserOrGuest = %s, want %s", g, tt.wantID)
			}
		})
	}
}

func TestRequestIDFromCtx(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("empty context = %q", got)
	}
	if got := RequestIDFromCtx(WithRequestID(context.Background(), "req-123")); got != "req-123" {
		t.Errorf("got %q, want req-123", got)
	}
}

func TestLogAttrs(t *testing.T) {
	t.Parallel()

	if attrs := LogAttrs(context.Background()); len(attrs) != 0 {
		t.Errorf("guest without request id = %v", attrs)
	}

	id := uuid.New()
	ctx := WithUserID(WithRequestID(context.Background(), "r1"), id)
	attrs := LogAttrs(ctx)
	want := []slog.Attr{slog.String("request_id", "r1"), slog.String("user_id", id.String())}
	if len(attrs) != len(want) {
		t.Fatalf("attrs = %v", attrs)
	}
	for i := range want {
		if !attrs[i].Equal(want[i]) {
			t.Errorf("attrs[%d] = %v, want %v", i, attrs[i], want[i])
		}
	}
}
