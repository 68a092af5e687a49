// Package remote holds what the outbound HTTP adapters share: the retrying
// request helper and status classification.
package remote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// RetryDelay is the pause before the single retry.
var RetryDelay = 500 * time.Millisecond

// maxErrorBody bounds how much of an error response is kept for logs.
const maxErrorBody = 512

// Do sends req with a single retry on 5xx or network errors. The request body
// must be replayable (set via http.NewRequest with a bytes reader).
func Do(ctx context.Context, client *http.Client, req *http.Request, log *slog.Logger) (*http.Response, error) {
	resp, err := client.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, nil
	}

	if ctx.Err() != nil {
		return nil, transportErr(req, err, resp)
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	log.WarnContext(ctx, "remote retry",
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.String("reason", reason),
	)

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, gerr := req.GetBody()
		if gerr != nil {
			return nil, fmt.Errorf("replay body: %w", gerr)
		}
		retry.Body = body
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Redacted(), domain.ErrTransport, ctx.Err())
	case <-time.After(RetryDelay):
	}

	resp, err = client.Do(retry)
	if err != nil {
		return nil, transportErr(req, err, nil)
	}
	return resp, nil
}

// CheckStatus turns a non-2xx response into an error: 404 maps to
// domain.ErrNotFound, anything else to domain.ErrTransport. The body is
// drained and closed on error.
func CheckStatus(req *http.Request, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), domain.ErrNotFound)
	}
	return transportErr(req, nil, resp)
}

func transportErr(req *http.Request, err error, resp *http.Response) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Redacted(), domain.ErrTransport, err)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	return fmt.Errorf("%s %s: status %d: %s: %w",
		req.Method, req.URL.Redacted(), resp.StatusCode, body, domain.ErrTransport)
}
