package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"chlog/internal/services"
)

// Fetch downloads a feed document. It does not retry; a failed fetch is
// reported once to the caller.
func Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, "feed", "fetch", "show has no feed URL", nil)
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "feed", "fetch", "build request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "feed", "fetch", "download feed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrTransient, "feed", "fetch", fmt.Sprintf("feed download returned HTTP %d", resp.StatusCode), nil)
	}

	return io.ReadAll(resp.Body)
}
