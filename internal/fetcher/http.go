package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Rate       rate.Limit
	Burst      int
}

// HTTPFetcher implements Fetcher using net/http with retry and rate limiting.
//
// 404 responses are final: the entity does not exist and the attempt is not
// retried. Everything else (network error, 5xx, 429) is retried up to
// MaxRetries with a fixed delay, then degrades to "missing" with a warning.
type HTTPFetcher struct {
	client  *http.Client
	opts    HTTPOptions
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 3 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "dexsync/1.0"
	}
	if opts.Rate == 0 {
		opts.Rate = 5
	}
	if opts.Burst == 0 {
		opts.Burst = int(opts.Rate)
		if opts.Burst < 1 {
			opts.Burst = 1
		}
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:    opts,
		limiter: rate.NewLimiter(opts.Rate, opts.Burst),
	}
}

// GetJSON fetches the URL and returns the raw body, or nil when the entity
// is missing (404, retries exhausted, unreadable body).
func (f *HTTPFetcher) GetJSON(ctx context.Context, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		zap.L().Warn("fetch: bad url, treating as missing",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return nil, nil
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	var lastErr error
	for attempt := 1; attempt <= f.opts.MaxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetch: rate limiter wait")
		}

		resp, err := f.client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(ctx.Err(), "fetch: cancelled")
			}
			lastErr = err
			f.waitRetry(ctx, rawURL, attempt, err)
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			_ = resp.Body.Close()
			return nil, nil
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("http %d from %s", resp.StatusCode, rawURL)
			f.waitRetry(ctx, rawURL, attempt, lastErr)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			f.waitRetry(ctx, rawURL, attempt, err)
			continue
		}
		return body, nil
	}

	zap.L().Warn("fetch: all retries exhausted, treating as missing",
		zap.String("url", rawURL),
		zap.Int("attempts", f.opts.MaxRetries),
		zap.Error(lastErr),
	)
	return nil, nil
}

// waitRetry logs the failed attempt and sleeps the fixed retry delay,
// unless this was the final attempt.
func (f *HTTPFetcher) waitRetry(ctx context.Context, url string, attempt int, cause error) {
	if attempt >= f.opts.MaxRetries {
		return
	}
	zap.L().Warn("fetch attempt failed, retrying",
		zap.String("url", url),
		zap.Int("attempt", attempt),
		zap.Int("max_attempts", f.opts.MaxRetries),
		zap.Error(cause),
	)
	t := time.NewTimer(f.opts.RetryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
