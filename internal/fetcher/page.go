package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var unsafeTitleRe = regexp.MustCompile(`[^a-zA-Z0-9\x{4e00}-\x{9fff}]`)

// PageFetcher downloads full HTML pages by wiki title with an on-disk cache.
// Page fetch failures are real errors: the caller decides whether to skip
// the page, unlike the per-entity JSON fetches which degrade to nil.
type PageFetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	cacheDir  string
	cacheTTL  time.Duration
}

// NewPageFetcher creates a PageFetcher rooted at baseURL, caching pages
// under cacheDir for ttl.
func NewPageFetcher(baseURL, userAgent, cacheDir string, ttl time.Duration) *PageFetcher {
	return &PageFetcher{
		client:    &http.Client{Timeout: 60 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
		cacheDir:  cacheDir,
		cacheTTL:  ttl,
	}
}

// GetPage returns the HTML of the page with the given title, serving from
// the cache when a fresh copy exists.
func (p *PageFetcher) GetPage(ctx context.Context, title string) ([]byte, error) {
	cachePath := filepath.Join(p.cacheDir, "wiki-"+unsafeTitleRe.ReplaceAllString(title, "_")+".html")

	if info, err := os.Stat(cachePath); err == nil {
		if time.Since(info.ModTime()) < p.cacheTTL {
			data, err := os.ReadFile(cachePath)
			if err == nil {
				zap.L().Debug("wiki page served from cache", zap.String("title", title))
				return data, nil
			}
		}
	}

	pageURL := p.baseURL + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "page: create request for %s", title)
	}
	req.Header.Set("User-Agent", p.userAgent)

	zap.L().Info("fetching wiki page", zap.String("title", title), zap.String("url", pageURL))
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "page: fetch %s", title)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("page: http %d for %s", resp.StatusCode, title)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "page: read body for %s", title)
	}

	if err := os.MkdirAll(p.cacheDir, 0o755); err == nil {
		if err := os.WriteFile(cachePath, data, 0o644); err != nil {
			zap.L().Warn("wiki page cache write failed", zap.String("title", title), zap.Error(err))
		}
	}

	return data, nil
}
