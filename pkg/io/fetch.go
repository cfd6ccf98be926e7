package io

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fernandoherreradelasheras/verovio/pkg/cache"
	apperrors "github.com/fernandoherreradelasheras/verovio/pkg/errors"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

const fetchTimeout = 10 * time.Second

// Fetcher loads scores from local paths or remote URLs. Remote fetches are
// cached under [cache.TTLScore] so repeated loads of the same URL do not
// hit the network while the entry is fresh.
type Fetcher struct {
	http  *http.Client
	cache cache.Cache
	keyer cache.Keyer
}

// NewFetcher creates a Fetcher backed by the given cache. Pass nil for
// either argument to fall back to a null cache or the default keyer.
func NewFetcher(c cache.Cache, keyer cache.Keyer) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Fetcher{
		http:  &http.Client{Timeout: fetchTimeout},
		cache: c,
		keyer: keyer,
	}
}

// Load resolves ref to a document. A ref starting with http:// or https://
// is fetched remotely; anything else is treated as a local file path.
func (f *Fetcher) Load(ctx context.Context, ref string) (*score.Doc, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.Fetch(ctx, ref)
	}
	if err := apperrors.ValidatePath(ref); err != nil {
		return nil, err
	}
	return ImportJSON(ref)
}

// Fetch downloads a score from url and decodes it. The raw response bytes
// are cached, so a cache hit skips the network entirely. Transient failures
// (connection errors, 5xx responses) are retried with backoff; a 404
// returns [cache.ErrNotFound].
func (f *Fetcher) Fetch(ctx context.Context, url string) (*score.Doc, error) {
	key := f.keyer.ScoreKey("url", url)
	if data, ok, _ := f.cache.Get(ctx, key); ok {
		if d, err := ReadJSON(bytes.NewReader(data)); err == nil {
			return d, nil
		}
		// Corrupt cache entry. Fall through and refetch.
	}

	var data []byte
	fetch := func() error {
		var err error
		data, err = f.get(ctx, url)
		return err
	}
	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	_ = f.cache.Set(ctx, key, data, cache.TTLScore)

	d, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return d, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
