package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LoadState is the outcome of the single-shot remote catalog fetch.
type LoadState int

const (
	StateLoading LoadState = iota
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var ErrNotLoaded = errors.New("catalog load pending")

const fetchTimeout = 10 * time.Second

// Loader fetches the catalog from a remote JSON endpoint exactly once and
// fills the target MemStore on success. There are no retries: the fetch
// either lands in loaded or in failed, and readiness reflects that.
type Loader struct {
	mu    sync.RWMutex
	state LoadState
	err   error

	target *MemStore
	log    *zap.Logger
	client *http.Client
}

func NewLoader(target *MemStore, log *zap.Logger) *Loader {
	return &Loader{
		target: target,
		log:    log,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Start kicks off the fetch in the background and returns immediately.
func (l *Loader) Start(ctx context.Context, url string) {
	go l.run(ctx, url)
}

func (l *Loader) run(ctx context.Context, url string) {
	products, err := l.fetch(ctx, url)
	if err == nil {
		err = l.target.Replace(products)
	}

	l.mu.Lock()
	if err != nil {
		l.state = StateFailed
		l.err = err
	} else {
		l.state = StateLoaded
	}
	l.mu.Unlock()

	if err != nil {
		l.log.Error("catalog load failed", zap.String("url", url), zap.Error(err))
		return
	}
	l.log.Info("catalog loaded", zap.String("url", url), zap.Int("products", len(products)))
}

func (l *Loader) fetch(ctx context.Context, url string) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch status=%d", resp.StatusCode)
	}

	var raw []struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		PriceCents int64  `json:"price_cents"`
		Image      string `json:"image"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	entries := make([]fileProduct, len(raw))
	for i, e := range raw {
		entries[i] = fileProduct{ID: e.ID, Title: e.Title, PriceCents: e.PriceCents, Image: e.Image}
	}
	return buildCatalog(entries)
}

// State reports the current load phase and, when failed, its cause.
func (l *Loader) State() (LoadState, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state, l.err
}

// Err translates load state into a readiness error: nil once loaded,
// ErrNotLoaded while pending, the fetch error after failure.
func (l *Loader) Err() error {
	state, err := l.State()
	switch state {
	case StateLoaded:
		return nil
	case StateFailed:
		return err
	default:
		return ErrNotLoaded
	}
}
