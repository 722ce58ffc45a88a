package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/pkg/metrics"
)

//go:embed default.json
var defaultDocument []byte

// ErrNoSeed is returned when every source failed.
var ErrNoSeed = errors.New("failed to load initial data")

// Source yields the raw bytes of an initial clinic document.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Fetch(context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

type URLSource struct {
	URL    string
	Client *http.Client
}

func (s URLSource) Name() string { return s.URL }

func (s URLSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// EmbeddedSource returns the built-in empty clinic.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Fetch(context.Context) ([]byte, error) {
	return append([]byte(nil), defaultDocument...), nil
}

// Loader tries its sources in order; the first one that answers wins.
type Loader struct {
	sources []Source
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewLoader(sources []Source, timeout time.Duration, m *metrics.Metrics) *Loader {
	return &Loader{sources: sources, timeout: timeout, metrics: m}
}

// FromLocations maps configured locations to sources: http(s) URLs are
// fetched, everything else is read from disk. The embedded document is
// always tried last when withDefault is set.
func FromLocations(locations []string, withDefault bool) []Source {
	sources := make([]Source, 0, len(locations)+1)
	for _, loc := range locations {
		if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
			sources = append(sources, URLSource{URL: loc})
			continue
		}
		sources = append(sources, FileSource{Path: loc})
	}
	if withDefault {
		sources = append(sources, EmbeddedSource{})
	}
	return sources
}

func (l *Loader) Load(ctx context.Context) ([]byte, error) {
	for _, src := range l.sources {
		fetchCtx := ctx
		cancel := func() {}
		if l.timeout > 0 {
			fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
		}
		data, err := src.Fetch(fetchCtx)
		cancel()

		l.metrics.ObserveSeed(src.Name(), err)
		if err != nil {
			log.Debug().Err(err).Str("source", src.Name()).Msg("seed source unavailable")
			continue
		}
		log.Info().Str("source", src.Name()).Msg("loaded initial clinic data")
		return data, nil
	}
	return nil, ErrNoSeed
}

// StaticSource serves a fixed document; used for imports and tests.
type StaticSource struct {
	Label string
	Data  []byte
}

func (s StaticSource) Name() string { return s.Label }

func (s StaticSource) Fetch(context.Context) ([]byte, error) {
	return append([]byte(nil), s.Data...), nil
}
