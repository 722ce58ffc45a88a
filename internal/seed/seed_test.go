package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderUsesFirstAvailableSource(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "assets", "data", "db.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(second), 0o755))
	require.NoError(t, os.WriteFile(second, []byte(`{"clientes":[{"id":9}]}`), 0o644))

	l := NewLoader(FromLocations([]string{filepath.Join(dir, "db.json"), second}, true), time.Second, nil)
	data, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"clientes":[{"id":9}]}`, string(data))
}

func TestLoaderFallsBackToEmbedded(t *testing.T) {
	l := NewLoader(FromLocations([]string{"does-not-exist.json"}, true), time.Second, nil)
	data, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"adminUser"`)
}

func TestLoaderFailsWhenNothingAnswers(t *testing.T) {
	l := NewLoader(FromLocations([]string{"nope.json"}, false), time.Second, nil)
	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSeed)
}

func TestURLSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/db.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"pacotes":[]}`))
	}))
	defer srv.Close()

	l := NewLoader(FromLocations([]string{srv.URL + "/missing.json", srv.URL + "/db.json"}, false), time.Second, nil)
	data, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"pacotes":[]}`, string(data))
}
