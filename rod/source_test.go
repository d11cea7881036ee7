//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/ankify"
	"github.com/fwojciec/ankify/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Source implements ankify.ExportSource.
var _ ankify.ExportSource = (*rod.Source)(nil)

func TestSource_Resolve_DownloadsRenderedPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Exported Page</title></head>
<body>
<div id="root"></div>
<script>
document.getElementById('root').innerHTML =
  '<article><header><h1>Rendered Deck</h1></header>' +
  '<div class="page-body"><figure class="callout"><div><div>Q</div><p>A</p>' +
  '<img src="/photo.png"></div></figure></div></article>';
</script>
</body>
</html>`))
		}
	}))
	defer srv.Close()

	src, err := rod.NewSource(srv.URL, rod.WithRenderTimeout(20*time.Second))
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	export, err := src.Resolve(ctx)
	require.NoError(t, err)

	html, err := os.ReadFile(export.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Rendered Deck")
	assert.Contains(t, string(html), `src="photo.png"`)
	assert.NotContains(t, string(html), srv.URL+"/photo.png")

	data, err := os.ReadFile(filepath.Join(export.AssetsDir, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSource_Resolve_LeavesFailedDownloadsUntouched(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".png") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body><article><header><h1>Deck</h1></header>
<div class="page-body"><figure class="callout"><div><div>Q</div>
<img src="/gone.png"></div></figure></div></article></body></html>`))
	}))
	defer srv.Close()

	src, err := rod.NewSource(srv.URL)
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	export, err := src.Resolve(ctx)
	require.NoError(t, err)

	html, err := os.ReadFile(export.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "/gone.png")
}

func TestSource_Close_RemovesWorkDir(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><article><header><h1>D</h1></header>
<div class="page-body"></div></article></body></html>`))
	}))
	defer srv.Close()

	src, err := rod.NewSource(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	export, err := src.Resolve(ctx)
	require.NoError(t, err)

	require.NoError(t, src.Close())

	_, err = os.Stat(export.HTMLPath)
	assert.True(t, os.IsNotExist(err))
}
