// Package rod captures hosted Notion pages with a headless Chrome
// browser. Hosted pages are client-side rendered, so plain HTTP fetching
// returns an empty application shell; the browser renders the page before
// the HTML is read, and referenced media is downloaded into a temporary
// assets directory.
package rod

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ankify"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultRenderTimeout bounds how long a page may take to render.
const DefaultRenderTimeout = 30 * time.Second

// DefaultDownloadConcurrency is the default number of parallel asset
// downloads.
const DefaultDownloadConcurrency = 3

// userAgent is sent with asset downloads; some media hosts refuse
// requests without a browser user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// renderedSelectors are tried in order to decide the page has rendered.
// Notion's DOM differs between export-style pages and the hosted app
// shell.
var renderedSelectors = []string{
	"article",
	"div[data-block-id]",
	".notion-page-content",
	".notion-app-inner",
}

// Ensure Source implements ankify.ExportSource at compile time.
var _ ankify.ExportSource = (*Source)(nil)

// Source renders a hosted Notion page and downloads its media into a
// temporary assets directory. Close must be called when the Source is no
// longer needed.
type Source struct {
	url         string
	timeout     time.Duration
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int

	browser *rod.Browser
	lnchr   *launcher.Launcher
	workDir string
}

// Option configures a Source.
type Option func(*Source)

// WithRenderTimeout sets the page render timeout. Defaults to
// DefaultRenderTimeout.
func WithRenderTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithHTTPClient sets the client used for asset downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithDownloadConcurrency sets the number of parallel asset downloads.
func WithDownloadConcurrency(n int) Option {
	return func(s *Source) {
		s.concurrency = n
	}
}

// NewSource creates a Source that launches a headless Chrome browser.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSource(pageURL string, opts ...Option) (*Source, error) {
	s := &Source{
		url:         pageURL,
		timeout:     DefaultRenderTimeout,
		client:      &http.Client{Timeout: 30 * time.Second},
		concurrency: DefaultDownloadConcurrency,
		// Media hosts rate limit aggressively; four requests per second
		// keeps downloads under their thresholds.
		limiter: rate.NewLimiter(rate.Limit(4), 4),
	}
	for _, opt := range opts {
		opt(s)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	s.browser = browser
	s.lnchr = l
	return s, nil
}

// Resolve renders the page, downloads referenced media and writes the
// rewritten HTML next to the assets directory.
func (s *Source) Resolve(ctx context.Context) (*ankify.Export, error) {
	html, err := s.render(ctx)
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "ankify-page-")
	if err != nil {
		return nil, err
	}
	s.workDir = workDir

	assetsDir := filepath.Join(workDir, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return nil, err
	}

	rewritten, err := s.downloadAssets(ctx, html, assetsDir)
	if err != nil {
		return nil, err
	}

	htmlPath := filepath.Join(workDir, "notion_page.html")
	if err := os.WriteFile(htmlPath, []byte(rewritten), 0644); err != nil {
		return nil, err
	}

	return &ankify.Export{
		HTMLPath:  htmlPath,
		AssetsDir: assetsDir,
	}, nil
}

// render navigates to the page and returns its HTML once it has hydrated.
func (s *Source) render(ctx context.Context) (string, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.Navigate(s.url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Hosted pages hydrate after load; wait until one of the known
	// content markers appears, then let late blocks settle.
	for _, sel := range renderedSelectors {
		if _, err := page.Timeout(5 * time.Second).Element(sel); err == nil {
			break
		}
	}
	_ = page.Timeout(3 * time.Second).WaitDOMStable(300*time.Millisecond, 0)

	return page.HTML()
}

// downloadAssets downloads every img and audio source referenced by the
// rendered page into assetsDir and rewrites those references to bare
// filenames. A failed download skips that one asset and leaves its
// reference pointing at the origin.
func (s *Source) downloadAssets(ctx context.Context, htmlStr, assetsDir string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", ankify.Errorf(ankify.EINVALID, "failed to parse rendered page: %v", err)
	}

	assets, refs := collectAssets(doc, s.url)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, a := range assets {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			a.ok = s.download(gctx, a.remote, filepath.Join(assetsDir, a.name)) == nil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	for _, ref := range refs {
		if ref.asset.ok {
			ref.sel.SetAttr("src", ref.asset.name)
		}
	}

	return doc.Html()
}

// download fetches remote into the file at dest.
func (s *Source) download(ctx context.Context, remote, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, remote)
	}

	w, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}

// Close shuts down the browser and removes downloaded files. Safe to call
// when Resolve failed or was never called.
func (s *Source) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.lnchr != nil {
		s.lnchr.Kill()
		s.lnchr = nil
	}
	if s.workDir != "" {
		if rmErr := os.RemoveAll(s.workDir); err == nil {
			err = rmErr
		}
		s.workDir = ""
	}
	return err
}
