package ankify

import "context"

// Export is a materialized Notion export on the local filesystem.
type Export struct {
	// HTMLPath is the location of the export's HTML document.
	HTMLPath string

	// AssetsDir contains the export's media files, named by the basename
	// used in markup references.
	AssetsDir string
}

// ExportSource materializes a Notion export from some origin: a local
// HTML file, a ZIP archive or a hosted page rendered in a browser.
// Close releases temporary resources; the Export paths are only valid
// until Close is called.
type ExportSource interface {
	Resolve(ctx context.Context) (*Export, error)
	Close() error
}
