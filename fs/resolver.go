// Package fs provides filesystem-backed implementations: the media
// resolver that looks up assets on disk and the export source for
// already-unpacked HTML files.
package fs

import (
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/fwojciec/ankify"
)

// Ensure Resolver implements ankify.MediaResolver at compile time.
var _ ankify.MediaResolver = (*Resolver)(nil)

// Resolver resolves markup media references against a local assets
// directory.
type Resolver struct {
	assetsDir string
}

// NewResolver creates a Resolver for the given assets directory.
func NewResolver(assetsDir string) *Resolver {
	return &Resolver{assetsDir: assetsDir}
}

// Resolve URL-decodes ref, takes its final path segment as the candidate
// filename and reports whether that file exists in the assets directory.
// Matching is exact after decoding: no case folding or extension
// normalization.
func (r *Resolver) Resolve(ref string) ankify.MediaRef {
	decoded, err := url.PathUnescape(ref)
	if err != nil {
		decoded = ref
	}

	name := path.Base(decoded)
	full := filepath.Join(r.assetsDir, name)

	_, statErr := os.Stat(full)
	return ankify.MediaRef{
		Name:  name,
		Path:  full,
		Found: statErr == nil,
	}
}
