package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/ankify"
)

// Ensure FileSource implements ankify.ExportSource at compile time.
var _ ankify.ExportSource = (*FileSource)(nil)

// FileSource serves a Notion export that is already unpacked on disk: a
// single HTML file with its media assets in the same directory, which is
// how Notion lays out an extracted HTML export.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the HTML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Resolve verifies the HTML file exists and locates its assets directory.
func (s *FileSource) Resolve(ctx context.Context) (*ankify.Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, ankify.Errorf(ankify.ENOTFOUND, "input file %q not found", s.path)
	}
	if info.IsDir() {
		return nil, ankify.Errorf(ankify.EINVALID, "input %q is a directory, expected an HTML file", s.path)
	}

	return &ankify.Export{
		HTMLPath:  s.path,
		AssetsDir: filepath.Dir(s.path),
	}, nil
}

// Close is a no-op; FileSource owns no temporary resources.
func (s *FileSource) Close() error {
	return nil
}
