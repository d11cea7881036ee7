// Package zip materializes Notion ZIP exports: it extracts the archive to
// a temporary directory and locates the HTML document and its assets.
package zip

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/ankify"
)

// Ensure Source implements ankify.ExportSource at compile time.
var _ ankify.ExportSource = (*Source)(nil)

// Source materializes a Notion ZIP export. Notion wraps HTML exports in a
// zip, sometimes with a second zip nested one level inside; both layouts
// are handled.
type Source struct {
	path    string
	workDir string
}

// NewSource creates a Source for the archive at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Resolve extracts the archive and returns the location of its HTML
// document. The assets directory is the document's own directory; that is
// where Notion places referenced media.
func (s *Source) Resolve(ctx context.Context) (*ankify.Export, error) {
	workDir, err := os.MkdirTemp("", "ankify-zip-")
	if err != nil {
		return nil, err
	}
	s.workDir = workDir

	if err := extract(ctx, s.path, workDir); err != nil {
		return nil, err
	}

	// Notion sometimes nests the real export one zip deeper.
	inner, err := filepath.Glob(filepath.Join(workDir, "*.zip"))
	if err == nil && len(inner) > 0 {
		nestedDir := filepath.Join(workDir, "extracted")
		if err := os.MkdirAll(nestedDir, 0755); err != nil {
			return nil, err
		}
		sort.Strings(inner)
		for _, nested := range inner {
			if err := extract(ctx, nested, nestedDir); err != nil {
				return nil, err
			}
		}
		workDir = nestedDir
	}

	htmlPath, err := findHTML(workDir)
	if err != nil {
		return nil, err
	}

	return &ankify.Export{
		HTMLPath:  htmlPath,
		AssetsDir: filepath.Dir(htmlPath),
	}, nil
}

// Close removes the extracted files. Safe to call when Resolve failed.
func (s *Source) Close() error {
	if s.workDir == "" {
		return nil
	}
	return os.RemoveAll(s.workDir)
}

// extract unpacks the archive at src into destDir, refusing entries that
// would escape destDir.
func extract(ctx context.Context, src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return ankify.Errorf(ankify.EINVALID, "failed to open archive %q: %v", src, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractFile(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, destDir string) error {
	dest := filepath.Join(destDir, filepath.FromSlash(f.Name))
	rel, err := filepath.Rel(destDir, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ankify.Errorf(ankify.EINVALID, "archive entry %q escapes extraction directory", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	w, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.Copy(w, rc)
	return err
}

// findHTML returns the first HTML file under dir, walking in sorted path
// order so repeated runs pick the same document when an export carries
// more than one.
func findHTML(dir string) (string, error) {
	var htmlFiles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			htmlFiles = append(htmlFiles, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(htmlFiles) == 0 {
		return "", ankify.Errorf(ankify.ENOTFOUND, "no HTML file found in archive")
	}
	sort.Strings(htmlFiles)
	return htmlFiles[0], nil
}
