// Package apkg writes flashcard decks as Anki .apkg packages: a zip
// archive containing an SQLite collection plus numbered media files
// and a JSON media manifest.
package apkg

import (
	"archive/zip"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/ankify"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Compile-time interface verification.
var _ ankify.DeckWriter = (*Writer)(nil)

// fieldSeparator joins note fields in the notes.flds column.
const fieldSeparator = "\x1f"

// Writer implements ankify.DeckWriter by producing an Anki package
// file. All IDs in the package are derived from deck and card content,
// so writing the same deck twice produces packages Anki treats as the
// same decks and notes.
type Writer struct {
	path  string
	model ModelConfig
	now   func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithModel replaces the default note model.
func WithModel(model ModelConfig) Option {
	return func(w *Writer) {
		w.model = model
	}
}

// WithClock overrides the time source used for modification stamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a Writer that writes to the given .apkg path.
func NewWriter(path string, opts ...Option) *Writer {
	w := &Writer{
		path:  path,
		model: DefaultModel(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteDeck writes deck to the configured path.
func (w *Writer) WriteDeck(ctx context.Context, deck *ankify.Deck) error {
	if deck == nil {
		return ankify.Errorf(ankify.EINVALID, "cannot write a nil deck")
	}

	dir, err := os.MkdirTemp("", "ankify-apkg-")
	if err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}
	defer os.RemoveAll(dir)

	collectionPath := filepath.Join(dir, "collection.anki2")
	if err := w.writeCollection(ctx, collectionPath, deck); err != nil {
		return err
	}

	return w.writePackage(collectionPath, deck.MediaFiles())
}

// writeCollection builds the collection.anki2 database at path.
func (w *Writer) writeCollection(ctx context.Context, path string, deck *ankify.Deck) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open collection database: %w", err)
	}
	defer db.Close()

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, collectionSchema); err != nil {
		return fmt.Errorf("failed to create collection schema: %w", err)
	}

	now := w.now().UTC()
	if err := w.insertCol(ctx, db, deck, now); err != nil {
		return err
	}
	return w.insertCards(ctx, db, deck, now)
}

func (w *Writer) insertCol(ctx context.Context, db *sql.DB, deck *ankify.Deck, now time.Time) error {
	css := w.model.CSS
	if deck.Stylesheet != "" {
		css = deck.Stylesheet + "\n" + css
	}

	conf, err := confJSON(w.model.ID)
	if err != nil {
		return fmt.Errorf("failed to encode collection config: %w", err)
	}
	models, err := modelsJSON(w.model, css, now)
	if err != nil {
		return fmt.Errorf("failed to encode models: %w", err)
	}
	decks, err := decksJSON(collectDecks(deck), now)
	if err != nil {
		return fmt.Errorf("failed to encode decks: %w", err)
	}
	dconf, err := dconfJSON()
	if err != nil {
		return fmt.Errorf("failed to encode deck config: %w", err)
	}

	crt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()

	_, err = db.ExecContext(ctx, `
		INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')
	`, crt, now.UnixMilli(), now.UnixMilli(), conf, models, decks, dconf)
	if err != nil {
		return fmt.Errorf("failed to write collection row: %w", err)
	}
	return nil
}

func (w *Writer) insertCards(ctx context.Context, db *sql.DB, deck *ankify.Deck, now time.Time) error {
	due := 1
	for _, sd := range deck.Subdecks {
		if err := ctx.Err(); err != nil {
			return err
		}

		fullName := ankify.FullDeckName(deck.Name, sd.Name)
		did := stableID(fullName)

		for i, card := range sd.Cards {
			if err := card.Validate(); err != nil {
				return err
			}

			flds := card.Front + fieldSeparator + card.Back
			key := fullName + fieldSeparator + strconv.Itoa(i) + fieldSeparator + flds
			noteID := stableID("note:" + key)
			cardID := stableID("card:" + key)

			_, err := db.ExecContext(ctx, `
				INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
				VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')
			`, noteID, noteGUID(key), w.model.ID, now.Unix(), tagsColumn(card.Tags),
				flds, card.Front, fieldChecksum(card.Front))
			if err != nil {
				return fmt.Errorf("failed to write note: %w", err)
			}

			_, err = db.ExecContext(ctx, `
				INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due,
					ivl, factor, reps, lapses, left, odue, odid, flags, data)
				VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')
			`, cardID, noteID, did, now.Unix(), due)
			if err != nil {
				return fmt.Errorf("failed to write card: %w", err)
			}
			due++
		}
	}
	return nil
}

// tagsColumn formats tags the way Anki stores them: space separated
// and space padded, so substring search matches whole tags.
func tagsColumn(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

// writePackage zips the collection and media files into the output
// .apkg. Media files are stored under their manifest index, with the
// "media" entry mapping indexes back to filenames.
func (w *Writer) writePackage(collectionPath string, mediaFiles []string) error {
	out, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create package file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	if err := addZipFile(zw, "collection.anki2", collectionPath); err != nil {
		zw.Close()
		return err
	}

	manifest := make(map[string]string, len(mediaFiles))
	for i, file := range mediaFiles {
		idx := strconv.Itoa(i)
		manifest[idx] = filepath.Base(file)
		if err := addZipFile(zw, idx, file); err != nil {
			zw.Close()
			return err
		}
	}

	if err := addZipJSON(zw, "media", manifest); err != nil {
		zw.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize package: %w", err)
	}
	return out.Close()
}

func addZipFile(zw *zip.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create package entry %s: %w", name, err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("failed to write package entry %s: %w", name, err)
	}
	return nil
}

func addZipJSON(zw *zip.Writer, name string, v any) error {
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create package entry %s: %w", name, err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode package entry %s: %w", name, err)
	}
	if _, err := entry.Write(b); err != nil {
		return fmt.Errorf("failed to write package entry %s: %w", name, err)
	}
	return nil
}
