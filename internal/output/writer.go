package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pauljones0/fb-page-extractor/internal/models"
	"github.com/pauljones0/fb-page-extractor/internal/validator"
)

const (
	PostsTable    = "posts.csv"
	CommentsTable = "comments.csv"
)

// Manifest tells the data platform how to load a table.
type Manifest struct {
	Incremental bool     `json:"incremental"`
	PrimaryKey  []string `json:"primary_key"`
}

// Writer writes tables and their manifests under {dataDir}/out/tables.
type Writer struct {
	dir       string
	validator *validator.Validator
}

func New(dataDir string) *Writer {
	return &Writer{
		dir:       filepath.Join(dataDir, "out", "tables"),
		validator: validator.New(),
	}
}

// Dir returns the directory tables are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteAll validates both record sets and only then writes the posts table
// and the comments table, each followed by its manifest. It returns the
// paths of the written tables.
func (w *Writer) WriteAll(posts, comments []models.Record) ([]string, error) {
	if err := w.Validate(posts); err != nil {
		return nil, fmt.Errorf("posts: %w", err)
	}
	if err := w.Validate(comments); err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}

	var paths []string
	for _, t := range []struct {
		name    string
		records []models.Record
	}{
		{PostsTable, posts},
		{CommentsTable, comments},
	} {
		path, err := w.WriteTable(t.name, t.records)
		if err != nil {
			return paths, err
		}
		if err := w.WriteManifest(t.name); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Validate checks every record against the table contract. Duplicate ids
// are only logged: the platform upserts on id, so the last row wins there.
func (w *Writer) Validate(records []models.Record) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if err := w.validator.ValidateStruct(r); err != nil {
			return fmt.Errorf("%w: row %d (id %q): %v", models.ErrInvalidRecord, i, r.ID, err)
		}
		if _, dup := seen[r.ID]; dup {
			slog.Warn("Duplicate id in table", "id", r.ID, "row", i)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// WriteTable writes records as CSV with the shared header. The file is
// written next to its destination and renamed into place.
func (w *Writer) WriteTable(name string, records []models.Record) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(w.dir, name)

	err := writeAtomic(path, func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write(models.Columns); err != nil {
			return err
		}
		for _, r := range records {
			if err := cw.Write(Row(r)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", fmt.Errorf("failed to write table %s: %w", name, err)
	}
	slog.Info("Wrote table", "path", path, "rows", len(records))
	return path, nil
}

// WriteManifest writes {name}.manifest declaring an incremental load keyed
// on id.
func (w *Writer) WriteManifest(name string) error {
	data, err := json.MarshalIndent(Manifest{Incremental: true, PrimaryKey: []string{"id"}}, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(w.dir, name+".manifest")
	err = writeAtomic(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// Row renders r in column order. Unset optional fields become empty cells.
func Row(r models.Record) []string {
	return []string{
		r.ID,
		str(r.ImageURL),
		str(r.Title),
		r.Sentiment,
		num(r.ReactHaha),
		num(r.ReactAnger),
		str(r.ParentID),
		r.Resource,
		num(r.ReactShare),
		r.Content,
		num(r.ReactSorry),
		r.Language,
		r.Author,
		r.URL,
		r.Source,
		num(r.ReactWow),
		num(r.ReactLike),
		num(r.ReactLove),
		r.PublishedAt,
		str(r.InReplyTo),
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func writeAtomic(path string, fill func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
