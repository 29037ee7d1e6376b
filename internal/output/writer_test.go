package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pauljones0/fb-page-extractor/internal/models"
	"github.com/pauljones0/fb-page-extractor/internal/util"
)

func samplePost() models.Record {
	return models.Record{
		ID:          "123_1",
		Source:      models.SourceFacebook,
		Resource:    "Test Page",
		URL:         "http://x/1",
		Content:     "hello, \"world\"",
		PublishedAt: "2023-01-01T12:00:00Z",
		Author:      "Test Page",
		ImageURL:    util.StringPtr(""),
		Language:    models.Missing,
		Sentiment:   models.Missing,
		ReactShare:  util.IntPtr(2),
		ReactLike:   util.IntPtr(5),
		ReactLove:   util.IntPtr(0),
		ReactWow:    util.IntPtr(0),
		ReactHaha:   util.IntPtr(0),
		ReactSorry:  util.IntPtr(0),
		ReactAnger:  util.IntPtr(0),
	}
}

func sampleComment() models.Record {
	return models.Record{
		ID:          "123_9",
		Source:      models.SourceFacebook,
		Resource:    "Test Page",
		URL:         "http://x/1/c9",
		Content:     "hi",
		ReactLike:   util.IntPtr(1),
		PublishedAt: "2023-01-01T12:05:00Z",
		Author:      models.UnknownAuthor,
		InReplyTo:   util.StringPtr("123_1"),
		Language:    models.Missing,
		Sentiment:   models.Missing,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestRow_MatchesColumns(t *testing.T) {
	if got := len(Row(models.Record{})); got != len(models.Columns) {
		t.Fatalf("Row() has %d cells, want %d", got, len(models.Columns))
	}
	if len(models.Columns) != 20 {
		t.Errorf("Expected 20 columns, got %d", len(models.Columns))
	}
}

func TestRow_Post(t *testing.T) {
	got := Row(samplePost())
	want := []string{
		"123_1", "", "", "missing", "0", "0", "", "Test Page", "2", "hello, \"world\"",
		"0", "missing", "Test Page", "http://x/1", "facebook", "0", "5", "0", "2023-01-01T12:00:00Z", "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Row() mismatch (-want +got):\n%s", diff)
	}
}

func TestRow_CommentLeavesPostColumnsBlank(t *testing.T) {
	got := Row(sampleComment())
	want := []string{
		"123_9", "", "", "missing", "", "", "", "Test Page", "", "hi",
		"", "missing", "N/A", "http://x/1/c9", "facebook", "", "1", "", "2023-01-01T12:05:00Z", "123_1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Row() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	paths, err := w.WriteAll([]models.Record{samplePost()}, []models.Record{sampleComment()})
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	wantPaths := []string{
		filepath.Join(dir, "out", "tables", "posts.csv"),
		filepath.Join(dir, "out", "tables", "comments.csv"),
	}
	if diff := cmp.Diff(wantPaths, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	posts := readCSV(t, paths[0])
	if len(posts) != 2 {
		t.Fatalf("Expected header + 1 row, got %d rows", len(posts))
	}
	if diff := cmp.Diff(models.Columns, posts[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Row(samplePost()), posts[1]); diff != "" {
		t.Errorf("post row did not round trip (-want +got):\n%s", diff)
	}

	comments := readCSV(t, paths[1])
	if len(comments) != 2 || comments[1][0] != "123_9" {
		t.Errorf("Unexpected comments table: %v", comments)
	}

	for _, name := range []string{PostsTable, CommentsTable} {
		data, err := os.ReadFile(filepath.Join(w.Dir(), name+".manifest"))
		if err != nil {
			t.Fatalf("read manifest: %v", err)
		}
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("decode manifest: %v", err)
		}
		if !m.Incremental || len(m.PrimaryKey) != 1 || m.PrimaryKey[0] != "id" {
			t.Errorf("Manifest %s = %+v, want incremental with primary key id", name, m)
		}
	}
}

func TestWriteAll_EmptyTables(t *testing.T) {
	w := New(t.TempDir())
	paths, err := w.WriteAll(nil, nil)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	for _, p := range paths {
		if rows := readCSV(t, p); len(rows) != 1 {
			t.Errorf("%s: expected header only, got %d rows", p, len(rows))
		}
	}
}

func TestWriteAll_InvalidRecordWritesNothing(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	bad := sampleComment()
	bad.Language = ""

	_, err := w.WriteAll([]models.Record{samplePost()}, []models.Record{bad})
	if !errors.Is(err, models.ErrInvalidRecord) {
		t.Fatalf("Expected ErrInvalidRecord, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "tables", PostsTable)); !os.IsNotExist(err) {
		t.Errorf("posts table should not be written when comments are invalid, stat err = %v", err)
	}
}

func TestValidate_DuplicateIDsAllowed(t *testing.T) {
	w := New(t.TempDir())
	if err := w.Validate([]models.Record{samplePost(), samplePost()}); err != nil {
		t.Errorf("Validate() error = %v, duplicates should only be logged", err)
	}
}

func TestWriteTable_LeavesNoTempFiles(t *testing.T) {
	w := New(t.TempDir())
	if _, err := w.WriteTable(PostsTable, []models.Record{samplePost()}); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	entries, err := os.ReadDir(w.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != PostsTable {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only %s in output dir, got %v", PostsTable, names)
	}
}
