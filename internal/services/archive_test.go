package services

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubTextExtractor struct {
	texts  map[string]string
	failOn string
}

func (s *stubTextExtractor) Extract(filePath string) (string, error) {
	name := filepath.Base(filePath)
	if name == s.failOn {
		return "", &ExtractionError{Path: filePath, Err: errors.New("corrupt document")}
	}
	return s.texts[name], nil
}

func writeTestArchive(t *testing.T, entries map[string]string) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "resumes.zip")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish archive: %v", err)
	}

	return archivePath
}

func TestExtractArchiveSkipsCorruptEntries(t *testing.T) {
	archivePath := writeTestArchive(t, map[string]string{
		"alice.pdf": "raw pdf bytes",
		"bob.pdf":   "raw pdf bytes",
		"carol.pdf": "raw pdf bytes",
	})

	extractor := NewArchiveExtractor(&stubTextExtractor{
		texts: map[string]string{
			"alice.pdf": "alice resume text",
			"carol.pdf": "carol resume text",
		},
		failOn: "bob.pdf",
	})

	entries, err := extractor.ExtractArchive(archivePath)
	if err != nil {
		t.Fatalf("ExtractArchive() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (corrupt entry skipped)", len(entries))
	}

	byName := make(map[string]string, len(entries))
	for _, e := range entries {
		byName[e.Filename] = e.Text
	}
	if byName["alice.pdf"] != "alice resume text" {
		t.Errorf("alice.pdf text = %q", byName["alice.pdf"])
	}
	if _, ok := byName["bob.pdf"]; ok {
		t.Error("corrupt bob.pdf should have been skipped")
	}
}

func TestExtractArchiveFiltersUnsupportedAndNested(t *testing.T) {
	archivePath := writeTestArchive(t, map[string]string{
		"alice.pdf":        "raw pdf bytes",
		"notes.txt":        "not a resume",
		"nested/inner.pdf": "raw pdf bytes",
	})

	extractor := NewArchiveExtractor(&stubTextExtractor{
		texts: map[string]string{
			"alice.pdf": "alice resume text",
			"inner.pdf": "should never be reached",
		},
	})

	entries, err := extractor.ExtractArchive(archivePath)
	if err != nil {
		t.Fatalf("ExtractArchive() error = %v", err)
	}

	if len(entries) != 1 || entries[0].Filename != "alice.pdf" {
		t.Errorf("entries = %v, want only alice.pdf", entries)
	}
}

func TestExtractArchiveSkipsEmptyText(t *testing.T) {
	archivePath := writeTestArchive(t, map[string]string{
		"alice.pdf": "raw pdf bytes",
		"blank.pdf": "raw pdf bytes",
	})

	extractor := NewArchiveExtractor(&stubTextExtractor{
		texts: map[string]string{
			"alice.pdf": "alice resume text",
			"blank.pdf": "   \n ",
		},
	})

	entries, err := extractor.ExtractArchive(archivePath)
	if err != nil {
		t.Fatalf("ExtractArchive() error = %v", err)
	}

	if len(entries) != 1 || entries[0].Filename != "alice.pdf" {
		t.Errorf("entries = %v, want only alice.pdf", entries)
	}
}

func TestExtractArchiveUnreadableArchive(t *testing.T) {
	badPath := filepath.Join(t.TempDir(), "broken.zip")
	if err := os.WriteFile(badPath, []byte("this is not a zip"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	extractor := NewArchiveExtractor(&stubTextExtractor{})

	_, err := extractor.ExtractArchive(badPath)

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("ExtractArchive() error = %v, want ExtractionError", err)
	}
}
