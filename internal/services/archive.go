package services

import (
	"archive/zip"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveEntry is one successfully extracted resume from an archive.
type ArchiveEntry struct {
	Filename string
	Text     string
}

// ArchiveExtractor pulls every supported resume out of a ZIP archive. A
// single bad entry is logged and skipped; only an unreadable archive fails
// the whole batch.
type ArchiveExtractor interface {
	ExtractArchive(archivePath string) ([]ArchiveEntry, error)
}

type archiveExtractor struct {
	docs TextExtractor
}

func NewArchiveExtractor(docs TextExtractor) ArchiveExtractor {
	return &archiveExtractor{docs: docs}
}

// ExtractArchive implements ArchiveExtractor. Only top-level entries are
// considered; nested directories and archives are not descended into.
func (a *archiveExtractor) ExtractArchive(archivePath string) ([]ArchiveEntry, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &ExtractionError{Path: archivePath, Err: err}
	}
	defer reader.Close()

	tempDir, err := os.MkdirTemp("", "resume-archive-")
	if err != nil {
		return nil, &ExtractionError{Path: archivePath, Err: err}
	}
	defer os.RemoveAll(tempDir)

	var entries []ArchiveEntry

	for _, file := range reader.File {
		if file.FileInfo().IsDir() || strings.ContainsRune(file.Name, '/') {
			continue
		}

		filename := filepath.Base(file.Name)
		ext := strings.ToLower(filepath.Ext(filename))
		if ext != ".pdf" && ext != ".docx" {
			continue
		}

		extractedPath := filepath.Join(tempDir, filename)
		if err := copyArchiveEntry(file, extractedPath); err != nil {
			log.Printf("⚠️ Failed to unpack %s from archive: %v\n", filename, err)
			continue
		}

		text, err := a.docs.Extract(extractedPath)
		if err != nil {
			log.Printf("⚠️ Failed to extract text from %s: %v\n", filename, err)
			continue
		}

		if strings.TrimSpace(text) == "" {
			log.Printf("⚠️ No text extracted from %s. Skipping.\n", filename)
			continue
		}

		entries = append(entries, ArchiveEntry{Filename: filename, Text: text})
		log.Printf("📄 Extracted text from %s\n", filename)
	}

	return entries, nil
}

func copyArchiveEntry(file *zip.File, destPath string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
