package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractUnsupportedFormat(t *testing.T) {
	extractor := NewTextExtractor()

	tests := []string{"resume.txt", "resume.doc", "resume", "archive.zip"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := extractor.Extract(filepath.Join(t.TempDir(), name))
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("Extract(%q) error = %v, want ErrUnsupportedFormat", name, err)
			}
			if err != nil && !strings.Contains(err.Error(), name) {
				t.Errorf("error %q does not name the offending file", err)
			}
		})
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a real pdf"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	extractor := NewTextExtractor()

	_, err := extractor.Extract(path)

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Extract() error = %v, want ExtractionError", err)
	}
}

func TestDocxParagraphs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "paragraphs joined with newline",
			content: `<w:document><w:body>` +
				`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
				`<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>` +
				`</w:body></w:document>`,
			want: "First paragraph\nSecond paragraph",
		},
		{
			name: "empty paragraphs dropped",
			content: `<w:document><w:body>` +
				`<w:p><w:r><w:t>First</w:t></w:r></w:p>` +
				`<w:p></w:p>` +
				`<w:p><w:r><w:t>   </w:t></w:r></w:p>` +
				`<w:p><w:r><w:t>Last</w:t></w:r></w:p>` +
				`</w:body></w:document>`,
			want: "First\nLast",
		},
		{
			name: "multiple runs in one paragraph concatenate",
			content: `<w:document><w:body>` +
				`<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>world</w:t></w:r></w:p>` +
				`</w:body></w:document>`,
			want: "Hello world",
		},
		{
			name:    "no paragraphs yields empty text",
			content: `<w:document><w:body></w:body></w:document>`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := docxParagraphs(tt.content)
			if err != nil {
				t.Fatalf("docxParagraphs() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("docxParagraphs() = %q, want %q", got, tt.want)
			}
		})
	}
}
