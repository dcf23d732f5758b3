package corpussource

import (
	"context"
	"fmt"
	"os"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// FileSource reads the corpus from a YAML or JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource constructs a file backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch implements faq.CorpusSource.
func (s *FileSource) Fetch(ctx context.Context) ([]faq.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	return Decode(s.path, data)
}

// Describe implements faq.CorpusSource.
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}

var _ faq.CorpusSource = (*FileSource)(nil)
