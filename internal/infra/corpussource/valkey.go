package corpussource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// ValkeySource reads the corpus from a Valkey list whose elements are JSON
// encoded entries, in list order.
type ValkeySource struct {
	client valkey.Client
	key    string
}

// NewValkeySource constructs a new source backed by Valkey.
func NewValkeySource(client valkey.Client, key string) *ValkeySource {
	if key == "" {
		key = "faq:corpus"
	}
	return &ValkeySource{client: client, key: key}
}

// Fetch implements faq.CorpusSource.
func (s *ValkeySource) Fetch(ctx context.Context) ([]faq.Entry, error) {
	cmd := s.client.B().Lrange().Key(s.key).Start(0).Stop(-1).Build()
	items, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read corpus list: %w", err)
	}
	return decodeListItems(items)
}

// Describe implements faq.CorpusSource.
func (s *ValkeySource) Describe() string {
	return "valkey:" + s.key
}

// Close releases the client.
func (s *ValkeySource) Close() {
	s.client.Close()
}

func decodeListItems(items []string) ([]faq.Entry, error) {
	entries := make([]faq.Entry, 0, len(items))
	for i, item := range items {
		var e faq.Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode corpus item %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var _ faq.CorpusSource = (*ValkeySource)(nil)
