package corpussource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// document is the wrapped corpus layout: {"faqs": [...]}. A bare list of
// entries is accepted as well.
type document struct {
	FAQs []faq.Entry `json:"faqs" yaml:"faqs"`
}

// Decode parses a corpus document. name selects the format by extension:
// .json is decoded as JSON, anything else as YAML.
func Decode(name string, data []byte) ([]faq.Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("corpus document is empty")
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeJSON(data []byte) ([]faq.Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		var entries []faq.Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("parse corpus json: %w", err)
		}
		return entries, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse corpus json: %w", err)
	}
	return doc.FAQs, nil
}

func decodeYAML(data []byte) ([]faq.Entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse corpus yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("corpus document is empty")
	}
	if root.Content[0].Kind == yaml.SequenceNode {
		var entries []faq.Entry
		if err := root.Content[0].Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse corpus yaml: %w", err)
		}
		return entries, nil
	}
	var doc document
	if err := root.Content[0].Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse corpus yaml: %w", err)
	}
	return doc.FAQs, nil
}
