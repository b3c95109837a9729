package definition

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Loader reads workflow definitions from YAML documents.  URLs are resolved
// through the abstract file system, so file, embedded and in-memory schemes
// all work.
type Loader struct {
	fs afs.Service
}

// NewLoader creates a definition loader.
func NewLoader() *Loader {
	return &Loader{fs: afs.New()}
}

// Load reads a registry from the YAML document at the specified URL.  An
// extension-less URL is completed with ".yaml".
func (l *Loader) Load(ctx context.Context, URL string) (*Registry, error) {
	if filepath.Ext(URL) == "" {
		URL += ".yaml"
	}
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions from %s: %w", URL, err)
	}
	registry, err := DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definitions from %s: %w", URL, err)
	}
	return registry, nil
}

type document struct {
	Definitions []*Definition `yaml:"definitions"`
}

// DecodeYAML decodes a registry from a YAML document with a top-level
// "definitions" sequence.
func DecodeYAML(encoded []byte) (*Registry, error) {
	doc := &document{}
	if err := yaml.Unmarshal(encoded, doc); err != nil {
		return nil, err
	}
	return New(doc.Definitions...)
}
