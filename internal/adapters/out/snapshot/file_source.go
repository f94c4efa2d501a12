package snapshot

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"pricing/internal/core/ports"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document and builds the snapshot. Unknown keys are
// rejected so that a typo in a rule never silently disables it.
func ParseYAML(data []byte, version string) (*Snapshot, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode snapshot yaml: %w", err)
	}
	return Build(doc, version)
}

// ContentVersion derives a snapshot version from the raw document bytes.
func ContentVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:8])
}

// FileSource loads snapshots from a YAML file.
type FileSource struct {
	path string
}

var _ ports.SnapshotSource = (*FileSource)(nil)

// NewFileSource creates a FileSource reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and builds the file. The version is derived from the content,
// so reloading an unchanged file yields the same version.
func (s *FileSource) Load(ctx context.Context) (ports.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file %s: %w", s.path, err)
	}
	snap, err := ParseYAML(data, ContentVersion(data))
	if err != nil {
		return nil, err
	}
	return snap, nil
}
