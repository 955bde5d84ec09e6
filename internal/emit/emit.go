// Package emit persists finalized manifests as pretty-printed artifacts, one
// file per header. Artifacts are the stable contract for downstream
// generators: field order, collection order and encoding never depend on the
// environment.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"manifold/internal/manifest"
)

// Format selects the artifact encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Ext returns the artifact file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	default:
		return ".json"
	}
}

// ParseFormat accepts the spellings used in manifold.toml and on the CLI.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, fmt.Errorf("unknown artifact format %q (want json or yaml)", s)
}

// Encode renders the artifact bytes without touching disk.
func Encode(info manifest.FileInfo, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(info); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown artifact format %d", uint8(format))
}

// Writer writes artifacts into Dir, one per manifest, named by the manifest
// name plus the format extension.
type Writer struct {
	Dir    string
	Format Format
}

// Write encodes the manifest and atomically replaces its artifact. A prior
// artifact of the same name is overwritten. Returns the artifact path.
func (w Writer) Write(info manifest.FileInfo) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	data, err := Encode(info, w.Format)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", info.Name, err)
	}

	// Временный файл в той же директории + rename: читатель никогда не
	// видит полузаписанный артефакт.
	path := filepath.Join(w.Dir, info.Name+w.Format.Ext())
	tmp, err := os.CreateTemp(w.Dir, "."+info.Name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
