package worlddoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/exploration/pkg/state"
	"github.com/jwebster45206/exploration/pkg/world"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a world document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromName picks the format from a file name or key suffix. Anything
// that is not .yaml or .yml is read as JSON.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a document, ignoring fields it does not know.
func Decode(data []byte, format Format) (*Document, error) {
	return decode(data, format, false)
}

// DecodeStrict parses a document and rejects unknown fields.
func DecodeStrict(data []byte, format Format) (*Document, error) {
	return decode(data, format, true)
}

func decode(data []byte, format Format, strict bool) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON world: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to decode YAML world: empty document")
			}
			return nil, fmt.Errorf("failed to decode YAML world: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown world format %q", format)
	}
	return &doc, nil
}

// Load decodes and builds a world in one step.
func Load(data []byte, format Format) (*world.World, *state.State, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, nil, err
	}
	return Build(doc)
}

// LoadFile reads and builds the world document at path.
func LoadFile(path string) (*world.World, *state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return Load(data, FormatFromName(path))
}

// Source hands out raw world documents by name.
type Source interface {
	GetWorldDocument(ctx context.Context, name string) ([]byte, error)
}

// LoadFrom fetches a document from src and builds it.
func LoadFrom(ctx context.Context, src Source, name string) (*world.World, *state.State, error) {
	data, err := src.GetWorldDocument(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return Load(data, FormatFromName(name))
}
