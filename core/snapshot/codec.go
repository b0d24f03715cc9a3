package snapshot

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for snapshot names with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatMsgPack Format = "msgpack"
)

// FormatOf returns the format implied by the extension of name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".msgpack", ".mp":
		return FormatMsgPack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatOfContentType returns the format of an HTTP media type.
// An empty media type means JSON.
func FormatOfContentType(contentType string) (Format, error) {
	mediaType, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch strings.TrimSpace(mediaType) {
	case "", "application/json":
		return FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML, nil
	case "application/toml":
		return FormatTOML, nil
	case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
		return FormatMsgPack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
	}
}

// ContentType returns the media type a snapshot in format is served with.
func ContentType(format Format) string {
	switch format {
	case FormatYAML:
		return "application/yaml"
	case FormatTOML:
		return "application/toml"
	case FormatMsgPack:
		return "application/msgpack"
	default:
		return "application/json"
	}
}

// Decode reads one document from r into v using the format implied by name.
func Decode(name string, r io.Reader, v any) error {
	format, err := FormatOf(name)
	if err != nil {
		return err
	}
	if err := DecodeFormat(format, r, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// DecodeFormat reads one document in format from r into v.
func DecodeFormat(format Format, r io.Reader, v any) error {
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(v)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(v)
	case FormatMsgPack:
		err = msgpack.NewDecoder(r).Decode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s snapshot: %w", format, err)
	}
	return nil
}
