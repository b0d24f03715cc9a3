package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type item struct {
	ID   string `json:"id" yaml:"id" toml:"id" msgpack:"id"`
	Name string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
}

var wantItems = []item{
	{ID: "1", Name: "Casper"},
	{ID: "2", Name: "Slimer"},
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"ghosts.json", FormatJSON, false},
		{"dir/ghosts.YAML", FormatYAML, false},
		{"ghosts.yml", FormatYAML, false},
		{"ghosts.toml", FormatTOML, false},
		{"ghosts.msgpack", FormatMsgPack, false},
		{"ghosts.mp", FormatMsgPack, false},
		{"ghosts.csv", "", true},
		{"ghosts", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatOf(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatOfContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
		wantErr     bool
	}{
		{"", FormatJSON, false},
		{"application/json; charset=utf-8", FormatJSON, false},
		{"application/x-yaml", FormatYAML, false},
		{"Application/TOML", FormatTOML, false},
		{"application/vnd.msgpack", FormatMsgPack, false},
		{"text/csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := FormatOfContentType(tt.contentType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentTypeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML, FormatMsgPack} {
		got, err := FormatOfContentType(ContentType(format))
		require.NoError(t, err)
		assert.Equal(t, format, got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "snapshot.json",
			body: `{"descriptors": [{"id": "1", "name": "Casper"}, {"id": "2", "name": "Slimer"}]}`,
		},
		{
			name: "snapshot.yaml",
			body: "descriptors:\n  - id: \"1\"\n    name: Casper\n  - id: \"2\"\n    name: Slimer\n",
		},
		{
			name: "snapshot.toml",
			body: "[[descriptors]]\nid = \"1\"\nname = \"Casper\"\n\n[[descriptors]]\nid = \"2\"\nname = \"Slimer\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document[item]
			err := Decode(tt.name, strings.NewReader(tt.body), &doc)
			require.NoError(t, err)
			assert.Equal(t, wantItems, doc.Descriptors)
		})
	}

	t.Run("snapshot.msgpack", func(t *testing.T) {
		data, err := msgpack.Marshal(Document[item]{Descriptors: wantItems})
		require.NoError(t, err)

		var doc Document[item]
		require.NoError(t, Decode("snapshot.msgpack", bytes.NewReader(data), &doc))
		assert.Equal(t, wantItems, doc.Descriptors)
	})

	t.Run("Malformed", func(t *testing.T) {
		var doc Document[item]
		err := Decode("snapshot.json", strings.NewReader(`{"descriptors": [`), &doc)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "snapshot.json: failed to decode json snapshot")
	})

	t.Run("Unsupported", func(t *testing.T) {
		var doc Document[item]
		err := Decode("snapshot.xml", strings.NewReader(`<x/>`), &doc)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Exists", func(t *testing.T) {
		path := filepath.Join(dir, "ghosts.yaml")
		body := "descriptors:\n  - id: \"1\"\n    name: Casper\n  - id: \"2\"\n    name: Slimer\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		items, err := LoadFile[item](path)
		require.NoError(t, err)
		assert.Equal(t, wantItems, items)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadFile[item](filepath.Join(dir, "missing.json"))
		assert.ErrorContains(t, err, "failed to open snapshot")
	})
}
