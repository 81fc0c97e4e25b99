package op

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJSONFileRoundTrip tests write-then-read equality
func TestJSONFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "person.json")
	value := map[string]interface{}{"name": "Alice", "age": float64(30)}

	require.NoError(t, WriteJSONFile(value, path, &JSONFileOptions{Mode: ModeWrite, Indent: 2}))

	parsed, err := ReadJSONFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, value, parsed)

	// The file is pretty-printed.
	content, err := ToString(path)
	require.NoError(t, err)
	assert.Contains(t, content, "\n  ")
}

// TestJSONFileAppend tests that append concatenates with no separator
func TestJSONFileAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.json")
	require.NoError(t, os.WriteFile(path, []byte("Existing Content\n"), 0o644))

	value := map[string]interface{}{"appended": true}
	require.NoError(t, WriteJSONFile(value, path, &JSONFileOptions{Mode: ModeAppend}))

	serialized, err := Encode(value, nil)
	require.NoError(t, err)

	content, err := ToString(path)
	require.NoError(t, err)
	assert.Equal(t, "Existing Content\n"+serialized, content)
}

// TestJSONFileMissing tests the not-found read error
func TestJSONFileMissing(t *testing.T) {
	_, err := ReadJSONFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

// TestJSONFileEmptyOrInvalid tests decode failures on file content
func TestJSONFileEmptyOrInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"empty.json":   "",
		"blank.json":   "  \n ",
		"invalid.json": `{"a":`,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := ReadJSONFile(path, nil)
		var decErr *DecodeError
		assert.ErrorAs(t, err, &decErr, "file %s", name)
	}
}

// TestJSONFileInvalidMode tests mode validation passthrough
func TestJSONFileInvalidMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := WriteJSONFile(map[string]interface{}{"a": float64(1)}, path, &JSONFileOptions{Mode: "rb"})
	assert.ErrorIs(t, err, ErrInvalidMode)
}

// TestJSONFileUnsupportedValue tests serialization failure passthrough
func TestJSONFileUnsupportedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := WriteJSONFile([]byte("raw"), path, nil)
	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
	assert.False(t, PathExists(path))
}

// TestJSONFileCharsetRoundTrip tests legacy single-byte encodings
func TestJSONFileCharsetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.json")
	value := map[string]interface{}{"city": "Zürich"}

	opts := &JSONFileOptions{
		Charset: "iso-8859-1",
		Encode:  &EncodeConfig{EnsureASCII: false},
	}
	require.NoError(t, WriteJSONFile(value, path, opts))

	// The on-disk bytes are Latin-1, not UTF-8.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, utf8.Valid(raw))

	parsed, err := ReadJSONFile(path, &JSONFileOptions{Charset: "iso-8859-1"})
	require.NoError(t, err)
	assert.Equal(t, value, parsed)
}
