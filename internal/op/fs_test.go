package op

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPathExists tests existence checks for files, dirs and symlinks
func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "exists.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, PathExists(file))
	assert.True(t, PathExists(dir))
	assert.True(t, PathExists(dir+string(os.PathSeparator)))
	assert.False(t, PathExists(filepath.Join(dir, "missing.txt")))

	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Symlink(file, link))
	assert.True(t, PathExists(link))
}

// TestMakeDir tests recursive, idempotent directory creation
func TestMakeDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	require.NoError(t, MakeDir(nested))
	assert.True(t, PathExists(nested))

	// Already present is a no-op.
	require.NoError(t, MakeDir(nested))
}

// TestDeleteDir tests idempotent directory tree removal
func TestDeleteDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tree")
	require.NoError(t, MakeDir(filepath.Join(target, "sub")))
	require.NoError(t, os.WriteFile(filepath.Join(target, "sub", "f.txt"), []byte("x"), 0o644))

	removed, err := DeleteDir(target)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, PathExists(target))

	removed, err = DeleteDir(target)
	require.NoError(t, err)
	assert.False(t, removed)
}

// TestCopyFile tests byte-for-byte copies
func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	content := []byte("copy me \x00\x01\x02")
	require.NoError(t, os.WriteFile(src, content, 0o644))

	require.NoError(t, CopyFile(src, dst))

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, copied)
	assert.True(t, PathExists(src))

	assert.Error(t, CopyFile(filepath.Join(dir, "missing"), dst))
}

// TestMoveFile tests file relocation
func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "moved", "dst.txt")
	require.NoError(t, MakeDir(filepath.Join(dir, "moved")))
	require.NoError(t, os.WriteFile(src, []byte("relocate"), 0o644))

	require.NoError(t, MoveFile(src, dst))

	assert.False(t, PathExists(src))
	moved, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "relocate", string(moved))
}

// TestDeleteFile tests idempotent file removal
func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "victim.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	removed, err := DeleteFile(file)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = DeleteFile(file)
	require.NoError(t, err)
	assert.False(t, removed)
}

// TestWriteToFile tests write modes, terminator and empty-data no-op
func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.txt")

	written, err := WriteToFile("hello", file, &WriteOptions{Mode: ModeWrite, End: "END"})
	require.NoError(t, err)
	assert.True(t, written)

	content, err := ToString(file)
	require.NoError(t, err)
	assert.Equal(t, "helloEND", content)

	// Append preserves existing content.
	written, err = WriteToFile(" more", file, &WriteOptions{Mode: ModeAppend})
	require.NoError(t, err)
	assert.True(t, written)

	content, err = ToString(file)
	require.NoError(t, err)
	assert.Equal(t, "helloEND more", content)

	// Write mode truncates.
	written, err = WriteToFile("fresh", file, nil)
	require.NoError(t, err)
	assert.True(t, written)

	content, err = ToString(file)
	require.NoError(t, err)
	assert.Equal(t, "fresh", content)
}

// TestWriteToFileEmptyData tests the no-op boolean result
func TestWriteToFileEmptyData(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "untouched.txt")

	written, err := WriteToFile("", file, nil)
	require.NoError(t, err)
	assert.False(t, written)
	assert.False(t, PathExists(file))
}

// TestWriteToFileInvalidMode tests mode validation
func TestWriteToFileInvalidMode(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.txt")

	for _, mode := range []string{"r", "rb", "x", "w+"} {
		written, err := WriteToFile("data", file, &WriteOptions{Mode: mode})
		assert.ErrorIs(t, err, ErrInvalidMode, "mode %q", mode)
		assert.False(t, written)
	}
	assert.False(t, PathExists(file))
}

// TestToString tests full text reads
func TestToString(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(file, []byte("line one\nline two"), 0o644))

	content, err := ToString(file)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", content)

	_, err = ToString(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

// TestLoadFile tests random-access binary loading
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(file, []byte("0123456789"), 0o644))

	buf, err := LoadFile(file)
	require.NoError(t, err)

	_, err = buf.Seek(5, io.SeekStart)
	require.NoError(t, err)
	rest, err := io.ReadAll(buf)
	require.NoError(t, err)
	assert.Equal(t, "56789", string(rest))
}

// TestPathWithoutFile tests directory component extraction
func TestPathWithoutFile(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("/tmp/data"), PathWithoutFile(filepath.FromSlash("/tmp/data/file.json")))
	assert.Equal(t, ".", PathWithoutFile("file.json"))
}
