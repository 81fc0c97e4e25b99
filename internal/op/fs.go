package op

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// File open modes accepted by WriteToFile.
const (
	ModeWrite  = "w"
	ModeAppend = "a"
)

// WriteOptions configures WriteToFile. A nil options value means
// truncate-and-write with no terminator.
type WriteOptions struct {
	// Mode is ModeWrite or ModeAppend.
	Mode string
	// End is written immediately after the data.
	End string
}

// PathExists reports whether path exists as a file, directory, or a
// symbolic link resolving to either. Trailing separators are
// tolerated.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MakeDir creates the directory at path along with any missing
// parents. It is a no-op when the directory already exists.
func MakeDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// DeleteDir removes the directory tree rooted at path. It reports
// false when the directory did not exist; non-existence is not an
// error.
func DeleteDir(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := os.RemoveAll(path); err != nil {
		return false, err
	}
	return true, nil
}

// CopyFile copies src to dst byte for byte.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// MoveFile relocates src to dst. Rename is attempted first; a copy
// plus delete covers cross-device moves.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// DeleteFile removes the file at path. It reports false when the file
// did not exist; non-existence is not an error.
func DeleteFile(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// WriteToFile writes data followed by opts.End to path. Empty data is
// reported as false with no write performed. An unsupported mode
// returns ErrInvalidMode.
func WriteToFile(data, path string, opts *WriteOptions) (written bool, err error) {
	if opts == nil {
		opts = &WriteOptions{Mode: ModeWrite}
	}
	if data == "" {
		return false, nil
	}

	var flags int
	switch opts.Mode {
	case ModeWrite, "":
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeAppend:
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidMode, opts.Mode)
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = f.WriteString(data + opts.End); err != nil {
		return false, err
	}
	return true, nil
}

// ToString reads the file at path fully as text.
func ToString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadFile reads the file at path into a random-access in-memory
// buffer without decoding.
func LoadFile(path string) (*bytes.Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// PathWithoutFile returns the directory component of a file path. No
// filesystem access is performed.
func PathWithoutFile(path string) string {
	return filepath.Dir(path)
}
