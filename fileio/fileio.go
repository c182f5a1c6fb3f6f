package fileio

// Package fileio provides small file helpers: whole-file and line-oriented
// reads, writes that create missing parent directories, and rotation of
// output paths that are already taken.

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// rotateMark separates the base name from the rotation counter, e.g.
// out.txt -> out_rx_1.txt -> out_rx_2.txt.
const rotateMark = "_rx_"

var rotateRe = regexp.MustCompile(`^(.*?)_rx_(\d+)$`)

type options struct {
	appendTo bool
	rotate   bool
	mode     os.FileMode
}

// Option configures a write operation.
type Option func(*options)

// WithAppend appends to the file instead of truncating it.
func WithAppend() Option {
	return func(o *options) {
		o.appendTo = true
	}
}

// WithRotate writes to the next free rotation of the path instead of
// overwriting an existing file.
func WithRotate() Option {
	return func(o *options) {
		o.rotate = true
	}
}

// WithMode sets the permission bits used when the file is created.
func WithMode(mode os.FileMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// Read returns the entire contents of the file as a string.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadLines returns the contents of the file as a slice of lines with
// trailing newlines stripped, mirroring WriteLines.
func ReadLines(path string) ([]string, error) {
	contents, err := Read(path)
	if err != nil {
		return nil, err
	}
	if contents == "" {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(contents, "\n"), "\n"), nil
}

// Write creates or replaces the file at path with the given contents,
// creating any missing parent directories, and returns the path written.
// The returned path differs from the input when WithRotate is in effect.
func Write(path string, contents string, opts ...Option) (string, error) {
	o := options{mode: 0o644}
	for _, opt := range opts {
		opt(&o)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create parent directory: %w", err)
		}
	}
	if o.rotate {
		path = Rotate(path)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if o.appendTo {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, o.mode)
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(contents); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// WriteLines writes the lines to path, one per line with a trailing newline
// each, and returns the path written. Reading the file back with ReadLines
// yields the original slice.
func WriteLines(path string, lines []string, opts ...Option) (string, error) {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return Write(path, b.String(), opts...)
}

// Rotate returns the next available rotation of path. The path itself is
// returned when nothing exists there yet; no files are moved.
func Rotate(path string) string {
	for {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		dir, base := filepath.Split(path)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		rotation := 1
		if m := rotateRe.FindStringSubmatch(stem); m != nil {
			stem = m[1]
			n, _ := strconv.Atoi(m[2])
			rotation = n + 1
		}
		path = filepath.Join(dir, fmt.Sprintf("%s%s%d%s", stem, rotateMark, rotation, ext))
	}
}

// TempFile writes the contents to a fresh temporary file and returns its path.
func TempFile(contents string) (string, error) {
	f, err := os.CreateTemp("", "runkit-*")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(contents); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}
