package csvio

// Package csvio reads and writes delimited files as ordered collections of
// header-to-value string mappings. The first row of a file is the header;
// every data row becomes one map keyed by header name.

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/runkit/runkit/fileio"
)

type options struct {
	delimiter rune
	headers   []string
	union     bool
}

// Option configures a read or write operation.
type Option func(*options)

// WithDelimiter sets the field delimiter. The default is a comma; pass '\t'
// for TSV files.
func WithDelimiter(d rune) Option {
	return func(o *options) {
		o.delimiter = d
	}
}

// WithHeaders fixes the header set and column order for a write. Without it
// the sorted keys of the first row are used.
func WithHeaders(headers []string) Option {
	return func(o *options) {
		o.headers = headers
	}
}

// WithUnionHeaders makes a write accept rows with differing key sets: the
// header row becomes the union of all keys, with keys beyond the base header
// set appended in sorted order. Without it such rows are an error.
func WithUnionHeaders() Option {
	return func(o *options) {
		o.union = true
	}
}

// ReadFile parses the delimited file at path into a row collection.
func ReadFile(path string, opts ...Option) ([]map[string]string, error) {
	rows, _, err := ReadFileHeaders(path, opts...)
	return rows, err
}

// ReadFileHeaders is ReadFile but also returns the header row in file order.
func ReadFileHeaders(path string, opts ...Option) ([]map[string]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	rows, headers, err := read(f, apply(opts))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, headers, nil
}

// Read parses delimited text from r into a row collection.
func Read(r io.Reader, opts ...Option) ([]map[string]string, error) {
	rows, _, err := read(r, apply(opts))
	return rows, err
}

// ReadString parses delimited text into a row collection.
func ReadString(text string, opts ...Option) ([]map[string]string, error) {
	return Read(strings.NewReader(text), opts...)
}

// WriteFile writes the row collection to path as a delimited file with a
// header row, creating missing parent directories, and returns the path
// written. Row order is preserved; see WithHeaders and WithUnionHeaders for
// the header policy.
func WriteFile(path string, rows []map[string]string, opts ...Option) (string, error) {
	o := apply(opts)

	headers, err := resolveHeaders(rows, o)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Comma = o.delimiter
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return fileio.Write(path, b.String())
}

func apply(opts []Option) options {
	o := options{delimiter: ','}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func read(r io.Reader, o options) ([]map[string]string, []string, error) {
	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	// All records must have as many fields as the header row.
	cr.FieldsPerRecord = 0

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	headers := records[0]
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if seen[h] {
			return nil, nil, fmt.Errorf("duplicate header %q", h)
		}
		seen[h] = true
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

// resolveHeaders determines the header row for a write and validates every
// row's keys against it.
func resolveHeaders(rows []map[string]string, o options) ([]string, error) {
	headers := o.headers
	if headers == nil {
		if len(rows) == 0 {
			return nil, fmt.Errorf("no rows and no headers given")
		}
		headers = sortedKeys(rows[0])
	}

	known := make(map[string]bool, len(headers))
	for _, h := range headers {
		if known[h] {
			return nil, fmt.Errorf("duplicate header %q", h)
		}
		known[h] = true
	}

	var extras []string
	for i, row := range rows {
		for key := range row {
			if known[key] {
				continue
			}
			if !o.union {
				return nil, fmt.Errorf("row %d has key %q outside the header set", i, key)
			}
			known[key] = true
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	out := make([]string, 0, len(headers)+len(extras))
	out = append(out, headers...)
	out = append(out, extras...)
	return out, nil
}

func sortedKeys(row map[string]string) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
