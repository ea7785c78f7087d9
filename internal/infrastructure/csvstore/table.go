// Package csvstore persists items and accounts as comma-delimited UTF-8
// tables with a header row.
//
// Each store serializes its own operations with a mutex, which covers
// concurrent callers inside one process. Nothing coordinates separate
// processes: two processes rewriting the same file race, and the last
// ReplaceAll wins.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	domainErrors "inventory-tracker/internal/domain/errors"
)

const filePerm = 0o644

// table is the shared flat-file mechanics behind ItemStore and AccountStore.
type table struct {
	path   string
	header []string
	seed   [][]string

	mu sync.Mutex
}

func newTable(path string, header []string, seed ...[]string) *table {
	return &table{path: path, header: header, seed: seed}
}

func (t *table) storageError(op string, err error) error {
	return &domainErrors.StorageError{Op: op, Path: t.path, Err: err}
}

// ensureReady creates the file with header and seed rows when it is missing
// or empty. A seeded table is also reseeded when it holds a header but no
// rows. Must be called with t.mu held.
func (t *table) ensureReady(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(t.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return t.storageError("stat", err)
	case info.IsDir():
		return t.storageError("stat", errors.New("path is a directory"))
	case info.Size() > 0:
		if len(t.seed) == 0 {
			return nil
		}
		rows, err := t.parse()
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			return nil
		}
	}

	if err := t.write(append([][]string{t.header}, t.seed...)); err != nil {
		return t.storageError("create", err)
	}
	return nil
}

// readRows returns every data row, header excluded. Must be called with t.mu held.
func (t *table) readRows(ctx context.Context) ([][]string, error) {
	if err := t.ensureReady(ctx); err != nil {
		return nil, err
	}
	return t.parse()
}

func (t *table) parse() ([][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, t.storageError("open", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(t.header)

	header, err := r.Read()
	if err != nil {
		return nil, t.storageError("read", fmt.Errorf("header: %w", err))
	}
	if !slices.Equal(header, t.header) {
		return nil, t.storageError("read", fmt.Errorf("unexpected header %q", header))
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, t.storageError("read", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// appendRow adds one row at the end of the file. Must be called with t.mu held.
func (t *table) appendRow(ctx context.Context, row []string) error {
	if err := t.ensureReady(ctx); err != nil {
		return err
	}

	needsNewline, err := t.missingTrailingNewline()
	if err != nil {
		return t.storageError("append", err)
	}

	var buf bytes.Buffer
	if needsNewline {
		buf.WriteByte('\n')
	}
	if err := encodeRows(&buf, [][]string{row}); err != nil {
		return t.storageError("append", err)
	}

	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return t.storageError("append", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return t.storageError("append", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return t.storageError("append", err)
	}
	if err := f.Close(); err != nil {
		return t.storageError("append", err)
	}
	return nil
}

// replaceRows rewrites the header and rows in one atomic rename. Must be called with t.mu held.
func (t *table) replaceRows(ctx context.Context, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.write(append([][]string{t.header}, rows...)); err != nil {
		return t.storageError("write", err)
	}
	return nil
}

// write replaces the whole file. Rows go to a hidden sibling temp file that
// is synced and then renamed over t.path, so a reader sees the old table or
// the new one and never a partial write.
func (t *table) write(rows [][]string) (err error) {
	dir, name := filepath.Split(t.path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(filePerm); err != nil {
		return err
	}
	if err = encodeRows(tmp, rows); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), t.path)
}

func (t *table) missingTrailingNewline() (bool, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// encodeRows quotes a field only when it holds a comma, a quote or a line
// break, so rows read back unchanged are rewritten byte for byte.
func encodeRows(w io.Writer, rows [][]string) error {
	var b strings.Builder
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(field, ",\"\r\n") {
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(field, `"`, `""`))
				b.WriteByte('"')
				continue
			}
			b.WriteString(field)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
