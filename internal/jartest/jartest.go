// Package jartest builds small jar and jmod archives for tests.
package jartest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Write creates dir/name as a jar containing the given entry names and returns its path.
func Write(t testing.TB, dir, name string, entries ...string) string {
	t.Helper()
	return write(t, filepath.Join(dir, name), nil, entries)
}

// WriteJmod creates dir/name as a jmod whose class entries live under "classes/".
// header is written ahead of the zip payload.
func WriteJmod(t testing.TB, dir, name string, header []byte, classfiles ...string) string {
	t.Helper()
	entries := make([]string, 0, len(classfiles)+1)
	entries = append(entries, "classes/module-info.class")
	for _, c := range classfiles {
		entries = append(entries, "classes/"+c)
	}
	return write(t, filepath.Join(dir, name), header, entries)
}

func write(t testing.TB, path string, header []byte, entries []string) string {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(header)
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e)
		if err != nil {
			t.Fatalf("creating entry %s: %v", e, err)
		}
		if strings.HasSuffix(e, "/") {
			continue
		}
		if _, err := w.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE}); err != nil {
			t.Fatalf("writing entry %s: %v", e, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
