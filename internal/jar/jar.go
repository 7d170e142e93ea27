// Package jar scans jar archives for top-level classfiles.
package jar

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

// ErrOpen is wrapped by every failure to open or read an archive that was
// expected to be a jar.
var ErrOpen = errors.New("opening jar")

var jarPattern = glob.MustCompile("**.jar", '/')

// Recorder receives the classfiles found in an archive.
type Recorder interface {
	Record(classfile string, pkg pkginfo.Package)
}

// IsJar reports whether path matches the jar archive pattern. It does not touch the disk.
func IsJar(path string) bool {
	return jarPattern.Match(filepath.ToSlash(path))
}

// Indexable reports whether path names a jar that exists as a regular file.
// Directories, non-jar paths and dangling symlinks are not indexable.
func Indexable(path string) bool {
	if !IsJar(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsTopLevelClassfile reports whether an archive entry is a classfile of a
// top-level type. Nested and synthetic classes contain '$' and are skipped.
func IsTopLevelClassfile(name string) bool {
	return strings.HasSuffix(name, ".class") && !strings.Contains(name, "$")
}

// Scan records every top-level classfile of the jar at path as belonging to pkg
// and returns how many entries were recorded.
func Scan(path string, pkg pkginfo.Package, rec Recorder) (int, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer zr.Close()

	n := 0
	Walk(&zr.Reader, "", func(classfile string) {
		rec.Record(classfile, pkg)
		n++
	})
	return n, nil
}

// Walk calls fn with the normalised name of every top-level classfile in zr
// whose entry name starts with prefix. The prefix is stripped from the name
// passed to fn.
func Walk(zr *zip.Reader, prefix string, fn func(classfile string)) {
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, `\`, "/")
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || !IsTopLevelClassfile(rest) {
			continue
		}
		fn(rest)
	}
}
