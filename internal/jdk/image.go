package jdk

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tender-barbarian/classprov/internal/jar"
)

// RuntimeImage answers whether the active modular runtime image contains a
// classfile, given its normalised path such as "java/lang/String.class".
// Lookup failures count as absence.
type RuntimeImage interface {
	Contains(classfile string) bool
}

// ImageFunc adapts a function to RuntimeImage.
type ImageFunc func(classfile string) bool

// Contains calls f(classfile).
func (f ImageFunc) Contains(classfile string) bool {
	return f(classfile)
}

var jmodMagic = []byte{'J', 'M', 1, 0}

// JmodImage is a RuntimeImage backed by the jmods/ directory of a modular JDK.
// Nothing is read until the first Contains call.
type JmodImage struct {
	dir string
	log zerolog.Logger

	once    sync.Once
	classes map[string]struct{}
}

// NewJmodImage returns a RuntimeImage for the JDK installed at javaHome.
func NewJmodImage(javaHome string, log zerolog.Logger) *JmodImage {
	return &JmodImage{
		dir: filepath.Join(javaHome, "jmods"),
		log: log.With().Str("component", "jmods").Logger(),
	}
}

// Contains reports whether any jmod in the image holds classfile.
func (img *JmodImage) Contains(classfile string) bool {
	img.once.Do(img.load)
	_, ok := img.classes[classfile]
	return ok
}

func (img *JmodImage) load() {
	img.classes = make(map[string]struct{})
	paths, err := filepath.Glob(filepath.Join(img.dir, "*.jmod"))
	if err != nil || len(paths) == 0 {
		img.log.Warn().Str("dir", img.dir).Msg("No jmods found, runtime image lookups will miss")
		return
	}
	for _, path := range paths {
		if err := img.loadJmod(path); err != nil {
			img.log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable jmod")
		}
	}
	img.log.Debug().Int("jmods", len(paths)).Int("classfiles", len(img.classes)).Msg("Loaded runtime image")
}

func (img *JmodImage) loadJmod(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening jmod: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat jmod: %w", err)
	}
	header := make([]byte, len(jmodMagic))
	if _, err := f.ReadAt(header, 0); err != nil {
		return fmt.Errorf("reading jmod header: %w", err)
	}
	if !bytes.Equal(header, jmodMagic) {
		return fmt.Errorf("bad jmod header %x", header)
	}

	size := info.Size() - int64(len(jmodMagic))
	zr, err := zip.NewReader(io.NewSectionReader(f, int64(len(jmodMagic)), size), size)
	if err != nil {
		return fmt.Errorf("reading jmod archive: %w", err)
	}
	jar.Walk(zr, "classes/", func(classfile string) {
		img.classes[classfile] = struct{}{}
	})
	return nil
}
