package indexer

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tender-barbarian/classprov/internal/emit"
	"github.com/tender-barbarian/classprov/internal/jar"
	"github.com/tender-barbarian/classprov/internal/jdk"
	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

// ErrNoWriter is returned by RecordImportIfKnown when the Indexer was built without a Writer.
var ErrNoWriter = errors.New("no package information writer configured")

// Options configures an Indexer.
type Options struct {
	// Artifacts are scanned in order; the first artifact to claim a classfile owns it.
	Artifacts []pkginfo.Artifact
	// IndexJDK enables provenance for the JDK's own classfiles.
	IndexJDK bool
	// Runtime is the classified target runtime. It is required.
	Runtime jdk.Runtime
	// SystemProperties of the target runtime, searched for boot classpaths on legacy runtimes.
	SystemProperties map[string]string
	// Image answers runtime image lookups on modular runtimes.
	Image jdk.RuntimeImage
	// Writer receives package information; only RecordImportIfKnown needs it.
	Writer emit.Writer
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Indexer maps classfiles to the package that ships them. It is built once by
// New and is safe for concurrent queries afterwards.
type Indexer struct {
	table     table
	artifacts []pkginfo.Artifact
	runtime   jdk.Runtime
	indexJDK  bool
	image     jdk.RuntimeImage
	writer    emit.Writer
	registry  *emit.Registry
	log       zerolog.Logger

	// jdkClassfiles holds classfiles confirmed to live in the runtime image.
	jdkClassfiles sync.Map
}

// table is the classfile -> package map. It is only written during New.
type table struct {
	byClassfile map[string]pkginfo.Package
	counts      map[pkginfo.Package]int
}

// Record keeps the first package recorded for a classfile.
func (t *table) Record(classfile string, pkg pkginfo.Package) {
	if _, ok := t.byClassfile[classfile]; ok {
		return
	}
	t.byClassfile[classfile] = pkg
	t.counts[pkg]++
}

// New scans the declared artifacts and, on a legacy runtime with JDK indexing
// enabled, the boot classpath. A jar that cannot be read aborts construction.
func New(opts Options) (*Indexer, error) {
	if opts.Runtime.Major() == 0 {
		return nil, fmt.Errorf("%w: runtime not set", jdk.ErrVersion)
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	idx := &Indexer{
		table: table{
			byClassfile: make(map[string]pkginfo.Package),
			counts:      make(map[pkginfo.Package]int),
		},
		artifacts: opts.Artifacts,
		runtime:   opts.Runtime,
		indexJDK:  opts.IndexJDK,
		image:     opts.Image,
		writer:    opts.Writer,
		log:       log.With().Str("component", "indexer").Logger(),
	}
	if opts.Writer != nil {
		idx.registry = emit.NewRegistry(opts.Writer, idx.log)
	}

	for _, a := range opts.Artifacts {
		if err := idx.indexArtifact(a); err != nil {
			return nil, err
		}
	}
	if err := idx.indexJDKClasspath(opts.SystemProperties); err != nil {
		return nil, err
	}

	idx.log.Info().
		Stringer("runtime", idx.runtime).
		Bool("index_jdk", idx.indexJDK).
		Int("classfiles", len(idx.table.byClassfile)).
		Msg("Package table ready")
	return idx, nil
}

// indexArtifact scans a declared artifact. Paths that are not regular jar
// files are skipped: a dependency may legitimately resolve to a directory.
func (idx *Indexer) indexArtifact(a pkginfo.Artifact) error {
	if !jar.Indexable(a.Path) {
		idx.log.Debug().Str("path", a.Path).Stringer("package", a.Package).Msg("Skipping non-jar artifact")
		return nil
	}
	return idx.scan(a.Path, a.Package)
}

// indexJDKClasspath scans the boot classpath jars of a legacy runtime.
// Modular runtimes are never scanned up front; see isRuntimeClassfile.
func (idx *Indexer) indexJDKClasspath(props map[string]string) error {
	if !idx.indexJDK {
		return nil
	}
	if !idx.runtime.IsLegacy() {
		if idx.image == nil {
			idx.log.Warn().Msg("JDK indexing enabled without a runtime image, JDK classfiles will not resolve")
		}
		return nil
	}
	pkg := idx.runtime.Package()
	for _, path := range jdk.BootClasspath(props) {
		if !jar.Indexable(path) {
			idx.log.Debug().Str("path", path).Msg("Skipping boot classpath entry")
			continue
		}
		idx.log.Info().Str("path", path).Msg("Indexing boot classpath jar")
		if err := idx.scan(path, pkg); err != nil {
			return err
		}
	}
	return nil
}

func (idx *Indexer) scan(path string, pkg pkginfo.Package) error {
	n, err := jar.Scan(path, pkg, &idx.table)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", pkg, err)
	}
	idx.log.Debug().Str("path", path).Stringer("package", pkg).Int("classfiles", n).Msg("Indexed jar")
	return nil
}

// Runtime returns the runtime the Indexer was built for.
func (idx *Indexer) Runtime() jdk.Runtime {
	return idx.runtime
}

// Artifacts returns the declared artifacts in declaration order.
func (idx *Indexer) Artifacts() []pkginfo.Artifact {
	return idx.artifacts
}

// IndexesJDK reports whether JDK classfiles are attributed to the runtime package.
func (idx *Indexer) IndexesJDK() bool {
	return idx.indexJDK
}

// Classfiles iterates over the scanned classfiles in no particular order.
// Runtime image classfiles that were never scanned are not included.
func (idx *Indexer) Classfiles() iter.Seq2[string, pkginfo.Package] {
	return func(yield func(string, pkginfo.Package) bool) {
		for c, pkg := range idx.table.byClassfile {
			if !yield(c, pkg) {
				return
			}
		}
	}
}

// ClassfileCount returns how many scanned classfiles are attributed to pkg.
func (idx *Indexer) ClassfileCount(pkg pkginfo.Package) int {
	return idx.table.counts[pkg]
}
