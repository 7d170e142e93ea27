package indexer

import (
	"github.com/tender-barbarian/classprov/internal/pkginfo"
	"github.com/tender-barbarian/classprov/internal/semanticdb"
)

// ResolvePackage returns the package that ships classfile, a slash-separated
// path such as "com/acme/Widget.class".
func (idx *Indexer) ResolvePackage(classfile string) (pkginfo.Package, bool) {
	if pkg, ok := idx.table.byClassfile[classfile]; ok {
		return pkg, true
	}
	if idx.isRuntimeClassfile(classfile) {
		return idx.runtime.Package(), true
	}
	return nil, false
}

// ResolveSymbolPackage returns the package that ships the top-level class
// enclosing symbol. Local and malformed symbols never resolve.
func (idx *Indexer) ResolveSymbolPackage(symbol string) (pkginfo.Package, bool) {
	classfile, ok := semanticdb.Classfile(symbol)
	if !ok {
		return nil, false
	}
	return idx.ResolvePackage(classfile)
}

// RecordImportIfKnown links monikerID to the package of symbol, emitting the
// package vertex the first time the package is seen. Symbols without a known
// package are ignored.
func (idx *Indexer) RecordImportIfKnown(symbol string, monikerID int) error {
	if idx.registry == nil {
		return ErrNoWriter
	}
	pkg, ok := idx.ResolveSymbolPackage(symbol)
	if !ok {
		return nil
	}
	pkgID, err := idx.registry.IDFor(pkg)
	if err != nil {
		return err
	}
	return idx.writer.EmitPackageInformationEdge(monikerID, pkgID)
}

// isRuntimeClassfile probes the runtime image of a modular runtime. Positive
// answers are remembered; misses are probed again on the next query.
func (idx *Indexer) isRuntimeClassfile(classfile string) bool {
	if !idx.indexJDK || idx.runtime.IsLegacy() || idx.image == nil {
		return false
	}
	if _, ok := idx.jdkClassfiles.Load(classfile); ok {
		return true
	}
	if !idx.image.Contains(classfile) {
		return false
	}
	idx.jdkClassfiles.Store(classfile, struct{}{})
	return true
}
