package finder

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tender-barbarian/classprov/internal/indexer"
	"github.com/tender-barbarian/classprov/internal/pkginfo"
	"github.com/tender-barbarian/classprov/internal/semanticdb"
)

// MatchMode controls how classfile names are compared in FindClassfiles.
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchPrefix   MatchMode = "prefix"
	MatchContains MatchMode = "contains"
)

func matchesQuery(classfile, query string, mode MatchMode) bool {
	switch mode {
	case MatchPrefix:
		return strings.HasPrefix(classfile, query)
	case MatchContains:
		return strings.Contains(classfile, query)
	default:
		return classfile == query
	}
}

// Resolution is the provenance of one symbol or classfile. Package is nil
// when the provenance is unknown.
type Resolution struct {
	Symbol    string        `json:"symbol,omitempty"`
	Classfile string        `json:"classfile,omitempty"`
	Package   *pkginfo.Info `json:"package,omitempty"`
}

// ClassfileRef is a scanned classfile and the package that ships it.
type ClassfileRef struct {
	Classfile string       `json:"classfile"`
	Package   pkginfo.Info `json:"package"`
}

// PackageSummary describes a known package and how many classfiles were scanned for it.
type PackageSummary struct {
	pkginfo.Info
	Path       string `json:"path,omitempty"`
	Classfiles int    `json:"classfiles"`
}

// Finder answers provenance queries against an Indexer.
type Finder struct {
	idx     *indexer.Indexer
	workers int
}

// New creates a Finder backed by the given Indexer.
func New(idx *indexer.Indexer) *Finder {
	return &Finder{idx: idx, workers: runtime.GOMAXPROCS(0)}
}

// ResolveClassfile returns the provenance of a classfile.
func (f *Finder) ResolveClassfile(classfile string) Resolution {
	res := Resolution{Classfile: classfile}
	if pkg, ok := f.idx.ResolvePackage(classfile); ok {
		info := pkginfo.Describe(pkg)
		res.Package = &info
	}
	return res
}

// ResolveSymbol returns the provenance of a symbol. Classfile is empty when
// the symbol has no enclosing top-level type.
func (f *Finder) ResolveSymbol(symbol string) Resolution {
	classfile, ok := semanticdb.Classfile(symbol)
	if !ok {
		return Resolution{Symbol: symbol}
	}
	res := f.ResolveClassfile(classfile)
	res.Symbol = symbol
	return res
}

// ResolveSymbols resolves symbols concurrently. Results are in input order.
func (f *Finder) ResolveSymbols(ctx context.Context, symbols []string) ([]Resolution, error) {
	out := make([]Resolution, len(symbols))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, symbol := range symbols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = f.ResolveSymbol(symbol)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindClassfiles returns scanned classfiles matching query, sorted by name.
// At most limit results are returned when limit is positive.
func (f *Finder) FindClassfiles(query string, mode MatchMode, limit int) []ClassfileRef {
	var refs []ClassfileRef
	for classfile, pkg := range f.idx.Classfiles() {
		if !matchesQuery(classfile, query, mode) {
			continue
		}
		refs = append(refs, ClassfileRef{Classfile: classfile, Package: pkginfo.Describe(pkg)})
	}
	slices.SortFunc(refs, func(a, b ClassfileRef) int {
		return cmp.Compare(a.Classfile, b.Classfile)
	})
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	return refs
}

// Packages returns the declared artifacts in declaration order, followed by
// the runtime package when JDK indexing is enabled. Artifacts declared more
// than once are listed once.
func (f *Finder) Packages() []PackageSummary {
	var result []PackageSummary
	seen := make(map[pkginfo.Package]bool)
	for _, a := range f.idx.Artifacts() {
		if seen[a.Package] {
			continue
		}
		seen[a.Package] = true
		result = append(result, PackageSummary{
			Info:       pkginfo.Describe(a.Package),
			Path:       a.Path,
			Classfiles: f.idx.ClassfileCount(a.Package),
		})
	}
	if f.idx.IndexesJDK() {
		pkg := f.idx.Runtime().Package()
		result = append(result, PackageSummary{
			Info:       pkginfo.Describe(pkg),
			Classfiles: f.idx.ClassfileCount(pkg),
		})
	}
	return result
}
