// Package emit assigns package information ids and forwards them to a writer.
package emit

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

// Writer persists package information records.
type Writer interface {
	// EmitPackageInformationVertex persists pkg and returns the id it was given.
	EmitPackageInformationVertex(pkg pkginfo.Package) (int, error)
	// EmitPackageInformationEdge links a moniker to a previously emitted package.
	EmitPackageInformationEdge(monikerID, packageID int) error
}

// Registry hands out one id per distinct Package. The first request for a
// package emits its vertex; every later or concurrent request gets the same id
// without emitting again. A failed emission assigns nothing.
type Registry struct {
	w   Writer
	log zerolog.Logger

	mu  sync.RWMutex
	ids map[pkginfo.Package]int
}

// NewRegistry returns an empty Registry emitting through w.
func NewRegistry(w Writer, log zerolog.Logger) *Registry {
	return &Registry{
		w:   w,
		log: log,
		ids: make(map[pkginfo.Package]int),
	}
}

// IDFor returns the id of pkg, emitting its vertex on first use.
func (r *Registry) IDFor(pkg pkginfo.Package) (int, error) {
	r.mu.RLock()
	id, ok := r.ids[pkg]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[pkg]; ok {
		return id, nil
	}
	id, err := r.w.EmitPackageInformationVertex(pkg)
	if err != nil {
		return 0, fmt.Errorf("emitting package information for %s: %w", pkg, err)
	}
	r.ids[pkg] = id
	r.log.Debug().Stringer("package", pkg).Int("id", id).Msg("Emitted package information")
	return id, nil
}

// Len returns the number of packages assigned an id so far.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}
