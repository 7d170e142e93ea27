// Package lsif writes package information as LSIF JSON lines.
package lsif

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

// Element is one LSIF vertex or edge.
type Element struct {
	ID      int             `json:"id"`
	Type    string          `json:"type"`
	Label   string          `json:"label"`
	Name    string          `json:"name,omitempty"`
	Manager pkginfo.Manager `json:"manager,omitempty"`
	Version string          `json:"version,omitempty"`

	// OutV and InV are only set on edges. Zero is a valid id.
	OutV *int `json:"outV,omitempty"`
	InV  *int `json:"inV,omitempty"`
}

const labelPackageInformation = "packageInformation"

// Writer emits packageInformation vertices and edges, one JSON object per
// line. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	enc    *json.Encoder
	nextID int
}

// NewWriter returns a Writer whose first element gets firstID.
// Ids must not collide with the rest of the dump, so callers pass the next
// free id of their own id space.
func NewWriter(w io.Writer, firstID int) *Writer {
	return &Writer{enc: json.NewEncoder(w), nextID: firstID}
}

// EmitPackageInformationVertex writes a packageInformation vertex for pkg.
func (w *Writer) EmitPackageInformationVertex(pkg pkginfo.Package) (int, error) {
	info := pkginfo.Describe(pkg)
	return w.emit(Element{
		Type:    "vertex",
		Label:   labelPackageInformation,
		Name:    info.Name,
		Manager: info.Manager,
		Version: info.Version,
	})
}

// EmitPackageInformationEdge writes a packageInformation edge from a moniker to a package.
func (w *Writer) EmitPackageInformationEdge(monikerID, packageID int) error {
	_, err := w.emit(Element{
		Type:  "edge",
		Label: labelPackageInformation,
		OutV:  &monikerID,
		InV:   &packageID,
	})
	return err
}

// NextID returns the id the next element will get.
func (w *Writer) NextID() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextID
}

func (w *Writer) emit(e Element) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e.ID = w.nextID
	if err := w.enc.Encode(e); err != nil {
		return 0, fmt.Errorf("writing %s %s: %w", e.Label, e.Type, err)
	}
	w.nextID++
	return e.ID, nil
}
