package pkginfo

import "fmt"

// Package identifies the distributable unit a classfile came from.
// The set of implementations is closed: ArtifactPackage and RuntimePackage.
// Both are comparable value types, so a Package can be used as a map key and
// two packages are equal iff their variant and fields match.
type Package interface {
	fmt.Stringer
	isPackage()
}

// ArtifactPackage is a declared library dependency, identified by its Maven coordinates.
type ArtifactPackage struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
}

func (ArtifactPackage) isPackage() {}

func (p ArtifactPackage) String() string {
	return p.Group + ":" + p.Artifact + ":" + p.Version
}

// RuntimePackage stands for the JDK itself, tagged with the runtime major version.
type RuntimePackage struct {
	Version string `json:"version"`
}

func (RuntimePackage) isPackage() {}

func (p RuntimePackage) String() string {
	return "jdk:" + p.Version
}

// Manager names the package ecosystem a Package belongs to.
type Manager string

const (
	ManagerMaven Manager = "maven"
	ManagerJDK   Manager = "jdk"
)

// Info is the flattened, serialisable description of a Package.
type Info struct {
	Name    string  `json:"name"`
	Manager Manager `json:"manager"`
	Version string  `json:"version"`
}

// Describe flattens pkg into an Info. It panics on a nil Package.
func Describe(pkg Package) Info {
	switch p := pkg.(type) {
	case ArtifactPackage:
		return Info{Name: p.Group + ":" + p.Artifact, Manager: ManagerMaven, Version: p.Version}
	case RuntimePackage:
		return Info{Name: "jdk", Manager: ManagerJDK, Version: p.Version}
	default:
		panic(fmt.Sprintf("pkginfo: unknown package type %T", pkg))
	}
}

// Artifact is a declared dependency: its coordinates plus the resolved path on disk.
type Artifact struct {
	Package ArtifactPackage
	Path    string
}
