// Package jdk classifies the target Java runtime and locates the JDK's own classfiles.
package jdk

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

// ErrVersion is returned for java.version strings that carry no major version.
var ErrVersion = errors.New("unrecognized java version")

// lastLegacyMajor is the newest release without the module system.
const lastLegacyMajor = 8

// Runtime is the classification of a Java runtime. It never changes once computed.
type Runtime struct {
	major int
}

// Classify parses a java.version value such as "1.8.0_292", "11.0.2", "17-ea"
// or "21+35".
func Classify(version string) (Runtime, error) {
	v := strings.TrimSpace(version)
	if rest, ok := strings.CutPrefix(v, "1."); ok {
		v = rest
	}
	end := strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(v)
	}
	major, err := strconv.Atoi(v[:end])
	if err != nil || major <= 0 {
		return Runtime{}, fmt.Errorf("%w: %q", ErrVersion, version)
	}
	return Runtime{major: major}, nil
}

// Major returns the runtime's major version.
func (r Runtime) Major() int {
	return r.major
}

// IsLegacy reports whether the runtime predates the module system, in which
// case the JDK ships its classes as jars on the boot classpath.
func (r Runtime) IsLegacy() bool {
	return r.major <= lastLegacyMajor
}

// Package is the provenance attributed to classfiles of the runtime itself.
func (r Runtime) Package() pkginfo.RuntimePackage {
	return pkginfo.RuntimePackage{Version: strconv.Itoa(r.major)}
}

func (r Runtime) String() string {
	if r.IsLegacy() {
		return fmt.Sprintf("java %d (boot classpath)", r.major)
	}
	return fmt.Sprintf("java %d (runtime image)", r.major)
}
