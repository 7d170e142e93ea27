package jdk

import (
	"path/filepath"
	"slices"
	"strings"
)

// BootClasspathSuffix marks system properties that hold a boot classpath,
// e.g. "sun.boot.class.path".
const BootClasspathSuffix = ".boot.class.path"

// BootClasspath returns the entries of every boot classpath property in props,
// split on the platform list separator. Properties are visited in key order
// and duplicate entries are dropped.
func BootClasspath(props map[string]string) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if strings.HasSuffix(k, BootClasspathSuffix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var paths []string
	seen := make(map[string]struct{})
	for _, k := range keys {
		for _, entry := range filepath.SplitList(props[k]) {
			if entry == "" {
				continue
			}
			if _, ok := seen[entry]; ok {
				continue
			}
			seen[entry] = struct{}{}
			paths = append(paths, entry)
		}
	}
	return paths
}
