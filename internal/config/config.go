// Package config loads the declared dependencies and runtime settings the
// package table is built from.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Artifact is a declared dependency.
type Artifact struct {
	Group    string `yaml:"group" validate:"required"`
	Artifact string `yaml:"artifact" validate:"required"`
	Version  string `yaml:"version" validate:"required"`
	Path     string `yaml:"path" validate:"required"`
}

// Config describes what the package table indexes.
type Config struct {
	// JavaVersion is the java.version property of the runtime the code targets.
	JavaVersion string `yaml:"javaVersion" validate:"required"`
	// IndexJDK attributes JDK classfiles to the runtime package.
	IndexJDK bool `yaml:"indexJdk"`
	// JavaHome locates the runtime image of a modular JDK.
	JavaHome string `yaml:"javaHome"`
	// SystemProperties of the target runtime; legacy runtimes list their
	// boot classpath here.
	SystemProperties map[string]string `yaml:"systemProperties"`
	Artifacts        []Artifact        `yaml:"artifacts" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the YAML file at path. Relative artifact paths are resolved
// against the directory of the file. The result is not validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data, resolving relative artifact paths against baseDir.
// Unknown keys are rejected.
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	for i := range cfg.Artifacts {
		p := cfg.Artifacts[i].Path
		if p != "" && !filepath.IsAbs(p) {
			cfg.Artifacts[i].Path = filepath.Join(baseDir, p)
		}
	}
	return cfg, nil
}

// Validate checks that every required field is set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// PackageArtifacts converts the declared artifacts, keeping their order.
func (c *Config) PackageArtifacts() []pkginfo.Artifact {
	out := make([]pkginfo.Artifact, 0, len(c.Artifacts))
	for _, a := range c.Artifacts {
		out = append(out, pkginfo.Artifact{
			Package: pkginfo.ArtifactPackage{Group: a.Group, Artifact: a.Artifact, Version: a.Version},
			Path:    a.Path,
		})
	}
	return out
}

// ParseArtifact parses "group:artifact:version=path".
func ParseArtifact(s string) (Artifact, error) {
	coords, path, ok := strings.Cut(s, "=")
	parts := strings.Split(coords, ":")
	if !ok || len(parts) != 3 {
		return Artifact{}, fmt.Errorf("%w: artifact %q is not group:artifact:version=path", ErrInvalid, s)
	}
	a := Artifact{Group: parts[0], Artifact: parts[1], Version: parts[2], Path: path}
	if err := validate.Struct(a); err != nil {
		return Artifact{}, fmt.Errorf("%w: artifact %q has empty fields", ErrInvalid, s)
	}
	return a, nil
}
