package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

const sample = `
javaVersion: "1.8.0_292"
indexJdk: true
javaHome: /usr/lib/jvm/java-8
systemProperties:
  sun.boot.class.path: /usr/lib/jvm/java-8/jre/lib/rt.jar
artifacts:
  - group: com.acme
    artifact: widgets
    version: "1.0"
    path: libs/widgets.jar
  - group: com.acme
    artifact: gadgets
    version: "2.3"
    path: /opt/m2/gadgets-2.3.jar
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classprov.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, &Config{
		JavaVersion: "1.8.0_292",
		IndexJDK:    true,
		JavaHome:    "/usr/lib/jvm/java-8",
		SystemProperties: map[string]string{
			"sun.boot.class.path": "/usr/lib/jvm/java-8/jre/lib/rt.jar",
		},
		Artifacts: []Artifact{
			{Group: "com.acme", Artifact: "widgets", Version: "1.0", Path: filepath.Join(dir, "libs/widgets.jar")},
			{Group: "com.acme", Artifact: "gadgets", Version: "2.3", Path: "/opt/m2/gadgets-2.3.jar"},
		},
	}, cfg)

	assert.Equal(t, []pkginfo.Artifact{
		{Package: pkginfo.ArtifactPackage{Group: "com.acme", Artifact: "widgets", Version: "1.0"}, Path: filepath.Join(dir, "libs/widgets.jar")},
		{Package: pkginfo.ArtifactPackage{Group: "com.acme", Artifact: "gadgets", Version: "2.3"}, Path: "/opt/m2/gadgets-2.3.jar"},
	}, cfg.PackageArtifacts())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("javaVersion: \"11\"\nindexJDK: true\n"), 0o600))

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")

	_, err = Load(unknown)
	assert.ErrorContains(t, err, "indexJDK")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil, ".")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{JavaVersion: "17", Artifacts: []Artifact{{Group: "g", Artifact: "a", Version: "1", Path: "a.jar"}}},
		},
		{
			name:    "missing java version",
			cfg:     Config{},
			wantErr: "Config.JavaVersion is required",
		},
		{
			name:    "artifact without version",
			cfg:     Config{JavaVersion: "17", Artifacts: []Artifact{{Group: "g", Artifact: "a", Path: "a.jar"}}},
			wantErr: "Config.Artifacts[0].Version is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseArtifact(t *testing.T) {
	tests := []struct {
		input   string
		want    Artifact
		wantErr bool
	}{
		{input: "com.acme:widgets:1.0=libs/widgets.jar", want: Artifact{Group: "com.acme", Artifact: "widgets", Version: "1.0", Path: "libs/widgets.jar"}},
		{input: "com.acme:widgets:1.0", wantErr: true},
		{input: "com.acme:widgets=libs/widgets.jar", wantErr: true},
		{input: "com.acme::1.0=libs/widgets.jar", wantErr: true},
		{input: "com.acme:widgets:1.0=", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseArtifact(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
