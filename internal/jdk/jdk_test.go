package jdk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tender-barbarian/classprov/internal/jartest"
	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		version string
		major   int
		legacy  bool
	}{
		{"1.8.0_292", 8, true},
		{"1.7.0_80", 7, true},
		{"1.8", 8, true},
		{"9", 9, false},
		{"11.0.2", 11, false},
		{"17-ea", 17, false},
		{"21+35", 21, false},
		{" 17.0.9 ", 17, false},
	}

	for _, tc := range tests {
		t.Run(tc.version, func(t *testing.T) {
			rt, err := Classify(tc.version)
			require.NoError(t, err)
			assert.Equal(t, tc.major, rt.Major())
			assert.Equal(t, tc.legacy, rt.IsLegacy())
		})
	}
}

func TestClassifyRejects(t *testing.T) {
	for _, v := range []string{"", "ea", "1.x", "0", "-11"} {
		t.Run(v, func(t *testing.T) {
			_, err := Classify(v)
			assert.ErrorIs(t, err, ErrVersion)
		})
	}
}

func TestRuntimePackage(t *testing.T) {
	legacy, err := Classify("1.8.0_292")
	require.NoError(t, err)
	assert.Equal(t, pkginfo.RuntimePackage{Version: "8"}, legacy.Package())

	modular, err := Classify("11.0.2")
	require.NoError(t, err)
	assert.Equal(t, pkginfo.RuntimePackage{Version: "11"}, modular.Package())
}

func TestBootClasspath(t *testing.T) {
	sep := string(os.PathListSeparator)
	props := map[string]string{
		"sun.boot.class.path":    strings.Join([]string{"/jdk/jre/lib/rt.jar", "/jdk/jre/lib/jce.jar", "", "/jdk/jre/classes"}, sep),
		"java.home":              "/jdk/jre",
		"custom.boot.class.path": strings.Join([]string{"/jdk/jre/lib/rt.jar", "/opt/extra.jar"}, sep),
		"sun.boot.library.path":  "/jdk/jre/lib/amd64",
	}

	assert.Equal(t, []string{
		"/jdk/jre/lib/rt.jar",
		"/opt/extra.jar",
		"/jdk/jre/lib/jce.jar",
		"/jdk/jre/classes",
	}, BootClasspath(props))
	assert.Empty(t, BootClasspath(nil))
}

func TestJmodImage(t *testing.T) {
	home := t.TempDir()
	jartest.WriteJmod(t, filepath.Join(home, "jmods"), "java.base.jmod", jmodMagic,
		"java/lang/String.class",
		"java/lang/String$CaseInsensitiveComparator.class",
		"java/util/List.class",
	)
	jartest.WriteJmod(t, filepath.Join(home, "jmods"), "java.sql.jmod", jmodMagic, "java/sql/Connection.class")
	require.NoError(t, os.WriteFile(filepath.Join(home, "jmods", "broken.jmod"), []byte("PK"), 0o600))
	jartest.Write(t, filepath.Join(home, "jmods"), "headerless.jmod", "classes/java/net/URL.class")

	img := NewJmodImage(home, zerolog.Nop())

	tests := []struct {
		classfile string
		want      bool
	}{
		{"java/lang/String.class", true},
		{"java/util/List.class", true},
		{"java/sql/Connection.class", true},
		{"java/lang/String$CaseInsensitiveComparator.class", false},
		{"module-info.class", true},
		{"com/acme/Widget.class", false},
		{"java/net/URL.class", false},
	}

	for _, tc := range tests {
		t.Run(tc.classfile, func(t *testing.T) {
			assert.Equal(t, tc.want, img.Contains(tc.classfile))
		})
	}
}

func TestJmodImageMissingHome(t *testing.T) {
	img := NewJmodImage(filepath.Join(t.TempDir(), "no-jdk"), zerolog.Nop())
	assert.False(t, img.Contains("java/lang/String.class"))
}

func TestImageFunc(t *testing.T) {
	var img RuntimeImage = ImageFunc(func(classfile string) bool {
		return strings.HasPrefix(classfile, "java/")
	})
	assert.True(t, img.Contains("java/lang/Object.class"))
	assert.False(t, img.Contains("com/acme/Widget.class"))
}
