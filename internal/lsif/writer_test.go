package lsif

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tender-barbarian/classprov/internal/pkginfo"
)

func readElements(t *testing.T, buf *bytes.Buffer) []Element {
	t.Helper()
	var out []Element
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var e Element
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 100)

	pkgID, err := w.EmitPackageInformationVertex(pkginfo.ArtifactPackage{Group: "com.acme", Artifact: "widgets", Version: "1.0"})
	require.NoError(t, err)
	assert.Equal(t, 100, pkgID)

	jdkID, err := w.EmitPackageInformationVertex(pkginfo.RuntimePackage{Version: "11"})
	require.NoError(t, err)
	assert.Equal(t, 101, jdkID)

	require.NoError(t, w.EmitPackageInformationEdge(7, pkgID))
	assert.Equal(t, 103, w.NextID())

	assert.Equal(t, []Element{
		{ID: 100, Type: "vertex", Label: "packageInformation", Name: "com.acme:widgets", Manager: pkginfo.ManagerMaven, Version: "1.0"},
		{ID: 101, Type: "vertex", Label: "packageInformation", Name: "jdk", Manager: pkginfo.ManagerJDK, Version: "11"},
		{ID: 102, Type: "edge", Label: "packageInformation", OutV: ptr(7), InV: ptr(100)},
	}, readElements(t, &buf))
}

func ptr(v int) *int {
	return &v
}

func TestWriterZeroIDs(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)

	pkgID, err := w.EmitPackageInformationVertex(pkginfo.RuntimePackage{Version: "17"})
	require.NoError(t, err)
	require.Equal(t, 0, pkgID)
	require.NoError(t, w.EmitPackageInformationEdge(0, pkgID))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.NotContains(t, string(lines[0]), "outV")
	assert.JSONEq(t, `{"id":1,"type":"edge","label":"packageInformation","outV":0,"inV":0}`, string(lines[1]))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestWriterError(t *testing.T) {
	w := NewWriter(failingWriter{}, 1)

	_, err := w.EmitPackageInformationVertex(pkginfo.RuntimePackage{Version: "8"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "closed pipe")
	assert.Equal(t, 1, w.NextID())
}
