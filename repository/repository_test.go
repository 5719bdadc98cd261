package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProject_FindsPackageJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"demo"}`), 0o644))
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	file := filepath.Join(nested, "index.ts")
	require.NoError(t, os.WriteFile(file, []byte("export {};"), 0o644))

	d := New()
	project, err := d.DetectProject(file)
	require.NoError(t, err)
	assert.Equal(t, "node", project.Type)
	assert.Equal(t, root, project.RootPath)
}

func TestDetectProject_FindsGoModule(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/demo\n\ngo 1.21\n"), 0o644))

	d := New()
	project, err := d.DetectProject(root)
	require.NoError(t, err)
	assert.Equal(t, "go", project.Type)
	assert.Equal(t, "example.com/demo", project.Name)
	require.NotNil(t, project.GoModule)
}

func TestDetectProject_NoMarkerFound(t *testing.T) {
	root := t.TempDir()
	d := &Detector{markers: []string{"nonexistent.marker"}}
	project, err := d.DetectProject(root)
	require.NoError(t, err)
	assert.Equal(t, "unknown", project.Type)
}
