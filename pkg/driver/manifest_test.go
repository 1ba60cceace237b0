package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestFileName)
	writeFile(t, path, `
name: demo
version: 0.1.0
authors:
  - Ada
  - "  "
targets:
  zeta:
    main: scripts/zeta.delta
  alpha: alpha.delta
log_level: debug
`)

	manifest, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, "demo", manifest.Name)
	require.Equal(t, "0.1.0", manifest.Version)
	require.Equal(t, []string{"Ada"}, manifest.Authors)
	require.Equal(t, "debug", manifest.LogLevel)
	require.Equal(t, []string{"zeta", "alpha"}, manifest.TargetOrder)
	require.Equal(t, "alpha.delta", manifest.Targets["alpha"].Main)

	def, err := manifest.DefaultTarget()
	require.NoError(t, err)
	require.Equal(t, "zeta", def.Name)

	main, err := manifest.ResolveMain(def)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "scripts", "zeta.delta"), main)
}

func TestLoadManifestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, `
version: 1.0.0
log_level: loud
targets:
  app:
    main: ""
`)

	_, err := LoadManifest(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Equal(t, []string{
		"name must be provided",
		`log_level "loud" is not a valid level`,
		`target "app" requires a main entrypoint`,
	}, verr.Issues)
	require.Contains(t, err.Error(), "manifest validation failed:\n- name must be provided")
}

func TestLoadManifestDuplicateTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, "name: demo\ntargets:\n  app: a.delta\n  app: b.delta\n")

	_, err := LoadManifest(path)
	require.Error(t, err)
}

func TestLoadManifestUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, "name: demo\ndependencies: {}\n")

	_, err := LoadManifest(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest: parse")
}

func TestLoadManifestEmptyAndMissing(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, ManifestFileName)
	writeFile(t, empty, "")

	_, err := LoadManifest(empty)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is empty")

	_, err = LoadManifest(filepath.Join(dir, "missing", ManifestFileName))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), "name: demo\n")
	child := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(child, 0o755))

	found, err := FindManifest(child)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ManifestFileName), found)

	script := filepath.Join(child, "main.delta")
	writeFile(t, script, "print 1;")
	found, err = FindManifest(script)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ManifestFileName), found)
}

func TestFindManifestNotFound(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	require.True(t, errors.Is(err, ErrManifestNotFound), "got %v", err)
}

func TestFindTarget(t *testing.T) {
	manifest := &Manifest{
		Targets: map[string]*TargetSpec{
			"App": {Name: "App", Main: "app.delta"},
		},
		TargetOrder: []string{"App"},
	}

	target, ok := manifest.FindTarget("app")
	require.True(t, ok)
	require.Equal(t, "App", target.Name)

	_, ok = manifest.FindTarget("other")
	require.False(t, ok)

	var none *Manifest
	_, err := none.DefaultTarget()
	require.ErrorIs(t, err, ErrNoTargets)
}
