package interpreter

import (
	"path/filepath"
	"testing"
)

func TestFixtures(t *testing.T) {
	root := filepath.Join("testdata", "fixtures")
	count := 0
	walkFixtures(t, root, func(dir string) {
		count++
		name, _ := filepath.Rel(root, dir)
		t.Run(filepath.ToSlash(name), func(t *testing.T) {
			runFixture(t, dir)
		})
	})
	if count == 0 {
		t.Fatalf("no fixtures found under %s", root)
	}
}
