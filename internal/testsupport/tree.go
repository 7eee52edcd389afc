package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree builds content layouts under a temp root for discovery and publisher
// tests.
type Tree struct {
	t    testing.TB
	Root string
}

// NewTree creates an empty content root.
func NewTree(t testing.TB) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// AddUnit creates a unit directory with its definition document inside it.
func (tr *Tree) AddUnit(name, doc string) string {
	tr.t.Helper()
	unitDir := filepath.Join(tr.Root, name)
	tr.mkdir(unitDir)
	tr.write(filepath.Join(unitDir, name+".yaml"), doc)
	return unitDir
}

// AddUnitSiblingDoc creates a unit directory whose definition document sits
// beside it instead of inside it.
func (tr *Tree) AddUnitSiblingDoc(name, doc string) string {
	tr.t.Helper()
	unitDir := filepath.Join(tr.Root, name)
	tr.mkdir(unitDir)
	tr.write(filepath.Join(tr.Root, name+".yaml"), doc)
	return unitDir
}

// AddEpisode creates an episode directory (with document) under a unit.
func (tr *Tree) AddEpisode(unitDir, name, doc string) string {
	tr.t.Helper()
	episodeDir := filepath.Join(unitDir, "episodes", name)
	tr.mkdir(episodeDir)
	tr.write(filepath.Join(episodeDir, name+".yaml"), doc)
	return episodeDir
}

// AddActivity writes an activity document under an episode's activities
// directory.
func (tr *Tree) AddActivity(episodeDir, name, doc string) string {
	tr.t.Helper()
	activitiesDir := filepath.Join(episodeDir, "activities")
	tr.mkdir(activitiesDir)
	path := filepath.Join(activitiesDir, name+".yaml")
	tr.write(path, doc)
	return path
}

func (tr *Tree) mkdir(dir string) {
	tr.t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		tr.t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func (tr *Tree) write(path, data string) {
	tr.t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		tr.t.Fatalf("write %s: %v", path, err)
	}
}
