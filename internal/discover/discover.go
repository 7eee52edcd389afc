package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound marks a required definition document that is absent from the
// tree. Callers treat it as fatal for the whole run.
var ErrNotFound = errors.New("document not found")

const (
	unitDirPrefix     = "u_"
	episodeDirPrefix  = "e_"
	episodesDirName   = "episodes"
	activitiesDirName = "activities"
	activityPrefix    = "a_"
	documentExt       = ".yaml"
)

// EpisodesDir returns the conventional episode container path for a unit.
func EpisodesDir(unitDir string) string {
	return filepath.Join(unitDir, episodesDirName)
}

// HasEpisodesDir reports whether a unit has an episode container at all. A
// unit without one is publishable but warned about.
func HasEpisodesDir(unitDir string) (bool, error) {
	info, err := os.Stat(EpisodesDir(unitDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", EpisodesDir(unitDir), err)
	}
	return info.IsDir(), nil
}

// ListUnitDirs enumerates u_* unit directories under root in lexicographic
// order. A missing root is an error; a root with no units is not.
func ListUnitDirs(root string) ([]string, error) {
	dirs, err := listPrefixedDirs(root, unitDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("list units under %s: %w", root, err)
	}
	return dirs, nil
}

// ListEpisodeDirs enumerates e_* episode directories under a unit's episode
// container. A missing container yields an empty slice and no error; the
// orchestrator decides whether that deserves a warning.
func ListEpisodeDirs(unitDir string) ([]string, error) {
	episodesDir := EpisodesDir(unitDir)
	if _, err := os.Stat(episodesDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", episodesDir, err)
	}
	dirs, err := listPrefixedDirs(episodesDir, episodeDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("list episodes under %s: %w", episodesDir, err)
	}
	return dirs, nil
}

// FindUnitDocument locates a unit's definition document: <dir>/<name>.yaml
// inside the unit directory, else a sibling <name>.yaml beside it.
func FindUnitDocument(unitDir string) (string, error) {
	name := filepath.Base(unitDir) + documentExt
	inside := filepath.Join(unitDir, name)
	if fileExists(inside) {
		return inside, nil
	}
	sibling := filepath.Join(filepath.Dir(unitDir), name)
	if fileExists(sibling) {
		return sibling, nil
	}
	return "", fmt.Errorf("unit document for %s: %w", filepath.Base(unitDir), ErrNotFound)
}

// FindEpisodeDocument locates an episode's definition document, which must
// live inside the episode directory.
func FindEpisodeDocument(episodeDir string) (string, error) {
	path := filepath.Join(episodeDir, filepath.Base(episodeDir)+documentExt)
	if fileExists(path) {
		return path, nil
	}
	return "", fmt.Errorf("episode document %s: %w", path, ErrNotFound)
}

// ListActivityDocuments enumerates a_*.yaml files in the episode's activity
// container, sorted by path. An absent container is an empty episode, not an
// error.
func ListActivityDocuments(episodeDir string) ([]string, error) {
	activitiesDir := filepath.Join(episodeDir, activitiesDirName)
	entries, err := os.ReadDir(activitiesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", activitiesDir, err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, activityPrefix) && strings.HasSuffix(name, documentExt) {
			docs = append(docs, filepath.Join(activitiesDir, name))
		}
	}
	sort.Strings(docs)
	return docs, nil
}

// Stem returns a document's file name without its extension, used as the
// fallback local id.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func listPrefixedDirs(parent, prefix string) ([]string, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			dirs = append(dirs, filepath.Join(parent, entry.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
