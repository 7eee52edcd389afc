package content

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// UnitDoc is the on-disk definition document for a unit.
type UnitDoc struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// EpisodeDoc is the on-disk definition document for an episode.
type EpisodeDoc struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// ActivityDoc is the on-disk definition document for an activity. Version is
// declared as an untyped field so loosely-written documents ("version: \"2\"")
// still coerce; normalization resolves it to an int exactly once.
type ActivityDoc struct {
	ID        string     `yaml:"id"`
	Title     string     `yaml:"title"`
	Version   any        `yaml:"version"`
	Locale    string     `yaml:"locale"`
	Questions []Question `yaml:"questions"`
}

// LoadUnitDoc reads and normalizes a unit document. The defaultID (the unit
// directory name) substitutes for a missing id field.
func LoadUnitDoc(path, defaultID string) (Unit, error) {
	var doc UnitDoc
	if err := decodeDocument(path, &doc); err != nil {
		return Unit{}, err
	}
	unit := Unit{
		ID:      doc.ID,
		Title:   doc.Title,
		Content: doc.Content,
	}
	if unit.ID == "" {
		unit.ID = defaultID
	}
	if unit.Title == "" {
		unit.Title = unit.ID
	}
	return unit, nil
}

// LoadEpisodeDoc reads and normalizes an episode document. The defaultID (the
// episode directory name) substitutes for a missing id field.
func LoadEpisodeDoc(path, defaultID string) (Episode, error) {
	var doc EpisodeDoc
	if err := decodeDocument(path, &doc); err != nil {
		return Episode{}, err
	}
	episode := Episode{
		ID:    doc.ID,
		Title: doc.Title,
	}
	if episode.ID == "" {
		episode.ID = defaultID
	}
	if episode.Title == "" {
		episode.Title = episode.ID
	}
	return episode, nil
}

// LoadActivityDoc reads and normalizes an activity document. The defaultID
// (the document file stem) substitutes for a missing id field.
func LoadActivityDoc(path, defaultID string) (Activity, error) {
	var doc ActivityDoc
	if err := decodeDocument(path, &doc); err != nil {
		return Activity{}, err
	}

	version, err := coerceVersion(doc.Version)
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s: %w", path, err)
	}

	activity := Activity{
		ID:        doc.ID,
		Title:     doc.Title,
		Version:   version,
		Locale:    canonicalLocale(doc.Locale),
		Questions: doc.Questions,
	}
	if activity.ID == "" {
		activity.ID = defaultID
	}
	if activity.Title == "" {
		activity.Title = activity.ID
	}
	if activity.Questions == nil {
		activity.Questions = []Question{}
	}
	return activity, nil
}

func decodeDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse document %s: %w", path, err)
	}
	return nil
}

// coerceVersion resolves the loosely-typed version field to a positive
// integer, defaulting to 1 when absent.
func coerceVersion(raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 1, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("version %q is not an integer", v)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("version has unsupported type %T", raw)
	}
}

// canonicalLocale normalizes parseable BCP 47 tags ("en-us" becomes "en-US").
// Unparseable values pass through verbatim; validation is not this layer's
// job.
func canonicalLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return tag.String()
}
