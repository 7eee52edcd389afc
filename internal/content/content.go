package content

import (
	"fmt"
	"strings"
)

// Separator joins ancestor local ids into fully-qualified identifiers and
// registry keys. Id components must never contain it.
const Separator = "#"

// DefaultLocale is applied to activities that do not declare a locale.
const DefaultLocale = "en-US"

// Question is an opaque structured payload carried through to manifests
// verbatim. The publisher never interprets question contents.
type Question = any

// Unit is the top level of the content hierarchy.
type Unit struct {
	ID           string
	Title        string
	Content      string
	EpisodeIDs   []string
	EpisodeFqIDs []string
}

// Episode groups activities under a unit.
type Episode struct {
	ID            string
	UnitID        string
	Title         string
	ActivityIDs   []string
	ActivityFqIDs []string
}

// Activity is the publishable leaf of the hierarchy.
type Activity struct {
	ID        string
	Title     string
	Version   int
	Locale    string
	Questions []Question
}

// ValidateID rejects id components that would corrupt composite keys.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if strings.Contains(id, Separator) {
		return fmt.Errorf("id %q must not contain separator %q", id, Separator)
	}
	return nil
}

// FQID chains local ids with the reserved separator, validating every
// component first.
func FQID(parts ...string) (string, error) {
	for _, part := range parts {
		if err := ValidateID(part); err != nil {
			return "", err
		}
	}
	return strings.Join(parts, Separator), nil
}
