package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"lantern/internal/content"
)

// hashLength is the number of hex characters kept from the sha256 digest.
const hashLength = 16

// Manifest is an immutable snapshot of one activity version. Field names
// match the published JSON schema clients consume.
type Manifest struct {
	UnitID       string             `json:"unitId"`
	EpisodeID    string             `json:"episodeId"`
	ActivityID   string             `json:"activityId"`
	ActivityFqID string             `json:"activityFqId"`
	Title        string             `json:"title"`
	Version      int                `json:"version"`
	Locale       string             `json:"locale"`
	Total        int                `json:"total"`
	Questions    []content.Question `json:"questions"`
}

// Build composes a manifest from a normalized activity. The fully-qualified
// id uses the slash-joined display form inside the manifest body; registry
// keys use the reserved separator instead.
func Build(unitID, episodeID string, activity content.Activity) (Manifest, error) {
	for _, id := range []string{unitID, episodeID, activity.ID} {
		if err := content.ValidateID(id); err != nil {
			return Manifest{}, err
		}
	}
	questions := activity.Questions
	if questions == nil {
		questions = []content.Question{}
	}
	return Manifest{
		UnitID:       unitID,
		EpisodeID:    episodeID,
		ActivityID:   activity.ID,
		ActivityFqID: strings.Join([]string{unitID, episodeID, activity.ID}, "/"),
		Title:        activity.Title,
		Version:      activity.Version,
		Locale:       activity.Locale,
		Total:        len(questions),
		Questions:    questions,
	}, nil
}

// ContentHash digests the manifest's canonical serialization and truncates
// to a short hex prefix.
func ContentHash(m Manifest) (string, error) {
	data, err := json.Marshal(canonical(m))
	if err != nil {
		return "", fmt.Errorf("canonicalize manifest %s: %w", m.ActivityFqID, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:hashLength], nil
}

// StorageKey derives the immutable object key for a manifest and its hash.
func StorageKey(prefix string, m Manifest, hash string) string {
	return fmt.Sprintf("%s/%s/%s/%s/v%d/manifest-%s.json",
		strings.Trim(prefix, "/"), m.UnitID, m.EpisodeID, m.ActivityID, m.Version, hash)
}

// canonical rebuilds the manifest as a map so encoding/json emits keys in
// sorted order, making the digest independent of struct field order.
func canonical(m Manifest) map[string]any {
	return map[string]any{
		"unitId":       m.UnitID,
		"episodeId":    m.EpisodeID,
		"activityId":   m.ActivityID,
		"activityFqId": m.ActivityFqID,
		"title":        m.Title,
		"version":      m.Version,
		"locale":       m.Locale,
		"total":        m.Total,
		"questions":    m.Questions,
	}
}
