package live

import (
	"strings"

	"lantern/internal/content"
)

// SortKey is the fixed secondary key shared by every live record.
const SortKey = "LIVE"

// Entity kind markers used in partition keys and entityType attributes.
const (
	KindUnit     = "UNIT"
	KindEpisode  = "EPISODE"
	KindActivity = "ACTIVITY"
)

// Key is the composite registry key addressing one live record.
type Key struct {
	PK string
	SK string
}

// Record is implemented by every live record kind.
type Record interface {
	Key() Key
	EntityType() string
}

// Versioned is implemented by records subject to the version guard.
type Versioned interface {
	LiveVersion() int
}

// UnitRecord is the live pointer for a unit. It lists the unit's episodes in
// structural order and is always overwritten on publish.
type UnitRecord struct {
	UnitID       string   `dynamodbav:"-" json:"-"`
	Type         string   `dynamodbav:"entityType" json:"entityType"`
	Title        string   `dynamodbav:"title" json:"title"`
	Content      string   `dynamodbav:"content" json:"content"`
	EpisodeIDs   []string `dynamodbav:"episodeIds" json:"episodeIds"`
	EpisodeFqIDs []string `dynamodbav:"episodeFqIds" json:"episodeFqIds"`
	UpdatedAt    int64    `dynamodbav:"updatedAt" json:"updatedAt"`
}

// NewUnitRecord builds a unit live record from a normalized unit.
func NewUnitRecord(unit content.Unit, updatedAt int64) UnitRecord {
	return UnitRecord{
		UnitID:       unit.ID,
		Type:         KindUnit + "_LIVE",
		Title:        unit.Title,
		Content:      unit.Content,
		EpisodeIDs:   emptyIfNil(unit.EpisodeIDs),
		EpisodeFqIDs: emptyIfNil(unit.EpisodeFqIDs),
		UpdatedAt:    updatedAt,
	}
}

func (r UnitRecord) Key() Key {
	return Key{PK: compositePK(KindUnit, r.UnitID), SK: SortKey}
}

func (r UnitRecord) EntityType() string { return r.Type }

// EpisodeRecord is the live pointer for an episode, keyed hierarchically
// under its owning unit.
type EpisodeRecord struct {
	UnitID        string   `dynamodbav:"unitId" json:"unitId"`
	EpisodeID     string   `dynamodbav:"episodeId" json:"episodeId"`
	Type          string   `dynamodbav:"entityType" json:"entityType"`
	Title         string   `dynamodbav:"title" json:"title"`
	ActivityIDs   []string `dynamodbav:"activityIds" json:"activityIds"`
	ActivityFqIDs []string `dynamodbav:"activityFqIds" json:"activityFqIds"`
	UpdatedAt     int64    `dynamodbav:"updatedAt" json:"updatedAt"`
}

// NewEpisodeRecord builds an episode live record from a normalized episode.
func NewEpisodeRecord(episode content.Episode, updatedAt int64) EpisodeRecord {
	return EpisodeRecord{
		UnitID:        episode.UnitID,
		EpisodeID:     episode.ID,
		Type:          KindEpisode + "_LIVE",
		Title:         episode.Title,
		ActivityIDs:   emptyIfNil(episode.ActivityIDs),
		ActivityFqIDs: emptyIfNil(episode.ActivityFqIDs),
		UpdatedAt:     updatedAt,
	}
}

func (r EpisodeRecord) Key() Key {
	return Key{PK: compositePK(KindEpisode, r.UnitID, r.EpisodeID), SK: SortKey}
}

func (r EpisodeRecord) EntityType() string { return r.Type }

// ActivityRecord is the live pointer for an activity. Version backs the
// registry's conditional-put guard and must never regress.
type ActivityRecord struct {
	UnitID         string `dynamodbav:"unitId" json:"unitId"`
	EpisodeID      string `dynamodbav:"episodeId" json:"episodeId"`
	ActivityID     string `dynamodbav:"activityId" json:"activityId"`
	ActivityFqID   string `dynamodbav:"activityFqId" json:"activityFqId"`
	Type           string `dynamodbav:"entityType" json:"entityType"`
	Title          string `dynamodbav:"title" json:"title"`
	Locale         string `dynamodbav:"locale" json:"locale"`
	ManifestKey    string `dynamodbav:"manifestS3Key" json:"manifestS3Key"`
	TotalQuestions int    `dynamodbav:"totalQuestions" json:"totalQuestions"`
	Version        int    `dynamodbav:"version" json:"version"`
	UpdatedAt      int64  `dynamodbav:"updatedAt" json:"updatedAt"`
}

// NewActivityRecord builds an activity live record pointing at a stored
// manifest object.
func NewActivityRecord(unitID, episodeID string, activity content.Activity, fqID, manifestURI string, updatedAt int64) ActivityRecord {
	return ActivityRecord{
		UnitID:         unitID,
		EpisodeID:      episodeID,
		ActivityID:     activity.ID,
		ActivityFqID:   fqID,
		Type:           KindActivity + "_LIVE",
		Title:          activity.Title,
		Locale:         activity.Locale,
		ManifestKey:    manifestURI,
		TotalQuestions: len(activity.Questions),
		Version:        activity.Version,
		UpdatedAt:      updatedAt,
	}
}

func (r ActivityRecord) Key() Key {
	return Key{PK: compositePK(KindActivity, r.UnitID, r.EpisodeID, r.ActivityID), SK: SortKey}
}

func (r ActivityRecord) EntityType() string { return r.Type }

// LiveVersion exposes the guarded version attribute.
func (r ActivityRecord) LiveVersion() int { return r.Version }

func compositePK(kind string, ids ...string) string {
	return kind + content.Separator + strings.Join(ids, content.Separator)
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
