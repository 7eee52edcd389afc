package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"lantern/internal/config"
	"lantern/internal/content"
	"lantern/internal/discover"
	"lantern/internal/journal"
	"lantern/internal/live"
	"lantern/internal/manifest"
	"lantern/internal/store"
)

// Publisher walks a content tree and drives the store clients.
type Publisher struct {
	cfg      *config.Config
	objects  store.ObjectStore
	registry store.LiveRegistry
	logger   *slog.Logger
	journal  *journal.Journal
	now      func() time.Time
	dryRun   bool
}

// Option customizes publisher construction.
type Option func(*Publisher)

// WithJournal attaches a run-history journal.
func WithJournal(j *journal.Journal) Option {
	return func(p *Publisher) { p.journal = j }
}

// WithClock injects the time source used for updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// New constructs a publisher. dryRun must match the mode the store clients
// were built with; it only affects reporting here, the clients suppress
// their own writes.
func New(cfg *config.Config, objects store.ObjectStore, registry store.LiveRegistry, dryRun bool, logger *slog.Logger, opts ...Option) *Publisher {
	p := &Publisher{
		cfg:      cfg,
		objects:  objects,
		registry: registry,
		logger:   logger,
		now:      time.Now,
		dryRun:   dryRun,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result summarizes one publish run.
type Result struct {
	RunID      string
	DryRun     bool
	Units      int
	Episodes   int
	Activities int
	Skipped    int
	Warnings   []string
	Duration   time.Duration
}

// Run publishes the whole tree. Guarded skips are counted, not errors; the
// first store or discovery failure aborts the run. The journal, when
// attached, records the run either way.
func (p *Publisher) Run(ctx context.Context) (*Result, error) {
	started := p.now()
	result := &Result{RunID: uuid.NewString(), DryRun: p.dryRun}
	var entities []journal.Entity

	p.logger.Info("publish run starting",
		slog.String("run", result.RunID),
		slog.String("root", p.cfg.Content.RootDir),
		slog.Bool("dryRun", p.dryRun))

	runErr := p.publishTree(ctx, result, &entities)

	finished := p.now()
	result.Duration = finished.Sub(started)

	if p.journal != nil {
		status := "completed"
		var errText string
		if runErr != nil {
			status = "failed"
			errText = runErr.Error()
		}
		record := journal.Run{
			ID:         result.RunID,
			StartedAt:  started,
			FinishedAt: finished,
			Root:       p.cfg.Content.RootDir,
			DryRun:     p.dryRun,
			Status:     status,
			Error:      errText,
			Units:      result.Units,
			Episodes:   result.Episodes,
			Activities: result.Activities,
			Skipped:    result.Skipped,
			Warnings:   len(result.Warnings),
		}
		if err := p.journal.RecordRun(ctx, record, entities); err != nil {
			p.logger.Warn("journal write failed", slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		return result, runErr
	}

	p.logger.Info("publish run complete",
		slog.String("run", result.RunID),
		slog.Int("units", result.Units),
		slog.Int("episodes", result.Episodes),
		slog.Int("activities", result.Activities),
		slog.Int("skipped", result.Skipped),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (p *Publisher) publishTree(ctx context.Context, result *Result, entities *[]journal.Entity) error {
	root := p.cfg.Content.RootDir
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("content root %s: %w", root, err)
	}

	unitDirs, err := discover.ListUnitDirs(root)
	if err != nil {
		return err
	}

	for _, unitDir := range unitDirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.publishUnit(ctx, unitDir, result, entities); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) publishUnit(ctx context.Context, unitDir string, result *Result, entities *[]journal.Entity) error {
	unitName := filepath.Base(unitDir)

	docPath, err := discover.FindUnitDocument(unitDir)
	if err != nil {
		return err
	}
	unit, err := content.LoadUnitDoc(docPath, unitName)
	if err != nil {
		return err
	}
	if err := content.ValidateID(unit.ID); err != nil {
		return fmt.Errorf("unit %s: %w", unitName, err)
	}

	hasEpisodes, err := discover.HasEpisodesDir(unitDir)
	if err != nil {
		return err
	}
	episodeDirs, err := discover.ListEpisodeDirs(unitDir)
	if err != nil {
		return err
	}

	// The unit record lists episodes by directory name: it reflects the
	// structural layout, not the (not yet loaded) episode documents.
	for _, episodeDir := range episodeDirs {
		episodeName := filepath.Base(episodeDir)
		fqID, err := content.FQID(unit.ID, episodeName)
		if err != nil {
			return fmt.Errorf("unit %s: %w", unit.ID, err)
		}
		unit.EpisodeIDs = append(unit.EpisodeIDs, episodeName)
		unit.EpisodeFqIDs = append(unit.EpisodeFqIDs, fqID)
	}

	record := live.NewUnitRecord(unit, p.now().Unix())
	outcome, err := p.registry.PutLive(ctx, record, false)
	if err != nil {
		return fmt.Errorf("unit %s: %w", unit.ID, err)
	}
	result.Units++
	*entities = append(*entities, journal.Entity{Kind: live.KindUnit, Key: record.Key().PK, Outcome: outcome.String()})

	if !hasEpisodes {
		warning := fmt.Sprintf("unit %s has no episodes directory", unit.ID)
		result.Warnings = append(result.Warnings, warning)
		p.logger.Warn("no episodes directory", slog.String("unit", unit.ID))
		return nil
	}

	for _, episodeDir := range episodeDirs {
		if err := p.publishEpisode(ctx, unit.ID, episodeDir, result, entities); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) publishEpisode(ctx context.Context, unitID, episodeDir string, result *Result, entities *[]journal.Entity) error {
	episodeName := filepath.Base(episodeDir)

	docPath, err := discover.FindEpisodeDocument(episodeDir)
	if err != nil {
		return err
	}
	episode, err := content.LoadEpisodeDoc(docPath, episodeName)
	if err != nil {
		return err
	}
	episode.UnitID = unitID
	if err := content.ValidateID(episode.ID); err != nil {
		return fmt.Errorf("episode %s: %w", episodeName, err)
	}

	activityPaths, err := discover.ListActivityDocuments(episodeDir)
	if err != nil {
		return err
	}
	for _, activityPath := range activityPaths {
		stem := discover.Stem(activityPath)
		fqID, err := content.FQID(unitID, episode.ID, stem)
		if err != nil {
			return fmt.Errorf("episode %s: %w", episode.ID, err)
		}
		episode.ActivityIDs = append(episode.ActivityIDs, stem)
		episode.ActivityFqIDs = append(episode.ActivityFqIDs, fqID)
	}

	record := live.NewEpisodeRecord(episode, p.now().Unix())
	outcome, err := p.registry.PutLive(ctx, record, false)
	if err != nil {
		return fmt.Errorf("episode %s: %w", episode.ID, err)
	}
	result.Episodes++
	*entities = append(*entities, journal.Entity{Kind: live.KindEpisode, Key: record.Key().PK, Outcome: outcome.String()})

	for _, activityPath := range activityPaths {
		if err := p.publishActivity(ctx, unitID, episode.ID, activityPath, result, entities); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) publishActivity(ctx context.Context, unitID, episodeID, activityPath string, result *Result, entities *[]journal.Entity) error {
	activity, err := content.LoadActivityDoc(activityPath, discover.Stem(activityPath))
	if err != nil {
		return err
	}

	built, err := manifest.Build(unitID, episodeID, activity)
	if err != nil {
		return fmt.Errorf("activity %s: %w", activityPath, err)
	}
	hash, err := manifest.ContentHash(built)
	if err != nil {
		return err
	}
	key := manifest.StorageKey(p.cfg.Storage.KeyPrefix, built, hash)

	if err := p.objects.PutImmutable(ctx, key, built); err != nil {
		return err
	}

	fqID, err := content.FQID(unitID, episodeID, activity.ID)
	if err != nil {
		return fmt.Errorf("activity %s: %w", activity.ID, err)
	}
	record := live.NewActivityRecord(unitID, episodeID, activity, fqID, p.objects.URI(key), p.now().Unix())

	outcome, err := p.registry.PutLive(ctx, record, true)
	if err != nil {
		return fmt.Errorf("activity %s: %w", fqID, err)
	}
	if outcome == store.OutcomeSkipped {
		result.Skipped++
	} else {
		result.Activities++
	}
	*entities = append(*entities, journal.Entity{Kind: live.KindActivity, Key: record.Key().PK, Outcome: outcome.String()})
	return nil
}
