// Package cleaner orchestrates a cleaning run: purge compatibility-layer
// launchers, hide duplicate launchers, dedupe association lists and refresh
// the caches.
package cleaner

import (
	"fmt"

	"desktopclean/internal/caches"
	"desktopclean/internal/config"
	"desktopclean/internal/logging"
	"desktopclean/internal/mimeapps"
	"desktopclean/internal/models"
	"desktopclean/internal/purge"
	"desktopclean/internal/resolver"
	"desktopclean/internal/scanner"
)

// Cleaner runs the cleaning stages against one configuration.
// A Cleaner is not safe for concurrent use.
type Cleaner struct {
	cfg    *config.Config
	logger logging.Logger
	runner caches.Runner

	stats    models.RunStatistics
	report   *Report
	excluded map[string]bool // Launcher files purged this run
}

// Option configures a Cleaner
type Option func(*Cleaner)

// WithRunner sets the runner used for the cache indexers
func WithRunner(r caches.Runner) Option {
	return func(c *Cleaner) {
		c.runner = r
	}
}

// New creates a new Cleaner. The configuration is validated and the user
// launcher directory is created unless in dry run.
func New(cfg *config.Config, logger logging.Logger, opts ...Option) (*Cleaner, error) {
	if logger == nil {
		logger = logging.Discard
	}
	if err := cfg.Validate(); err != nil {
		return nil, newRunError(StageSetup, err)
	}
	if !cfg.DryRun {
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, newRunError(StageSetup, fmt.Errorf("failed to create %s: %w", cfg.UserDir, err))
		}
	}

	c := &Cleaner{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c, nil
}

// Config returns the configuration the cleaner runs with
func (c *Cleaner) Config() *config.Config {
	return c.cfg
}

func (c *Cleaner) reset() {
	c.stats = models.RunStatistics{}
	c.report = &Report{DryRun: c.cfg.DryRun}
	c.excluded = map[string]bool{}
}

// PurgeCompatFiles removes Wine-generated launchers from the user directory
// and returns the number of files removed
func (c *Cleaner) PurgeCompatFiles() int {
	c.logger.Infof("Removing Wine duplicate files...")

	result := purge.New(c.cfg.UserDir, c.cfg.DryRun, c.logger).Run()
	for path := range result.Excluded() {
		c.excluded[path] = true
	}

	c.stats.WineFilesRemoved = result.Count
	c.report.Actions = append(c.report.Actions, result.Actions...)
	if result.Failed > 0 {
		c.warn("%d Wine files could not be removed", result.Failed)
	}

	c.logger.Infof("Removed %d Wine-related files", result.Count)
	return result.Count
}

// FindDuplicates scans both launcher directories and returns the display
// names shared by more than one visible application
func (c *Cleaner) FindDuplicates() []models.DuplicateGroup {
	c.logger.Infof("Finding duplicate applications...")

	idx := scanner.New(c.cfg, c.logger).Scan(c.excluded)
	c.logger.Debugf("Read %d launcher files", idx.Scanned())
	if idx.Failed() > 0 {
		c.warn("%d launcher files could not be read", idx.Failed())
	}

	groups := idx.Duplicates()
	c.report.Duplicates = groups

	c.logger.Infof("Found %d applications with duplicates", len(groups))
	return groups
}

// ResolveDuplicates hides every duplicate but one per group and returns the
// number hidden
func (c *Cleaner) ResolveDuplicates(groups []models.DuplicateGroup) int {
	c.logger.Infof("Hiding duplicate applications...")

	result := resolver.New(c.cfg, c.logger).Resolve(groups)

	c.stats.DuplicatesHidden = result.Hidden
	c.report.Actions = append(c.report.Actions, result.Actions...)
	c.report.Changes = append(c.report.Changes, result.Changes...)
	if result.Failed > 0 {
		c.warn("%d duplicates could not be hidden", result.Failed)
	}
	if result.Skipped > 0 {
		c.warn("%d launchers outside the configured directories were skipped", result.Skipped)
	}

	c.logger.Infof("Hidden %d duplicate applications", result.Hidden)
	return result.Hidden
}

// DedupeAssociations cleans the association files and returns the number
// of files processed. The error joins every per-file failure.
func (c *Cleaner) DedupeAssociations() (int, error) {
	c.logger.Infof("Cleaning MIME association duplicates...")

	result, err := mimeapps.New(c.cfg, c.logger).Run()

	c.stats.MimeDuplicatesCleaned = result.FilesCleaned()
	c.stats.BackupsCreated += result.BackupsCreated()
	c.report.Actions = append(c.report.Actions, result.Actions...)
	c.report.Changes = append(c.report.Changes, result.Changes...)

	c.logger.Infof("Cleaned %d MIME files", result.FilesCleaned())
	return result.FilesCleaned(), err
}

// RefreshCaches runs the desktop and MIME database indexers. It does nothing
// in dry run or when disabled. Failures are warnings.
func (c *Cleaner) RefreshCaches() []error {
	if c.cfg.DryRun || !c.cfg.RefreshCaches {
		return nil
	}

	c.logger.Infof("Updating system caches...")

	errs := caches.New(c.cfg, c.runner, c.logger).Refresh()
	for _, err := range errs {
		c.report.Warnings = append(c.report.Warnings, err.Error())
	}
	return errs
}

// Run executes every stage in order and returns the statistics. A stage
// failure stops the run and is returned as a *RunError; statistics of the
// completed stages are kept.
func (c *Cleaner) Run() (models.RunStatistics, error) {
	c.reset()
	c.logger.Infof("Starting desktop application duplicate cleanup...")
	if c.cfg.DryRun {
		c.logger.Infof("DRY RUN MODE - No changes will be made")
	}

	c.PurgeCompatFiles()

	groups := c.FindDuplicates()
	c.ResolveDuplicates(groups)

	if _, err := c.DedupeAssociations(); err != nil {
		// A file that could not be backed up is skipped, the run goes on
		if !onlyBackupFailures(err) {
			c.logger.Errorf("Cleanup failed: %v", err)
			c.report.Statistics = c.stats
			return c.stats, newRunError(StageAssociations, err)
		}
		c.warn("%v", err)
	}

	c.RefreshCaches()

	c.report.Statistics = c.stats
	return c.stats, nil
}

// Statistics returns a copy of the counters of the last run
func (c *Cleaner) Statistics() models.RunStatistics {
	return c.stats
}

// Report returns the report of the last run
func (c *Cleaner) Report() *Report {
	r := *c.report
	r.Statistics = c.stats
	return &r
}

// Plan runs every stage against a dry-run copy of the configuration and
// returns what a real run would do. Nothing is written.
func (c *Cleaner) Plan() (*Report, error) {
	dry, err := New(c.cfg.WithDryRun(true), logging.Discard, WithRunner(c.runner))
	if err != nil {
		return nil, err
	}
	if _, err := dry.Run(); err != nil {
		return dry.Report(), err
	}
	return dry.Report(), nil
}

func (c *Cleaner) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.logger.Warnf("%s", msg)
	c.report.Warnings = append(c.report.Warnings, msg)
}
