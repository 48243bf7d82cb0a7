package scanner

import (
	"time"

	"desktopclean/internal/config"
	"desktopclean/internal/desktop"
	"desktopclean/internal/fsutil"
	"desktopclean/internal/logging"
	"desktopclean/internal/models"
)

// pattern matches launcher files inside a root
const pattern = "*.desktop"

// Scanner finds launcher files in the system and user roots and groups
// the visible applications by display name
type Scanner struct {
	cfg    *config.Config
	logger logging.Logger
}

// Index holds the candidate records of one scan, grouped by display name
type Index struct {
	order   []string
	byName  map[string][]models.LauncherRecord
	scanned int
	failed  int
}

// New creates a new Scanner
func New(cfg *config.Config, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.Discard
	}
	return &Scanner{
		cfg:    cfg,
		logger: logger,
	}
}

// Files returns every launcher file, system root first then user root.
// Each root's files are sorted; a missing root contributes nothing and an
// unreadable one is logged and skipped.
func (s *Scanner) Files() []string {
	var files []string
	for _, root := range []string{s.cfg.SystemDir, s.cfg.UserDir} {
		if root == "" {
			continue
		}
		matches, err := fsutil.Glob(root, pattern)
		if err != nil {
			s.logger.Warnf("Could not list %s: %v", root, err)
			continue
		}
		files = append(files, matches...)
	}
	return files
}

// Scan extracts every launcher file not in exclude, in order, and indexes
// the candidates. Files that cannot be read are logged and skipped.
func (s *Scanner) Scan(exclude map[string]bool) *Index {
	start := time.Now()
	idx := newIndex()

	for _, path := range s.Files() {
		if exclude[path] {
			s.logger.Debugf("Skipping %s (purged)", path)
			continue
		}

		rec, err := desktop.Extract(path)
		if err != nil {
			s.logger.Warnf("Could not read %s: %v", path, err)
			idx.failed++
			continue
		}
		rec.Role = s.cfg.Classify(path)

		idx.scanned++
		idx.add(rec)
	}

	s.logger.Debugf("Scanned %d launcher files in %v", idx.scanned, time.Since(start))
	return idx
}

func newIndex() *Index {
	return &Index{byName: make(map[string][]models.LauncherRecord)}
}

// add indexes rec if it takes part in duplicate grouping
func (idx *Index) add(rec models.LauncherRecord) {
	if !rec.IsCandidate() {
		return
	}
	if _, ok := idx.byName[rec.Name]; !ok {
		idx.order = append(idx.order, rec.Name)
	}
	idx.byName[rec.Name] = append(idx.byName[rec.Name], rec)
}

// Duplicates returns every name shared by two or more candidates, in the
// order the names were first seen
func (idx *Index) Duplicates() []models.DuplicateGroup {
	var groups []models.DuplicateGroup
	for _, name := range idx.order {
		records := idx.byName[name]
		if len(records) < 2 {
			continue
		}
		groups = append(groups, models.DuplicateGroup{
			Name:    name,
			Records: append([]models.LauncherRecord(nil), records...),
		})
	}
	return groups
}

// Lookup returns the candidates indexed under name
func (idx *Index) Lookup(name string) []models.LauncherRecord {
	return idx.byName[name]
}

// Names returns the number of distinct candidate names
func (idx *Index) Names() int {
	return len(idx.order)
}

// Scanned returns the number of files read successfully
func (idx *Index) Scanned() int {
	return idx.scanned
}

// Failed returns the number of files that could not be read
func (idx *Index) Failed() int {
	return idx.failed
}
