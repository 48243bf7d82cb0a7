// Package caches refreshes the desktop and MIME databases after launcher
// files change.
package caches

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"desktopclean/internal/config"
	"desktopclean/internal/logging"
)

// ErrNotInstalled is returned when an indexer is not on PATH
var ErrNotInstalled = errors.New("command not found in PATH")

// Runner executes an external command
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run runs the command and waits for it. A non-zero exit includes the
// command's output in the error.
func (ExecRunner) Run(name string, args ...string) error {
	if !isCommandAvailable(name) {
		return fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}

	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// isCommandAvailable checks if a command exists in PATH
func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Command is one indexer invocation
type Command struct {
	Name string
	Args []string
}

// String returns the command line
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Refresher runs the cache indexers for the user directories
type Refresher struct {
	cfg    *config.Config
	runner Runner
	logger logging.Logger
}

// New creates a new Refresher. A nil runner uses ExecRunner.
func New(cfg *config.Config, runner Runner, logger logging.Logger) *Refresher {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = logging.Discard
	}
	return &Refresher{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}
}

// Commands returns the indexer invocations for the current state of disk.
// The MIME database is only refreshed if its directory exists.
func (r *Refresher) Commands() []Command {
	commands := []Command{
		{Name: "update-desktop-database", Args: []string{r.cfg.UserDir}},
	}
	if info, err := os.Stat(r.cfg.MimeDir); err == nil && info.IsDir() {
		commands = append(commands, Command{Name: "update-mime-database", Args: []string{r.cfg.MimeDir}})
	}
	return commands
}

// Refresh runs every indexer. Failures are logged as warnings and returned;
// they never stop the other indexers.
func (r *Refresher) Refresh() []error {
	var errs []error
	for _, c := range r.Commands() {
		r.logger.Debugf("Running %s", c)
		if err := r.runner.Run(c.Name, c.Args...); err != nil {
			r.logger.Warnf("Cache refresh failed: %v", err)
			errs = append(errs, err)
		}
	}
	return errs
}
