package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"desktopclean/internal/backup"
	"desktopclean/internal/cleaner"
	"desktopclean/internal/config"
	"desktopclean/internal/logging"
	"desktopclean/internal/models"
	"desktopclean/internal/preview"
	"desktopclean/internal/ui"
	"desktopclean/internal/ui/components"
	"desktopclean/internal/watch"

	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"golang.org/x/term"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// options holds the parsed command line
type options struct {
	dryRun    bool
	verbose   bool
	auto      bool
	diff      bool
	json      bool
	watch     bool
	restore   bool
	version   bool
	update    bool
	help      bool
	config    string
	systemDir string
	userDir   string
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("desktopclean", pflag.ContinueOnError)
	fs.SortFlags = false

	fs.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show what would be done without making changes")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	fs.BoolVarP(&opts.auto, "auto", "y", false, "Run without asking for confirmation")
	fs.BoolVarP(&opts.diff, "diff", "d", false, "Print the file changes as a unified diff")
	fs.BoolVarP(&opts.json, "json", "j", false, "Output the run report as JSON")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "Clean again whenever launcher files change")
	fs.BoolVar(&opts.restore, "restore-backups", false, "Restore association files from their backups")
	fs.StringVarP(&opts.config, "config", "c", "", "Config file (default "+config.ConfigPath()+")")
	fs.StringVar(&opts.systemDir, "system-dir", "", "System launcher directory")
	fs.StringVar(&opts.userDir, "user-dir", "", "User launcher directory")
	fs.BoolVarP(&opts.version, "version", "V", false, "Print version information")
	fs.BoolVarP(&opts.update, "update", "u", false, "Check for the latest version")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show this help message")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: desktopclean [options]\n\n")
		fmt.Fprintf(out, "desktopclean removes duplicate application launchers from the desktop menu.\n")
		fmt.Fprintf(out, "It hides duplicates, removes Wine-generated launchers and cleans MIME associations.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  desktopclean --dry-run    # Show what would be done\n")
		fmt.Fprintf(out, "  desktopclean --verbose    # Run with detailed logging\n")
		fmt.Fprintf(out, "  desktopclean --auto       # Run without confirmation\n")
		fmt.Fprintf(out, "  desktopclean -n --diff    # Preview every file change\n")
	}
	return fs
}

// parseFlags parses args into options
func parseFlags(args []string, output io.Writer) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	fs := newFlagSet(opts)
	// Parse errors are reported by the caller
	fs.SetOutput(io.Discard)
	err := fs.Parse(args)
	fs.SetOutput(output)
	if err != nil {
		return nil, fs, err
	}
	if fs.NArg() > 0 {
		return nil, fs, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if opts.restore && opts.watch {
		return nil, fs, fmt.Errorf("--restore-backups cannot be combined with --watch")
	}
	return opts, fs, nil
}

// loadConfig loads the config file and applies the flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return nil, err
	}

	if opts.systemDir != "" {
		cfg.SystemDir = config.ExpandPath(opts.systemDir)
	}
	if opts.userDir != "" {
		cfg.UserDir = config.ExpandPath(opts.userDir)
		cfg.UserMimeApps = filepath.Join(cfg.UserDir, "mimeapps.list")
	}
	cfg.DryRun = opts.dryRun
	cfg.Verbose = opts.verbose

	return cfg, nil
}

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "desktopclean",
		Repository: "desktopclean",
	}

	res, err := latest.Check(githubTag, strings.TrimPrefix(currentVer, "v"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not check for updates: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Printf("✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

// promptConfirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes declines.
func promptConfirm(in io.Reader, out io.Writer) bool {
	fmt.Fprintln(out, "⚠️  This script will modify desktop application files.")
	fmt.Fprintln(out, "Backups will be created automatically.")
	fmt.Fprint(out, "Continue? (y/N): ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// confirm shows the plan of a run and asks whether to apply it
func confirm(c *cleaner.Cleaner, opts *options) error {
	plan, err := c.Plan()
	if err != nil {
		return err
	}
	if plan.Statistics.IsZero() && len(plan.Actions) == 0 {
		return nil
	}

	if isInteractive() && !opts.json {
		ok, err := components.RunReview(plan.Actions, plan.Statistics, plan.Diffs())
		if err != nil {
			return err
		}
		if !ok {
			return cleaner.ErrCancelled
		}
		return nil
	}

	out := io.Writer(os.Stdout)
	if opts.json {
		out = os.Stderr
	}
	fmt.Fprint(out, ui.RenderActions(plan.Actions))
	fmt.Fprintln(out)
	if !promptConfirm(os.Stdin, out) {
		return cleaner.ErrCancelled
	}
	return nil
}

// printReport prints the result of one run to stdout
func printReport(report *cleaner.Report, opts *options, backupSuffix string) {
	fd := int(os.Stdout.Fd())
	width := 0
	if w, _, err := term.GetSize(fd); err == nil {
		width = w
	}
	writeReport(os.Stdout, report, opts, backupSuffix, term.IsTerminal(fd), width)
}

// writeReport writes the report as JSON or as diffs plus summary. Diffs go
// through the diff view on a terminal and as a plain unified diff otherwise.
func writeReport(w io.Writer, report *cleaner.Report, opts *options, backupSuffix string, tty bool, width int) {
	if opts.json {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(w, string(data))
		return
	}

	if opts.diff {
		diffs := report.Diffs()
		if tty {
			dv := components.NewDiffView()
			if width > 0 {
				dv.Width = width
			}
			dv.SetDiffs(diffs)
			fmt.Fprintln(w, dv.Render())
		} else {
			h := ui.NewHighlighter()
			for _, d := range diffs {
				fmt.Fprint(w, h.HighlightDiff(preview.FormatUnified(d)))
			}
		}
	}

	fmt.Fprint(w, "\n"+ui.RenderSummary(report.Statistics, report.DryRun))

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range report.Warnings {
			fmt.Fprintln(w, ui.RenderNotification("warning", warning))
		}
	}

	if failed := report.Failed(); len(failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.RenderNotification("error", fmt.Sprintf("%d changes failed:", len(failed))))
		for _, a := range failed {
			fmt.Fprintln(w, "  "+ui.RenderAction(a))
		}
	}

	if !report.DryRun && report.Statistics.BackupsCreated > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.RenderNotification("info", fmt.Sprintf(
			"%d association backups saved with the %s suffix. Run with --restore-backups to undo.",
			report.Statistics.BackupsCreated, backupSuffix)))
	}
}

// restoreBackups copies the association backups back over their originals
func restoreBackups(cfg *config.Config, logger logging.Logger) int {
	mgr := backup.New(cfg.BackupSuffix, cfg.DryRun)
	for _, e := range mgr.List(cfg.MimeAppsFiles()) {
		logger.Infof("Found backup %s (%d bytes, %s)", e.Path, e.Size, e.ModTime.Format("2006-01-02 15:04"))
	}
	result, err := mgr.Restore(cfg.MimeAppsFiles())

	for _, path := range result.Restored {
		logger.Infof("Restored %s", path)
	}
	for _, path := range result.Missing {
		logger.Debugf("No backup for %s", path)
	}
	for _, e := range result.Errors {
		logger.Errorf("%s: %v", e.Path, e.Error)
	}

	if err != nil {
		fmt.Println(ui.RenderNotification("error", fmt.Sprintf("Restored %d association files, %d failed", len(result.Restored), len(result.Errors))))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	fmt.Println(ui.RenderNotification("success", fmt.Sprintf("Restored %d association files", len(result.Restored))))
	return exitOK
}

// watchLoop reruns the cleaner whenever launchers change, until interrupted
func watchLoop(c *cleaner.Cleaner, opts *options, logger logging.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := c.Config()
	pass := func() error {
		stats, err := c.Run()
		printReport(c.Report(), opts, cfg.BackupSuffix)
		logger.Infof("Pass finished: %s", statsLine(stats))
		return err
	}

	// First pass right away, then on every change
	if err := pass(); err != nil {
		logger.Errorf("Cleanup failed: %v", err)
	}

	w := watch.New([]string{cfg.SystemDir, cfg.UserDir}, watch.DefaultDebounce, logger)
	fmt.Fprintln(os.Stderr, ui.StatusBarStyle.Render(
		ui.MutedStyle.Render("Watching for launcher changes · ")+ui.RenderHelpItem("ctrl+c", "stop")))
	if err := w.Run(ctx, pass); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func run(args []string) int {
	opts, fs, err := parseFlags(args, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fs.Usage()
		return exitUsage
	}

	if opts.help {
		fs.SetOutput(os.Stdout)
		fs.Usage()
		return exitOK
	}

	if opts.version {
		fmt.Println("desktopclean " + ui.VersionStyle.Render(fmt.Sprintf("%s (built %s)", version, buildTime)))
		return exitOK
	}

	if opts.update {
		checkUpdate(version)
		return exitOK
	}

	logger := logging.New(os.Stderr, opts.verbose).WithPrefix(ui.LevelPrefix)

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.restore {
		return restoreBackups(cfg, logger)
	}

	c, err := cleaner.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	if opts.watch {
		return watchLoop(c, opts, logger)
	}

	if !cfg.DryRun && !opts.auto {
		if err := confirm(c, opts); err != nil {
			if errors.Is(err, cleaner.ErrCancelled) {
				fmt.Println("Operation cancelled.")
				return exitOK
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitFailure
		}
	}

	_, err = c.Run()
	printReport(c.Report(), opts, cfg.BackupSuffix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// statsLine renders the counters on one line for logs
func statsLine(s models.RunStatistics) string {
	return fmt.Sprintf("%d Wine files, %d duplicates, %d MIME files, %d backups",
		s.WineFilesRemoved, s.DuplicatesHidden, s.MimeDuplicatesCleaned, s.BackupsCreated)
}
