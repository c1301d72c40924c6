package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/mezdisk/internal/config"
	"github.com/lumipallolabs/mezdisk/internal/core"
	"github.com/lumipallolabs/mezdisk/internal/filetype"
	"github.com/lumipallolabs/mezdisk/internal/logging"
	"github.com/lumipallolabs/mezdisk/internal/model"
	"github.com/lumipallolabs/mezdisk/internal/ui"
)

// defaultWidth is used when the output is not a terminal
const defaultWidth = 120

// scanFlags holds the values of the scan flags; they only override the
// config file when set on the command line
type scanFlags struct {
	maxDepth       int
	followSymlinks bool
	sizeMode       string
	oneFileSystem  bool
	parallel       bool
	workers        int
	treeDepth      int
	treemapHeight  int
	treemapItems   int
	largest        int
	width          int
	noProgress     bool
	sniff          bool
}

func (c *CLI) scanCommand() *cobra.Command {
	var f scanFlags

	cmd := &cobra.Command{
		Use:   "mezdisk [path]",
		Short: "Show where disk space goes",
		Long: heredoc.Doc(`
			mezdisk scans a directory tree and reports what takes up the space:
			a size-sorted tree, a squarified treemap of the largest files and a
			table of the largest files.

			Entries that cannot be read are marked in the report and the scan
			carries on. Settings are read from ~/.mezdisk/config.toml; flags
			given on the command line take precedence.

			"config" is a subcommand. To scan a directory with that name, give
			it as a path: mezdisk ./config
		`),
		Example: heredoc.Doc(`
			mezdisk
			mezdisk ~/Downloads --max-depth 3
			mezdisk / --one-file-system --parallel --size-mode allocated
			mezdisk ./config
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}
			f.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			return c.scan(cmd.Context(), path, cfg, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.maxDepth, "max-depth", -1, "stop descending below this depth (-1 for unbounded)")
	flags.BoolVar(&f.followSymlinks, "follow-symlinks", false, "follow symbolic links")
	flags.StringVar(&f.sizeMode, "size-mode", "apparent", "size to count: apparent or allocated")
	flags.BoolVarP(&f.oneFileSystem, "one-file-system", "x", false, "do not cross into other file systems")
	flags.BoolVarP(&f.parallel, "parallel", "p", false, "scan with parallel workers")
	flags.IntVar(&f.workers, "workers", 0, "parallel worker count (0 picks one per CPU)")
	flags.IntVar(&f.treeDepth, "tree-depth", 4, "levels shown in the tree panel")
	flags.IntVar(&f.treemapHeight, "treemap-height", 18, "treemap height in rows")
	flags.IntVar(&f.treemapItems, "treemap-items", 25, "largest files shown in the treemap")
	flags.IntVar(&f.largest, "largest", 12, "rows in the largest files table")
	flags.IntVar(&f.width, "width", 0, "report width (0 uses the terminal width)")
	flags.BoolVar(&f.noProgress, "no-progress", false, "do not show scan progress")
	flags.BoolVar(&f.sniff, "sniff", false, "detect the type of extension-less files by content")

	return cmd
}

// apply copies explicitly set flags over cfg
func (f scanFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed

	if set("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if set("follow-symlinks") {
		cfg.FollowSymlinks = f.followSymlinks
	}
	if set("size-mode") {
		cfg.SizeMode = f.sizeMode
	}
	if set("one-file-system") {
		cfg.OneFileSystem = f.oneFileSystem
	}
	if set("parallel") {
		cfg.Parallel = f.parallel
	}
	if set("workers") {
		cfg.Workers = f.workers
	}
	if set("tree-depth") {
		cfg.TreeDepth = f.treeDepth
	}
	if set("treemap-height") {
		cfg.TreemapHeight = f.treemapHeight
	}
	if set("treemap-items") {
		cfg.TreemapItems = f.treemapItems
	}
	if set("largest") {
		cfg.LargestItems = f.largest
	}
	if set("no-progress") {
		cfg.Progress = !f.noProgress
	}
	if set("sniff") {
		cfg.SniffTypes = f.sniff
	}
}

// scan runs one scan and writes the report
func (c *CLI) scan(ctx context.Context, path string, cfg config.Config, f scanFlags) error {
	logger := logging.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	logger.Debug("scanning", "path", abs, "max_depth", cfg.MaxDepth, "parallel", cfg.Parallel, "size_mode", cfg.SizeMode)

	controller := core.NewController(cfg)
	events := controller.StartScan(abs)

	var result *model.ScanResult
	if cfg.Progress && isTerminal(c.stderr) {
		result, err = c.watch(ctx, events)
	} else {
		result, err = drain(ctx, events)
	}
	if err != nil {
		return err
	}

	logger.Debug("scan finished",
		"files", result.Stats.Files,
		"dirs", result.Stats.Dirs,
		"errors", result.Stats.Errors,
		"elapsed", result.Elapsed,
	)
	if result.Stats.Errors > 0 {
		logger.Warn("some entries could not be read", "errors", result.Stats.Errors)
	}

	opts := ui.ReportOptions{
		Width:         reportWidth(c.stdout, f.width),
		TreeDepth:     cfg.TreeDepth,
		TreemapHeight: cfg.TreemapHeight,
		TreemapItems:  cfg.TreemapItems,
		LargestItems:  cfg.LargestItems,
		Classifier:    filetype.Classifier{Sniff: cfg.SniffTypes},
	}
	_, err = fmt.Fprintln(c.stdout, ui.RenderReport(abs, *result, opts))
	return err
}

// watch shows the progress view on stderr until the scan completes
func (c *CLI) watch(ctx context.Context, events <-chan core.Event) (*model.ScanResult, error) {
	p := tea.NewProgram(ui.NewProgress(events),
		tea.WithContext(ctx),
		tea.WithOutput(c.stderr),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("progress view: %w", err)
	}

	progress, ok := final.(ui.Progress)
	if !ok || progress.Interrupted() || progress.Result() == nil {
		return nil, fmt.Errorf("scan interrupted: %w", context.Canceled)
	}
	return progress.Result(), nil
}

// drain waits for the completion event without any display
func drain(ctx context.Context, events <-chan core.Event) (*model.ScanResult, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil, errors.New("scan ended without a result")
			}
			if done, ok := ev.(core.ScanCompletedEvent); ok {
				return &done.Result, nil
			}
		}
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reportWidth picks the explicit width, then the terminal width, then the default
func reportWidth(w io.Writer, explicit int) int {
	if explicit > 0 {
		return explicit
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(f.Fd()) {
		if width, _, err := term.GetSize(f.Fd()); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
