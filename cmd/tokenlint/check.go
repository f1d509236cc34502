package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bennypowers.dev/tokenlint/internal/config"
	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/internal/report"
	"bennypowers.dev/tokenlint/internal/source"
	"bennypowers.dev/tokenlint/internal/validator"
	"bennypowers.dev/tokenlint/internal/watch"
)

type checkFlags struct {
	configPath   string
	numRuns      int
	seed         uint64
	format       string
	extractor    string
	prefix       string
	strictColors bool
	exhaustive   bool
	watch        bool
}

func newCheckCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate the tokens of stylesheets, pages and token files",
		Long: `Validate the tokens of each input. Directories are searched with the
configured input patterns; with no arguments the configured inputs under the
current directory are checked.

Exits 0 when every input passes, 1 when any check fails, and 2 when an input
or the configuration cannot be read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := checkConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), cfg, args, flags.watch)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "configuration file (default: discovered in the current directory)")
	f.IntVarP(&flags.numRuns, "num-runs", "n", validator.DefaultNumRuns, "sampling trials per category")
	f.Uint64Var(&flags.seed, "seed", 0, "seed for the sampling sequence (default: random, printed in the report)")
	f.StringVarP(&flags.format, "format", "f", "text", "output format: text or json")
	f.StringVar(&flags.extractor, "extractor", string(source.ExtractorRegex), "stylesheet extractor: regex or tree-sitter")
	f.StringVar(&flags.prefix, "prefix", "", "prefix for token names read from DTCG files")
	f.BoolVar(&flags.strictColors, "strict-colors", false, "require hex and rgb() colors to parse")
	f.BoolVar(&flags.exhaustive, "exhaustive", false, "check every token instead of sampling")
	f.BoolVarP(&flags.watch, "watch", "w", false, "re-check inputs when they change")
	return cmd
}

// checkConfig loads the configuration and applies the flags the user set
func checkConfig(cmd *cobra.Command, flags checkFlags) (config.Config, error) {
	var (
		cfg  config.Config
		path string
		err  error
	)
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
		path = flags.configPath
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, path, err = config.Discover(wd)
		}
	}
	if err != nil {
		return cfg, err
	}
	if path != "" {
		log.Info("Using configuration %s", path)
	}

	changed := cmd.Flags().Changed
	if changed("num-runs") {
		cfg.NumRuns = flags.numRuns
	}
	if changed("seed") {
		seed := flags.seed
		cfg.Seed = &seed
	}
	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("extractor") {
		cfg.Extractor = flags.extractor
	}
	if changed("prefix") {
		cfg.Prefix = flags.prefix
	}
	if changed("strict-colors") {
		cfg.StrictColors = flags.strictColors
	}
	if changed("exhaustive") {
		cfg.Exhaustive = flags.exhaustive
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		if err := setLogLevel(cfg.LogLevel); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runCheck validates the inputs named by args and renders the results to
// w. In watch mode it then re-checks each input as it changes until ctx is
// done.
func runCheck(ctx context.Context, w io.Writer, cfg config.Config, args []string, watchMode bool) error {
	paths, err := inputs(cfg, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no inputs to check")
	}

	v, err := validator.New(cfg.ValidatorOptions())
	if err != nil {
		return err
	}
	c := &checker{cfg: cfg, validator: v, out: w, styled: styled(w)}

	results, err := c.checkAll(ctx, paths)
	if err != nil {
		return err
	}
	if err := c.render(results); err != nil {
		return err
	}

	if watchMode {
		return c.watch(ctx, args, paths)
	}
	return outcome(results)
}

// inputs resolves the command-line paths, or the configured inputs under
// the working directory when there are none
func inputs(cfg config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return cfg.ExpandArgs(args)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return cfg.ResolveInputs(wd)
}

// outcome maps results to the command's exit status
func outcome(results []report.Result) error {
	for _, r := range results {
		if r.Err != nil {
			return &exitCodeError{code: exitError}
		}
	}
	if !report.OK(results) {
		return &exitCodeError{code: exitFailures}
	}
	return nil
}

// styled reports whether w is a terminal that can show colors
func styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type checker struct {
	cfg       config.Config
	validator *validator.Validator
	out       io.Writer
	styled    bool
	mu        sync.Mutex // serializes rendering in watch mode
}

// checkAll validates each path in parallel. Unreadable inputs are reported
// in their result rather than stopping the others.
func (c *checker) checkAll(ctx context.Context, paths []string) ([]report.Result, error) {
	results := make([]report.Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkOne(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *checker) checkOne(path string) report.Result {
	result := report.Result{Path: displayPath(path)}

	set, err := source.Load(path, c.cfg.SourceOptions())
	if err != nil {
		log.Warn("Skipping %s: %v", path, err)
		result.Err = err
		return result
	}
	result.Tokens = set.Len()
	result.Report = c.validator.Validate(set)
	return result
}

func (c *checker) render(results []report.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.Format == "json" {
		return report.JSON(c.out, results)
	}
	return report.Text(c.out, results, c.styled)
}

// watch re-checks a changed input until ctx is done
func (c *checker) watch(ctx context.Context, args, paths []string) error {
	roots := args
	if len(roots) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		roots = []string{wd}
	}

	w, err := watch.New(func(path string) {
		log.Info("%s changed", path)
		if err := c.render([]report.Result{c.checkOne(path)}); err != nil {
			log.Error("Failed to render results: %v", err)
		}
	}, watch.Options{Filter: c.watchable, SkipDir: c.skipDir})
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Stop(); err != nil {
			log.Warn("Failed to stop watcher: %v", err)
		}
	}()

	if err := w.Start(roots); err != nil {
		return err
	}
	log.Info("Watching %d inputs; press Ctrl+C to stop", len(paths))

	<-ctx.Done()
	return nil
}

// watchable selects new files under watched directories
func (c *checker) watchable(path string) bool {
	if !source.Supported(path) {
		return false
	}
	return !c.cfg.Excluded(displayPath(path))
}

// skipDir leaves hidden and excluded directories unwatched
func (c *checker) skipDir(path string) bool {
	return c.cfg.SkipDir(displayPath(path))
}

// displayPath shortens path relative to the working directory when it lies
// beneath it
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
