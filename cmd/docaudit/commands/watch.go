package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docaudit/internal/audit"
	"git.home.luguber.info/inful/docaudit/internal/logfields"
	"git.home.luguber.info/inful/docaudit/internal/nav"
	"git.home.luguber.info/inful/docaudit/internal/report"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
	"git.home.luguber.info/inful/docaudit/internal/watch"
)

// WatchCmd implements the 'watch' command: keep re-auditing as the
// documentation tree changes, printing a fresh report each time.
type WatchCmd struct {
	MkdocsYAML string `name:"mkdocs-yaml" help:"Path to the mkdocs.yml file to read" type:"path"`
	HelpURLs   string `name:"help-urls" help:"Path to the header file containing HELP_URL definitions" type:"path"`

	Summary  bool          `help:"Show only summary counts, not individual items"`
	Exclude  []string      `help:"Subsites to exclude from all checks" sep:","`
	Debounce time.Duration `default:"2s" help:"Quiet period after a change before re-auditing"`
	Interval time.Duration `help:"Additionally re-audit on this fixed interval (0 disables)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	mkdocsYAML := firstNonEmpty(w.MkdocsYAML, cfg.MkDocsYAML)
	helpURLs := firstNonEmpty(w.HelpURLs, cfg.HelpURLs)
	if mkdocsYAML == "" {
		return errors.New("no mkdocs.yml given: pass --mkdocs-yaml or set mkdocs_yaml in the config file")
	}
	if helpURLs == "" {
		return errors.New("no help index given: pass --help-urls or set help_urls in the config file")
	}
	exclude := w.Exclude
	if len(exclude) == 0 {
		exclude = cfg.Exclude
	}

	mkdocsYAML = paths.Normalize(mkdocsYAML)
	monorepoRoot := paths.Parent(mkdocsYAML)

	// The watched roots come from the nav itself: every include root plus
	// the site root nav file's directory. A nav edit that adds a new
	// subsite is picked up on the next restart, not mid-run.
	navCfg, err := nav.Load(mkdocsYAML)
	if err != nil {
		return err
	}
	roots := nav.IncludeRoots(navCfg.Nav, monorepoRoot)

	engine := audit.New(mkdocsYAML, helpURLs)
	formatter := &report.Formatter{Root: monorepoRoot, Summary: w.Summary}

	onAudit := func(ctx context.Context) {
		result, err := engine.Run(ctx)
		if err != nil {
			slog.Error("audit failed", logfields.Error(err))
			return
		}
		result = result.FilterExcluded(monorepoRoot, exclude)
		fmt.Fprintf(os.Stdout, "\n=== audit @ %s ===\n", time.Now().Format(time.TimeOnly))
		formatter.Format(os.Stdout, result, report.ShowAll())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// One immediate run before settling into watch mode.
	onAudit(ctx)

	watcher := watch.New(watch.Options{
		Roots:    roots,
		Debounce: w.Debounce,
		Interval: w.Interval,
	}, onAudit)
	return watcher.Run(ctx)
}
