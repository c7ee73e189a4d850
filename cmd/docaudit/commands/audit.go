package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docaudit/internal/audit"
	"git.home.luguber.info/inful/docaudit/internal/gitinfo"
	"git.home.luguber.info/inful/docaudit/internal/history"
	"git.home.luguber.info/inful/docaudit/internal/logfields"
	"git.home.luguber.info/inful/docaudit/internal/report"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
)

// AuditCmd implements the 'audit' command.
type AuditCmd struct {
	MkdocsYAML string `name:"mkdocs-yaml" help:"Path to the mkdocs.yml file to read" type:"path"`
	HelpURLs   string `name:"help-urls" help:"Path to the header file containing HELP_URL definitions" type:"path"`

	NavMissing    bool `help:"Show files referenced in nav that don't exist on disk"`
	Ghost         bool `help:"Show markdown files on disk not referenced by nav (orphans)"`
	HelpMissing   bool `help:"Show files referenced in the help index that don't exist"`
	BrokenLinks   bool `help:"Show broken internal links in markdown files"`
	MissingImages bool `help:"Show image references that point to non-existent files"`
	OrphanImages  bool `help:"Show image files not referenced by any markdown or CSS"`
	Footnotes     bool `help:"Additionally list pages containing footnote syntax (informational)"`

	Summary   bool     `help:"Show only summary counts, not individual items"`
	Quiet     bool     `short:"q" help:"Suppress output, exit non-zero if any issues found"`
	Exclude   []string `help:"Subsites to exclude from all checks" sep:","`
	HistoryDB string   `name:"history-db" help:"Record run counts in this SQLite database" type:"path"`
}

func (a *AuditCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	mkdocsYAML := firstNonEmpty(a.MkdocsYAML, cfg.MkDocsYAML)
	helpURLs := firstNonEmpty(a.HelpURLs, cfg.HelpURLs)
	if mkdocsYAML == "" {
		return errors.New("no mkdocs.yml given: pass --mkdocs-yaml or set mkdocs_yaml in the config file")
	}
	if helpURLs == "" {
		return errors.New("no help index given: pass --help-urls or set help_urls in the config file")
	}
	exclude := a.Exclude
	if len(exclude) == 0 {
		exclude = cfg.Exclude
	}
	for _, ex := range exclude {
		slog.Debug("excluding subsite from reports", logfields.Subsite(ex))
	}
	historyDB := firstNonEmpty(a.HistoryDB, cfg.HistoryDB)

	monorepoRoot := paths.Parent(paths.Normalize(mkdocsYAML))

	started := time.Now()
	result, err := audit.New(mkdocsYAML, helpURLs).Run(context.Background())
	if err != nil {
		return err
	}
	slog.Debug("audit complete",
		logfields.Root(monorepoRoot),
		logfields.DurationMS(float64(time.Since(started).Milliseconds())))

	result = result.FilterExcluded(monorepoRoot, exclude)

	show := report.Show{
		NavMissing:    a.NavMissing,
		Ghost:         a.Ghost,
		HelpMissing:   a.HelpMissing,
		BrokenLinks:   a.BrokenLinks,
		MissingImages: a.MissingImages,
		OrphanImages:  a.OrphanImages,
	}
	if !show.Any() {
		show = report.ShowAll()
	}
	show.Footnotes = a.Footnotes

	info, haveGit := gitinfo.Detect(monorepoRoot)

	if historyDB != "" {
		if err := recordRun(historyDB, info, result); err != nil {
			// History is best effort; a broken database must not mask findings.
			slog.Warn("failed to record audit run", logfields.Error(err))
		}
	}

	formatter := &report.Formatter{Root: monorepoRoot, Summary: a.Summary}
	total := countIssues(result, show)
	if !a.Quiet {
		formatter.Header(os.Stdout, info, haveGit)
		total = formatter.Format(os.Stdout, result, show)
	}

	if total > 0 {
		os.Exit(1)
	}
	return nil
}

// countIssues totals the sections that would be shown, for quiet mode
// where nothing is printed but the exit code still matters.
func countIssues(r *audit.Result, show report.Show) int {
	n := 0
	if show.NavMissing {
		n += len(r.NavMissing)
	}
	if show.Ghost {
		n += len(r.Ghost)
	}
	if show.HelpMissing {
		n += len(r.HelpMissing)
	}
	if show.BrokenLinks {
		n += len(r.BrokenLinks)
	}
	if show.MissingImages {
		n += len(r.MissingImages)
	}
	if show.OrphanImages {
		n += len(r.OrphanImages)
	}
	return n
}

func recordRun(dbPath string, info gitinfo.Info, result *audit.Result) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id := uuid.NewString()
	if err := store.Record(context.Background(), history.Run{
		ID:     id,
		At:     time.Now(),
		Head:   info.ShortHash,
		Counts: result.Counts(),
	}); err != nil {
		return err
	}
	slog.Debug("audit run recorded", logfields.RunID(id))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
