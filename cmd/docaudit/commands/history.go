package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docaudit/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	HistoryDB string `name:"history-db" help:"SQLite database with recorded runs" type:"path"`
	Limit     int    `short:"n" default:"20" help:"Number of runs to show, newest first"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	dbPath := firstNonEmpty(h.HistoryDB, cfg.HistoryDB)
	if dbPath == "" {
		return errors.New("no history database given: pass --history-db or set history_db in the config file")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded audit runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tHEAD\tNAV\tGHOST\tHELP\tLINKS\tIMAGES\tORPHANS\tTOTAL")
	for _, run := range runs {
		head := run.Head
		if head == "" {
			head = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			run.At.Local().Format(time.DateTime),
			head,
			run.Counts.NavMissing,
			run.Counts.Ghost,
			run.Counts.HelpMissing,
			run.Counts.BrokenLinks,
			run.Counts.MissingImages,
			run.Counts.OrphanImages,
			run.Counts.Total)
	}
	return w.Flush()
}
