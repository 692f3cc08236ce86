package main

import (
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/modelcatalog/pricectl/internal/journal"
	"github.com/spf13/cobra"

	_ "modernc.org/sqlite"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long:  `List journal runs with per-run file counts and byte totals.`,
	RunE:  runHistory,
}

var (
	historyJournal string
	historyLimit   int
	historyFiles   int64
)

func init() {
	historyCmd.Flags().StringVar(&historyJournal, "journal", "./data/journal.db", "Path to journal database")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
	historyCmd.Flags().Int64Var(&historyFiles, "files", 0, "Show the file records of the given run ID")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(historyJournal); err != nil {
		return fmt.Errorf("no journal at %s (run `pricectl touch` first)", historyJournal)
	}

	database, err := sql.Open("sqlite", historyJournal)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer database.Close()

	if err := journal.ApplyReadPragmas(database); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if historyFiles > 0 {
		return printRunFiles(database, historyFiles)
	}

	runs, err := journal.ListRuns(database, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tWHEN\tCMD\tFILES\tCHANGED\tBYTES\tDIR\n")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			humanize.Time(r.StartTime),
			r.Command,
			humanize.Comma(r.FileCount),
			humanize.Comma(r.ChangedCount),
			humanize.Bytes(uint64(r.BytesAfter)),
			r.Dir,
		)
	}
	w.Flush()

	return nil
}

func printRunFiles(database *sql.DB, runID int64) error {
	files, err := journal.LoadRunFiles(database, runID)
	if err != nil {
		return fmt.Errorf("failed to load run files: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BEFORE\tAFTER\tSTATUS\tPATH\n")
	for _, f := range files {
		status := "unchanged"
		if f.Changed {
			status = "changed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			humanize.Bytes(uint64(f.BytesBefore)),
			humanize.Bytes(uint64(f.BytesAfter)),
			status,
			f.Path,
		)
	}
	w.Flush()

	return nil
}
