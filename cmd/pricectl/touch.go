package main

import (
	"fmt"
	"os"
	"time"

	"github.com/modelcatalog/pricectl/internal/journal"
	"github.com/modelcatalog/pricectl/internal/normalize"
	"github.com/modelcatalog/pricectl/internal/pathutil"
	"github.com/spf13/cobra"

	_ "modernc.org/sqlite"
)

var touchCmd = &cobra.Command{
	Use:   "touch",
	Short: "Normalize trailing newlines in pricing files",
	Long: `Rewrite every .json file in the pricing directory so it ends with
exactly one trailing newline. All other content is left untouched. The
resulting diff triggers the sync-pricing-to-general workflow.

The directory defaults to "pricing" in the current working directory
and can be overridden with --dir or the PRICING_DIR environment
variable.`,
	RunE: runTouch,
}

var (
	touchDir       string
	touchJournal   string
	touchNoJournal bool
	touchRetention int
)

func init() {
	touchCmd.Flags().StringVarP(&touchDir, "dir", "d", "", "Pricing directory (overrides PRICING_DIR)")
	touchCmd.Flags().StringVar(&touchJournal, "journal", "./data/journal.db", "Path to journal database")
	touchCmd.Flags().BoolVar(&touchNoJournal, "no-journal", false, "Skip recording the run in the journal")
	touchCmd.Flags().IntVar(&touchRetention, "retention", 30, "Number of journal runs to retain (0 = unlimited)")
}

func runTouch(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}
	dir := pathutil.PricingDir(root, touchDir)

	startTime := time.Now()
	res, err := normalize.Dir(dir)
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}
	endTime := time.Now()

	if !touchNoJournal {
		recordTouchRun(dir, startTime, endTime, res)
	}

	fmt.Printf("Touched %d pricing file(s). Run: git diff pricing/\n", res.Count())
	return nil
}

// recordTouchRun journals the run. Failures here are warnings only; the
// normalization itself already succeeded.
func recordTouchRun(dir string, startTime, endTime time.Time, res *normalize.Result) {
	before, after := res.Totals()
	run := journal.Run{
		Command:      "touch",
		Dir:          dir,
		StartTime:    startTime,
		EndTime:      endTime,
		FileCount:    int64(res.Count()),
		ChangedCount: int64(res.ChangedCount()),
		BytesBefore:  before,
		BytesAfter:   after,
	}

	files := make([]journal.FileRecord, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, journal.FileRecord{
			Path:        f.Path,
			BytesBefore: f.BytesBefore,
			BytesAfter:  f.BytesAfter,
			Changed:     f.Changed,
		})
	}

	mgr := journal.NewManager(touchJournal, touchRetention)
	if _, err := mgr.Record(run, files); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record run in journal: %v\n", err)
	}
}
