package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/modelcatalog/pricectl/internal/stubsync"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <pricing-file> [general-file]",
	Short: "Sync model IDs from a pricing file to the general catalog",
	Long: `For each model present in the pricing file but missing from the
general file, append a minimal stub before the root closing brace.
Existing file content is preserved byte-for-byte.

If the general file is omitted it is inferred from the pricing path
(e.g. pricing/google.json -> general/google.json). OpenAI pricing
syncs to both general/openai.json and general/open-ai.json.

Output uses GitHub workflow annotations so skips and failures surface
in the sync-pricing-to-general workflow logs.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	pricingPath := args[0]
	generalOverride := ""
	if len(args) > 1 {
		generalOverride = args[1]
	}

	reports, err := stubsync.File(pricingPath, generalOverride)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "::error file=%s::Pricing file not found\n", pricingPath)
			return fmt.Errorf("pricing file not found: %s", pricingPath)
		}
		return err
	}

	for _, r := range reports {
		switch r.Skip {
		case stubsync.SkipMissingFile:
			fmt.Printf("::notice::No general file at %s, skipping\n", r.General)
		case stubsync.SkipNoRootBrace:
			fmt.Fprintf(os.Stderr, "::warning::Could not find root closing brace in %s, skipping\n", r.General)
		case stubsync.SkipBadTail:
			fmt.Fprintf(os.Stderr, "::warning::Unexpected format before root brace in %s, skipping\n", r.General)
		default:
			if len(r.Added) == 0 {
				fmt.Printf("All pricing models already present in %s\n", r.General)
				continue
			}
			fmt.Printf("Added missing models to %s:\n", r.General)
			for _, id := range r.Added {
				fmt.Printf("  - %s\n", id)
			}
		}
	}

	return nil
}
