package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/verity/internal/model"
	"github.com/ppiankov/verity/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
	outputPath   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies claims concurrently:
- Read claims from the input file (one per line, # comments skipped)
- Verify claims in parallel with a configurable worker count
- Print a per-claim summary and an overall tally

Example:
  verity batch claims.txt
  verity batch claims.txt --concurrency 10 --strategy local
  verity batch claims.txt --output results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&outputPath, "output", "", "write all results to a JSON file")
	batchCmd.Flags().StringVar(&strategyFlag, "strategy", "hybrid", "verification strategy (local, cloud, hybrid)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent cache layer")
	batchCmd.Flags().StringVar(&corpusPath, "corpus", "", "claims file (default: embedded seed corpus)")
}

// batchEntry is one line of the JSON output file
type batchEntry struct {
	Text   string                    `json:"text"`
	Result *model.VerificationResult `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyVerifyFlags(cfg)

	eng, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(eng, model.ParseStrategy(strategyFlag), concurrency)

	fmt.Fprintf(os.Stderr, "Verifying claims from %s with %d workers\n", file, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	entries := make([]batchEntry, 0, len(results))
	verdicts := make(map[model.Verdict]int)
	failures := 0

	for _, r := range results {
		entry := batchEntry{Text: r.Text}
		if r.Error != nil {
			failures++
			entry.Error = r.Error.Error()
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", r.Text, r.Error)
		} else {
			verdicts[r.Result.Verdict]++
			entry.Result = r.Result
			fmt.Fprintf(os.Stderr, "✓ %q: %s (%.0f)\n", r.Text, r.Result.Verdict, r.Result.Confidence)
		}
		entries = append(entries, entry)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d claims, %d failed\n", len(results), failures)
	for verdict, n := range verdicts {
		fmt.Fprintf(os.Stderr, "  %-13s %d\n", verdict, n)
	}

	if outputPath != "" {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
	}

	return nil
}
