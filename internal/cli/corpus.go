package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/verity/internal/corpus"
)

// corpusCmd inspects the claim corpus
var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the claim corpus",
	Long: `Corpus prints the loaded knowledge base: claim count per verdict
and, with --verbose, every claim.

Example:
  verity corpus
  verity corpus --corpus ./claims.yaml -v`,
	RunE: runCorpus,
}

func init() {
	rootCmd.AddCommand(corpusCmd)

	corpusCmd.Flags().StringVar(&corpusPath, "corpus", "", "claims file (default: embedded seed corpus)")
}

func runCorpus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if corpusPath != "" {
		cfg.Corpus.Path = corpusPath
	}

	corp, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	fmt.Printf("Claims: %d\n", corp.Len())
	for verdict, n := range corp.Stats() {
		fmt.Printf("  %-13s %d\n", verdict, n)
	}

	if verbose {
		fmt.Println()
		for _, claim := range corp.Claims() {
			fmt.Printf("[%s] %s (%s, %.0f)\n", claim.ID, claim.Text, claim.Verdict, claim.Confidence)
		}
	}
	return nil
}
