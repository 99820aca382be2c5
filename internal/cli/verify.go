package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/verity/internal/model"
)

var (
	strategyFlag  string
	verifyTimeout time.Duration
	noCache       bool
	cacheDir      string
	corpusPath    string
	embedProvider string
	embedModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <text>",
	Short: "Verify a single claim",
	Long: `Verify checks one claim and prints a verdict with confidence,
explanation, evidence, and sources.

Strategies:
  local   match against the local knowledge base only
  cloud   query external fact-checking sources only
  hybrid  local first, escalate to sources when inconclusive (default)

Example:
  verity verify "The Earth is flat"
  verity verify "Vaccines cause autism" --strategy local
  verity verify "The moon landing was faked" --strategy cloud --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&strategyFlag, "strategy", "hybrid", "verification strategy (local, cloud, hybrid)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	verifyCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent cache layer")
	verifyCmd.Flags().StringVar(&corpusPath, "corpus", "", "claims file (default: embedded seed corpus)")
	verifyCmd.Flags().StringVar(&embedProvider, "embedding-provider", "", "embedding provider (openai, ollama)")
	verifyCmd.Flags().StringVar(&embedModel, "embedding-model", "", "embedding model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
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

	result, err := eng.Verify(ctx, model.VerificationRequest{
		Text:     text,
		Strategy: model.ParseStrategy(strategyFlag),
	})
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	return printResult(result, cfg.Output.JSON)
}

// applyVerifyFlags lets flags override file and environment settings
func applyVerifyFlags(cfg *model.Config) {
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if corpusPath != "" {
		cfg.Corpus.Path = corpusPath
	}
	if embedProvider != "" {
		cfg.Embedding.Provider = embedProvider
	}
	if embedModel != "" {
		cfg.Embedding.Model = embedModel
	}
}

func printResult(result *model.VerificationResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Verdict:     %s\n", result.Verdict)
	fmt.Printf("Confidence:  %.1f/100\n", result.Confidence)
	fmt.Printf("Tier:        %s\n", result.StrategyUsed)
	if result.Cached {
		fmt.Printf("Cached:      yes\n")
	}
	fmt.Printf("Time:        %.2fs\n", result.ProcessingTime)
	if result.Explanation != "" {
		fmt.Printf("\n%s\n", result.Explanation)
	}
	if len(result.Evidence) > 0 {
		fmt.Printf("\nEvidence:\n")
		for _, e := range result.Evidence {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(result.Sources) > 0 {
		fmt.Printf("\nSources:\n")
		for _, s := range result.Sources {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}
