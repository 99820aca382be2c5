package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCmd groups cache administration commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache",
	Long: `Manage the result cache.

The in-memory cache layer lives and dies with each verity process, so
these commands only act on the persistent disk layer. Point them at it
with --cache-dir or the cache.dir config setting.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Long: `Show item count and size for the persistent cache layer.

Without --cache-dir (or cache.dir in the config file) there is no
persistent layer and the cache reads as empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyVerifyFlags(cfg)

		eng, err := buildEngine(context.Background(), cfg)
		if err != nil {
			return err
		}

		stats := eng.CacheStats()
		fmt.Printf("Items: %d\n", stats.ItemCount)
		fmt.Printf("Size:  %d bytes\n", stats.SizeBytes)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached results",
	Long: `Remove every result from the persistent cache layer.

Without --cache-dir (or cache.dir in the config file) there is no
persistent layer and nothing to clear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyVerifyFlags(cfg)

		eng, err := buildEngine(context.Background(), cfg)
		if err != nil {
			return err
		}

		if err := eng.ClearCache(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheStatsCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent cache layer")
	cacheClearCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent cache layer")
}
