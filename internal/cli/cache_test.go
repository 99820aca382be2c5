package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCacheCommands_DocumentPersistentLayer(t *testing.T) {
	for _, cmd := range []*cobra.Command{cacheCmd, cacheStatsCmd, cacheClearCmd} {
		if !strings.Contains(cmd.Long, "persistent") {
			t.Errorf("%s help does not mention the persistent layer", cmd.Use)
		}
	}
	for _, cmd := range []*cobra.Command{cacheStatsCmd, cacheClearCmd} {
		if cmd.Flags().Lookup("cache-dir") == nil {
			t.Errorf("%s is missing the --cache-dir flag", cmd.Use)
		}
	}
}
