package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/verity/internal/server"
)

var (
	serveHost string
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP verification API",
	Long: `Serve exposes the verification engine over HTTP:

  POST   /api/v1/verify       verify a claim
  GET    /api/v1/status       corpus, source, and cache status
  GET    /api/v1/cache/stats  cache statistics
  DELETE /api/v1/cache        clear the result cache

Example:
  verity serve
  verity serve --host 0.0.0.0 --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	serveCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent cache layer")
	serveCmd.Flags().StringVar(&corpusPath, "corpus", "", "claims file (default: embedded seed corpus)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyVerifyFlags(cfg)
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	eng, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(eng, cfg.Server)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
