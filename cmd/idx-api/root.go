package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/idx"
	"github.com/aretw0/idx/internal/config"
	"github.com/aretw0/idx/internal/logging"
	"github.com/aretw0/idx/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "idx-api",
	Short: "Run the IDX agent HTTP API",
	Long: `Serves the IDX agent API: incidents are read from the EIDO agent, claims are
kept in memory or Redis, and uploaded EIDO documents are forwarded for ingestion.

Settings come from idx.yaml (or --config), IDX_* environment variables and flags,
in increasing order of precedence.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		logger := createLogger(settings.LogLevel)
		slog.SetDefault(logger)

		handler, closeFn, err := newHandler(settings, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		ln, err := net.Listen("tcp", settings.Addr())
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", settings.Addr(), err)
		}

		tui.PrintBanner(cmd.OutOrStdout(), idx.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Starting IDX API on %s\n", ln.Addr())
		fmt.Fprintf(cmd.OutOrStdout(), "EIDO Agent: %s\n", settings.EIDOAgentURL)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, handler, ln, logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML or JSON settings file (default idx.yaml if present)")
	rootCmd.PersistentFlags().String("eido-agent-url", "", "Base URL of the EIDO agent")
	rootCmd.PersistentFlags().String("claims-backend", "", "Claim store backend: memory or redis")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the redis claim backend")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.Flags().String("host", "", "Address to bind")
	rootCmd.Flags().IntP("port", "p", 0, "Port to listen on")
	rootCmd.Flags().Bool("no-metrics", false, "Disable the /metrics endpoint")
}

// loadSettings layers flags that were explicitly set on top of config.Load.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		settings.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		settings.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("eido-agent-url") {
		settings.EIDOAgentURL, _ = flags.GetString("eido-agent-url")
	}
	if flags.Changed("claims-backend") {
		settings.Claims.Backend, _ = flags.GetString("claims-backend")
	}
	if flags.Changed("redis-addr") {
		settings.Claims.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if noMetrics, _ := flags.GetBool("no-metrics"); noMetrics {
		settings.Metrics = false
	}
	if debug, _ := flags.GetBool("debug"); debug {
		settings.LogLevel = "debug"
	}

	if err := settings.Validate(); err != nil {
		return config.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func createLogger(level string) *slog.Logger {
	return logging.New(logging.ParseLevel(level))
}
