package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ruiji",
		Short: "Generate similar practice problems and printable worksheets from problem images",
		Long: `Ruiji turns photos or screenshots of exam and worksheet problems into
similar practice problems with worked solutions and teaching notes, using a
vision-capable LLM (Gemini, OpenAI or Ollama), and lays them out as a
printable worksheet.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if err := setupLogging(logLevel); err != nil {
				return err
			}
			if dataDir == "" {
				dataDir = os.Getenv("RUIJI_DATA_DIR")
			}
			if dataDir == "" {
				dataDir = "data"
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for settings and saved sheets (default $RUIJI_DATA_DIR or ./data)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newSheetsCmd())
	cmd.AddCommand(newSettingsCmd())

	return cmd
}

func setupLogging(level string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}
