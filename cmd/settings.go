package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/storage"
	"gopkg.in/yaml.v3"
)

var settingsKeys = []string{"api_key", "provider", "model", "student_name", "instructor_name"}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print saved settings (API key masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := storage.NewSettingsStore(dataDir).Load()
			if err != nil {
				return err
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(settings.Masked())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one setting",
		Long:  "Set one setting. Valid keys: " + strings.Join(settingsKeys, ", "),
		Example: `  ruiji settings set provider gemini
  ruiji settings set student_name "山田 花子"`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: settingsKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewSettingsStore(dataDir)
			settings, err := store.Load()
			if err != nil {
				return err
			}
			if err := setSetting(&settings, args[0], args[1]); err != nil {
				return err
			}
			return store.Save(settings)
		},
	})

	return cmd
}

func setSetting(settings *models.Settings, key, value string) error {
	switch key {
	case "api_key":
		settings.APIKey = value
	case "provider":
		settings.Provider = value
	case "model":
		settings.Model = value
	case "student_name":
		settings.StudentName = value
	case "instructor_name":
		settings.InstructorName = value
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingsKeys, ", "))
	}
	return nil
}
