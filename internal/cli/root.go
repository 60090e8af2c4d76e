// Package cli defines the apneatimer command line.
package cli

import (
	"fmt"

	"apneatimer/internal/app"
	"apneatimer/internal/core/discipline"
	applog "apneatimer/internal/log"
	"apneatimer/internal/storage"
	"apneatimer/internal/ui/preferences"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	discipline  string
	logLevel    string
	metricsAddr string
	noSound     bool
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. Without a subcommand it opens the
// desktop timer.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "apneatimer",
		Short: "Freediving competition timer",
		Long: `Apnea Timer runs the AIDA/CMAS competition protocol: official top
countdown, performance time, bottom time and surface protocol, with audio
cues and announcements at every transition.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			return app.RunGUI(app.GUIOptions{
				Settings: settings,
				SaveSettings: func(updated preferences.Settings) error {
					return storage.SaveSettings(app.Name, updated)
				},
			})
		},
	}

	persistent := root.PersistentFlags()
	persistent.StringVarP(&flags.discipline, "discipline", "d", "", "discipline code (STA, DYN, CWT)")
	persistent.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	persistent.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	persistent.BoolVar(&flags.noSound, "no-sound", false, "disable tones")

	root.AddCommand(newRunCommand(flags), newDisciplinesCommand())
	return root
}

// loadSettings reads the settings file and applies explicitly set flags on
// top of it, then configures logging.
func loadSettings(cmd *cobra.Command, flags *globalFlags) (preferences.Settings, error) {
	settings, err := storage.LoadSettings(app.Name)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "settings: %v, using defaults\n", err)
	}
	if err := applyFlags(cmd, flags, &settings); err != nil {
		return settings, err
	}
	applog.Configure(applog.Config{Level: settings.LogLevel, Output: cmd.ErrOrStderr()})
	return settings, nil
}

func applyFlags(cmd *cobra.Command, flags *globalFlags, settings *preferences.Settings) error {
	changed := cmd.Flags().Changed
	if changed("discipline") {
		code, err := discipline.Parse(flags.discipline)
		if err != nil {
			return err
		}
		settings.Discipline = code
	}
	if changed("log-level") {
		if !preferences.ValidLogLevel(flags.logLevel) {
			return fmt.Errorf("invalid log level %q", flags.logLevel)
		}
		settings.LogLevel = flags.logLevel
	}
	if changed("metrics-addr") {
		settings.MetricsAddr = flags.metricsAddr
	}
	if changed("no-sound") && flags.noSound {
		settings.SoundEnabled = false
	}
	return nil
}
