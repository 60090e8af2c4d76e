package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"apneatimer/internal/app"
	applog "apneatimer/internal/log"
	"apneatimer/internal/metrics"

	"github.com/spf13/cobra"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var tickInterval time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one protocol in the terminal",
		Long: `Run one protocol without a window. Announcements and the timer are
printed to stdout and every tone rings the terminal bell. Static apnea has no
automatic end; press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			metricsCtx, cancelMetrics := context.WithCancel(ctx)
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				logger := applog.WithComponent("metrics")
				if err := metrics.Serve(metricsCtx, settings.MetricsAddr, logger); err != nil {
					logger.Error().Err(err).Msg("metrics endpoint")
				}
			}()
			defer func() {
				cancelMetrics()
				wg.Wait()
			}()

			return app.RunConsole(ctx, app.ConsoleOptions{
				Discipline:   settings.Discipline,
				TickInterval: tickInterval,
				Sound:        settings.SoundEnabled,
				Logger:       applog.WithComponent("session"),
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&tickInterval, "tick-interval", time.Second, "protocol tick length")
	_ = cmd.Flags().MarkHidden("tick-interval")
	return cmd
}
