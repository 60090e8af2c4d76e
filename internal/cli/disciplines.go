package cli

import (
	"fmt"
	"text/tabwriter"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/session"

	"github.com/spf13/cobra"
)

func newDisciplinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disciplines",
		Short: "List supported disciplines and their protocol timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "CODE\tNAME\tOFFICIAL TOP\tBOTTOM TIME\tSURFACE\tMAX")
			for _, config := range discipline.All() {
				bottom := "-"
				if config.HasBottomTime() {
					bottom = fmt.Sprintf("%ds", config.BottomTime)
				}
				fmt.Fprintf(writer, "%s\t%s\t%ds\t%s\t%ds\t%s\n",
					config.Code, config.Name, config.OfficialTop, bottom,
					config.SurfaceProtocol, session.FormatSeconds(config.MaxPerformance))
			}
			return writer.Flush()
		},
	}
}
