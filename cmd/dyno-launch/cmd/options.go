package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picogrid/dyno-launch/pkg/launch"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List accepted launch options",
	Long:  `List every launch option with its argument kind, default and description`,
	Args:  cobra.NoArgs,
	RunE:  listOptions,
}

func listOptions(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "OPTION\tARGUMENT\tDEFAULT\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "------\t--------\t-------\t-----------")

	for _, opt := range launch.Options() {
		argument := "none"
		switch {
		case opt.Repeatable:
			argument = "repeatable"
		case opt.HasArg:
			argument = "value"
		}

		def := "-"
		if opt.HasDefault {
			def = fmt.Sprintf("%q", opt.Default)
		}

		_, _ = fmt.Fprintf(w, "--%s\t%s\t%s\t%s\n", opt.Name, argument, def, opt.Help)
	}

	return w.Flush()
}
