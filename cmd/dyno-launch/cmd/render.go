package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/dyno-launch/pkg/launch"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a launch configuration for a child process",
	Long: `Parse and validate the launch options, then print them in a form the
orchestrating controller can consume:

  shell  one command line to embed in the controller's launch script
  lines  one serialized option per line
  yaml   the parsed configuration as YAML`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	addLaunchFlags(renderCmd)
	addCeilingFlags(renderCmd)
	renderCmd.Flags().StringP("format", "f", "shell", "output format (shell, lines, yaml)")
	renderCmd.Flags().Bool("skip-verify", false, "render without validating against resource ceilings")
}

func runRender(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	switch format {
	case "shell", "lines", "yaml":
	default:
		return fmt.Errorf("unsupported format %q: must be shell, lines or yaml", format)
	}

	cfg, err := loadLaunchConfig(cmd)
	if err != nil {
		return err
	}

	if skip, _ := cmd.Flags().GetBool("skip-verify"); !skip {
		if err := verifyLaunchConfig(cmd, cfg); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "lines":
		for _, token := range launch.Serialize(cfg) {
			_, _ = fmt.Fprintln(out, token)
		}
	case "yaml":
		data, err := yaml.Marshal(cfg.Params())
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		_, _ = out.Write(data)
	default:
		_, _ = fmt.Fprintln(out, launch.CommandLine(launch.Serialize(cfg)))
	}
	return nil
}
