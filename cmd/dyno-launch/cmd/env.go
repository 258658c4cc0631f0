package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the container environment",
	Long: `Print the environment handed to every launched container: the shell_env
entries with the NameNode args, DataNode args and metrics period keys
applied on top.`,
	Args: cobra.NoArgs,
	RunE: printEnv,
}

func init() {
	addLaunchFlags(envCmd)
}

func printEnv(cmd *cobra.Command, _ []string) error {
	cfg, err := loadLaunchConfig(cmd)
	if err != nil {
		return err
	}

	env := cfg.Env()
	for _, key := range slices.Sorted(maps.Keys(env)) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, env[key])
	}
	return nil
}
