package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/picogrid/dyno-launch/pkg/config"
	"github.com/picogrid/dyno-launch/pkg/logger"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Manage cluster profiles",
	Long:  `Manage the cluster profiles that supply per-container resource ceilings`,
}

var clusterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured cluster profiles",
	Args:  cobra.NoArgs,
	RunE:  listClusters,
}

var clusterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a cluster profile",
	Long: `Add a cluster profile. Values not given as flags are prompted for, which
requires an interactive terminal.`,
	Args: cobra.NoArgs,
	RunE: addCluster,
}

var clusterRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a cluster profile",
	Args:  cobra.MaximumNArgs(1),
	RunE:  removeCluster,
}

func init() {
	clusterAddCmd.Flags().String("name", "", "profile name")
	clusterAddCmd.Flags().Int("max-memory-mb", 0, "maximum memory in MB per container")
	clusterAddCmd.Flags().Int("max-vcores", 0, "maximum virtual cores per container")
	clusterAddCmd.Flags().Bool("default", false, "make this the default profile")

	clusterRemoveCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	clusterCmd.AddCommand(clusterListCmd)
	clusterCmd.AddCommand(clusterAddCmd)
	clusterCmd.AddCommand(clusterRemoveCmd)
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func listClusters(cmd *cobra.Command, _ []string) error {
	clusters, err := config.LoadClusters()
	if err != nil {
		return fmt.Errorf("failed to load clusters: %w", err)
	}

	if len(clusters.Clusters) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No clusters configured")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tMAX MEMORY (MB)\tMAX VCORES\tDEFAULT")
	_, _ = fmt.Fprintln(w, "----\t---------------\t----------\t-------")

	for _, c := range clusters.Clusters {
		def := ""
		if c.Name == clusters.Default {
			def = "*"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", c.Name, c.MaxMemoryMB, c.MaxVcores, def)
	}

	return w.Flush()
}

func addCluster(cmd *cobra.Command, _ []string) error {
	clusters, err := config.LoadClusters()
	if err != nil {
		return fmt.Errorf("failed to load clusters: %w", err)
	}

	var cluster config.Cluster
	cluster.Name, _ = cmd.Flags().GetString("name")
	cluster.MaxMemoryMB, _ = cmd.Flags().GetInt("max-memory-mb")
	cluster.MaxVcores, _ = cmd.Flags().GetInt("max-vcores")
	makeDefault, _ := cmd.Flags().GetBool("default")

	needsPrompt := cluster.Name == "" || cluster.MaxMemoryMB == 0 || cluster.MaxVcores == 0
	if needsPrompt && !interactive() {
		return fmt.Errorf("--name, --max-memory-mb and --max-vcores are required when not running in a terminal")
	}

	if cluster.Name == "" {
		namePrompt := &survey.Input{
			Message: "Cluster name:",
		}
		if err := survey.AskOne(namePrompt, &cluster.Name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if cluster.MaxMemoryMB == 0 {
		if cluster.MaxMemoryMB, err = promptPositiveInt("Maximum memory per container (MB):", "8192"); err != nil {
			return err
		}
	}

	if cluster.MaxVcores == 0 {
		if cluster.MaxVcores, err = promptPositiveInt("Maximum virtual cores per container:", "4"); err != nil {
			return err
		}
	}

	if err := clusters.Add(cluster); err != nil {
		return err
	}
	if makeDefault || len(clusters.Clusters) == 1 {
		clusters.Default = cluster.Name
	}

	if err := config.SaveClusters(clusters); err != nil {
		return fmt.Errorf("failed to save clusters: %w", err)
	}

	logger.Successf("Cluster %s added", cluster.Name)
	return nil
}

func promptPositiveInt(message, def string) (int, error) {
	prompt := &survey.Input{
		Message: message,
		Default: def,
	}

	var result string
	validate := func(ans interface{}) error {
		n, err := strconv.Atoi(fmt.Sprint(ans))
		if err != nil || n <= 0 {
			return fmt.Errorf("must be a positive integer")
		}
		return nil
	}
	if err := survey.AskOne(prompt, &result, survey.WithValidator(validate)); err != nil {
		return 0, err
	}

	return strconv.Atoi(result)
}

func removeCluster(cmd *cobra.Command, args []string) error {
	clusters, err := config.LoadClusters()
	if err != nil {
		return fmt.Errorf("failed to load clusters: %w", err)
	}

	if len(clusters.Clusters) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No clusters to remove")
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if (len(args) == 0 || !yes) && !interactive() {
		return fmt.Errorf("a cluster name and --yes are required when not running in a terminal")
	}

	var selected string
	if len(args) == 1 {
		selected = args[0]
	} else {
		names := make([]string, len(clusters.Clusters))
		for i, c := range clusters.Clusters {
			names[i] = c.Name
		}
		prompt := &survey.Select{
			Message: "Select cluster to remove:",
			Options: names,
		}
		if err := survey.AskOne(prompt, &selected); err != nil {
			return err
		}
	}

	if !yes {
		var confirm bool
		confirmPrompt := &survey.Confirm{
			Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
			Default: false,
		}
		if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
			return err
		}
		if !confirm {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Removal cancelled")
			return nil
		}
	}

	if err := clusters.Remove(selected); err != nil {
		return err
	}

	if err := config.SaveClusters(clusters); err != nil {
		return fmt.Errorf("failed to save clusters: %w", err)
	}

	logger.Successf("Cluster %s removed", selected)
	return nil
}
