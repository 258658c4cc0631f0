package cmd

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/picogrid/dyno-launch/pkg/config"
	"github.com/picogrid/dyno-launch/pkg/launch"
	"github.com/picogrid/dyno-launch/pkg/logger"
)

// addLaunchFlags registers the launch option surface on cmd
func addLaunchFlags(cmd *cobra.Command) {
	launch.Register(cmd.Flags())
	cmd.Flags().String("env-file", "", "dotenv file whose KEY=VALUE lines are added as shell_env entries")
}

// addCeilingFlags registers explicit resource ceilings on cmd
func addCeilingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-memory-mb", 0, "maximum memory in MB per container (overrides the cluster profile)")
	cmd.Flags().Int("max-vcores", 0, "maximum virtual cores per container (overrides the cluster profile)")
}

// loadLaunchConfig gathers option values from flags, then the environment
// and config file, then the env file, and parses them
func loadLaunchConfig(cmd *cobra.Command) (*launch.Config, error) {
	values, err := launch.Collect(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to read flags: %w", err)
	}

	for _, opt := range launch.Options() {
		if !opt.HasArg {
			continue
		}
		if _, set := values[opt.Name]; set {
			continue
		}
		key := "options." + opt.Name
		if !viper.IsSet(key) {
			continue
		}
		if opt.Repeatable {
			values[opt.Name] = viper.GetStringSlice(key)
		} else {
			values.Add(opt.Name, viper.GetString(key))
		}
		logger.Debugf("Option %s taken from configuration", opt.Name)
	}

	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		entries := make([]string, 0, len(fileEnv)+len(values[launch.OptShellEnv]))
		for _, key := range slices.Sorted(maps.Keys(fileEnv)) {
			entries = append(entries, key+"="+fileEnv[key])
		}
		values[launch.OptShellEnv] = append(entries, values[launch.OptShellEnv]...)
	}

	return launch.Parse(values)
}

// ceilings are the resource limits a configuration is verified against
type ceilings struct {
	maxMemoryMB int
	maxVcores   int
	source      string
}

func (c ceilings) bounded() bool {
	return c.maxMemoryMB != math.MaxInt || c.maxVcores != math.MaxInt
}

// resolveCeilings picks ceilings from flags, then the selected cluster
// profile, then the cluster.* configuration keys. Unknown limits stay
// unbounded.
func resolveCeilings(cmd *cobra.Command) (ceilings, error) {
	c := ceilings{maxMemoryMB: math.MaxInt, maxVcores: math.MaxInt}

	clusters, err := config.LoadClusters()
	if err != nil {
		return c, fmt.Errorf("failed to load clusters: %w", err)
	}
	if clusterName != "" || clusters.Default != "" {
		cluster, err := clusters.Find(clusterName)
		if err != nil {
			return c, err
		}
		c.maxMemoryMB, c.maxVcores = cluster.MaxMemoryMB, cluster.MaxVcores
		c.source = "cluster " + cluster.Name
	} else if viper.IsSet("cluster.max_memory_mb") || viper.IsSet("cluster.max_vcores") {
		if viper.IsSet("cluster.max_memory_mb") {
			c.maxMemoryMB = viper.GetInt("cluster.max_memory_mb")
		}
		if viper.IsSet("cluster.max_vcores") {
			c.maxVcores = viper.GetInt("cluster.max_vcores")
		}
		c.source = "configuration"
	}

	if cmd.Flags().Changed("max-memory-mb") {
		c.maxMemoryMB, _ = cmd.Flags().GetInt("max-memory-mb")
		c.source = "flags"
	}
	if cmd.Flags().Changed("max-vcores") {
		c.maxVcores, _ = cmd.Flags().GetInt("max-vcores")
		c.source = "flags"
	}
	return c, nil
}

// verifyLaunchConfig checks cfg against the resolved ceilings, logging
// every violation, and makes sure the launch delay resolves
func verifyLaunchConfig(cmd *cobra.Command, cfg *launch.Config) error {
	limits, err := resolveCeilings(cmd)
	if err != nil {
		return err
	}

	if limits.bounded() {
		logger.Debugf("Verifying against %s: %s MB, %s vcores",
			limits.source, formatLimit(limits.maxMemoryMB), formatLimit(limits.maxVcores))
		err = cfg.Verify(limits.maxMemoryMB, limits.maxVcores)
	} else {
		logger.Debug("No resource ceilings known, checking for positive values only")
		err = cfg.VerifyPositive()
	}
	if err != nil {
		problems := multierr.Errors(err)
		for _, problem := range problems {
			logger.Error(problem)
		}
		return fmt.Errorf("invalid launch configuration (%d problem(s)): %w", len(problems), err)
	}

	if _, err := cfg.WorkerLaunchDelaySeconds(); err != nil {
		return fmt.Errorf("invalid --%s: %w", launch.OptWorkerLaunchDelay, err)
	}
	return nil
}

func formatLimit(n int) string {
	if n == math.MaxInt {
		return "unbounded"
	}
	return fmt.Sprint(n)
}
