package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/picogrid/dyno-launch/pkg/launch"
	"github.com/picogrid/dyno-launch/pkg/logger"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a launch configuration",
	Long: `Parse the launch options and validate them against the resource ceilings
of the selected cluster profile, the --max-memory-mb/--max-vcores flags or
the cluster.* configuration keys. Without any ceiling only positive values
are required.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	addLaunchFlags(verifyCmd)
	addCeilingFlags(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadLaunchConfig(cmd)
	if err != nil {
		return err
	}

	if err := verifyLaunchConfig(cmd, cfg); err != nil {
		return err
	}

	printSummary(cfg)
	logger.Success("Launch configuration is valid")
	return nil
}

func printSummary(cfg *launch.Config) {
	delay, _ := cfg.WorkerLaunchDelaySeconds()

	metrics := "disabled"
	if cfg.MetricsEnabled() {
		metrics = formatSeconds(int64(cfg.CoordinatorMetricsPeriodSec()))
	}

	logger.LogSection("Launch configuration")
	logger.LogKeyValue("NameNode memory (MB)", cfg.CoordinatorMemoryMB())
	logger.LogKeyValue("NameNode vcores", cfg.CoordinatorVirtualCores())
	logger.LogKeyValue("NameNode args", cfg.CoordinatorExtraArgs())
	logger.LogKeyValue("NameNode metrics period", metrics)
	logger.LogKeyValue("DataNode memory (MB)", cfg.WorkerMemoryMB())
	logger.LogKeyValue("DataNode vcores", cfg.WorkerVirtualCores())
	logger.LogKeyValue("DataNode args", cfg.WorkerExtraArgs())
	logger.LogKeyValue("DataNodes per container", cfg.WorkersPerContainer())
	logger.LogKeyValue("DataNode launch delay", formatSeconds(delay))
	logger.LogKeyValue("Environment entries", len(cfg.OriginalEnv()))
}

func formatSeconds(s int64) string {
	return (time.Duration(s) * time.Second).String()
}
