package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/dyno-launch/pkg/logger"
)

var (
	cfgFile     string
	clusterName string
	logLevel    string
	noColor     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dyno-launch",
	Short: "Launch configuration tool for simulated HDFS clusters",
	Long: `dyno-launch parses, validates and renders the launch configuration of a
simulated cluster: resource requests for the NameNode and DataNode
containers, their extra arguments, DataNode density and launch timing,
and the environment handed to every container.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dyno-launch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&clusterName, "cluster", "", "cluster profile supplying resource ceilings")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(clusterCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	logger.SetLevel(logger.ParseLevel(logLevel))
	logger.SetNoColor(noColor)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME/.dyno-launch")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// options.datanode_vcores can be set as DYNO_OPTIONS_DATANODE_VCORES
	viper.SetEnvPrefix("DYNO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debugf("Using config file %s", viper.ConfigFileUsed())
	}
}
