// Package launch holds the launch configuration of a simulated cluster:
// resource requests for the coordinator (NameNode) and worker (DataNode)
// roles, their extra arguments, timing parameters and the environment
// handed to their containers. It parses that configuration from options,
// validates it against cluster ceilings and serializes it back into an
// argument vector for a child process.
package launch

import (
	"maps"
	"strconv"
)

// Environment keys synthesized into every derived environment
const (
	EnvCoordinatorArgs          = "NN_ADDITIONAL_ARGS"
	EnvWorkerArgs               = "DN_ADDITIONAL_ARGS"
	EnvCoordinatorMetricsPeriod = "NN_FILE_METRIC_PERIOD"
)

// Params is the input used to build a Config
type Params struct {
	WorkerMemoryMB      int    `yaml:"datanode_memory_mb"`
	WorkerVirtualCores  int    `yaml:"datanode_vcores"`
	WorkerExtraArgs     string `yaml:"datanode_args,omitempty"`
	WorkersPerContainer int    `yaml:"datanodes_per_cluster"`
	WorkerLaunchDelay   string `yaml:"datanode_launch_delay"`

	CoordinatorMemoryMB         int    `yaml:"namenode_memory_mb"`
	CoordinatorVirtualCores     int    `yaml:"namenode_vcores"`
	CoordinatorExtraArgs        string `yaml:"namenode_args,omitempty"`
	CoordinatorMetricsPeriodSec int    `yaml:"namenode_metrics_period"`

	// Env is the user-supplied environment for the launched containers
	Env map[string]string `yaml:"shell_env,omitempty"`
}

// Config is an immutable set of launch parameters. The zero value is not
// useful; build one with New or Parse.
type Config struct {
	params     Params
	derivedEnv map[string]string
}

// New builds a Config from params. It never fails and performs no
// validation; call Verify or VerifyPositive for that.
func New(params Params) *Config {
	original := make(map[string]string, len(params.Env))
	maps.Copy(original, params.Env)
	params.Env = original

	derived := make(map[string]string, len(original)+3)
	maps.Copy(derived, original)
	derived[EnvCoordinatorArgs] = params.CoordinatorExtraArgs
	derived[EnvWorkerArgs] = params.WorkerExtraArgs
	derived[EnvCoordinatorMetricsPeriod] = strconv.Itoa(params.CoordinatorMetricsPeriodSec)

	return &Config{
		params:     params,
		derivedEnv: derived,
	}
}

// Params returns a copy of the parameters the Config was built from
func (c *Config) Params() Params {
	p := c.params
	p.Env = c.OriginalEnv()
	return p
}

func (c *Config) WorkerMemoryMB() int          { return c.params.WorkerMemoryMB }
func (c *Config) WorkerVirtualCores() int      { return c.params.WorkerVirtualCores }
func (c *Config) WorkerExtraArgs() string      { return c.params.WorkerExtraArgs }
func (c *Config) WorkersPerContainer() int     { return c.params.WorkersPerContainer }
func (c *Config) WorkerLaunchDelay() string    { return c.params.WorkerLaunchDelay }
func (c *Config) CoordinatorMemoryMB() int     { return c.params.CoordinatorMemoryMB }
func (c *Config) CoordinatorVirtualCores() int { return c.params.CoordinatorVirtualCores }
func (c *Config) CoordinatorExtraArgs() string { return c.params.CoordinatorExtraArgs }

// CoordinatorMetricsPeriodSec returns the metrics emission period; values
// <= 0 mean file metrics are disabled
func (c *Config) CoordinatorMetricsPeriodSec() int {
	return c.params.CoordinatorMetricsPeriodSec
}

// MetricsEnabled reports whether the coordinator should emit file metrics
func (c *Config) MetricsEnabled() bool {
	return c.params.CoordinatorMetricsPeriodSec > 0
}

// WorkerLaunchDelaySeconds resolves the worker launch delay to whole
// seconds. An empty delay resolves to 0.
func (c *Config) WorkerLaunchDelaySeconds() (int64, error) {
	return ParseDuration(c.params.WorkerLaunchDelay)
}

// Env returns the environment for launched containers: the user
// environment overlaid with the synthesized keys.
func (c *Config) Env() map[string]string {
	return maps.Clone(c.derivedEnv)
}

// OriginalEnv returns the environment exactly as supplied by the user
func (c *Config) OriginalEnv() map[string]string {
	env := make(map[string]string, len(c.params.Env))
	maps.Copy(env, c.params.Env)
	return env
}
