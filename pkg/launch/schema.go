package launch

// Option names accepted on the command line
const (
	OptShellEnv            = "shell_env"
	OptCoordinatorMemoryMB = "namenode_memory_mb"
	OptCoordinatorVcores   = "namenode_vcores"
	OptCoordinatorArgs     = "namenode_args"
	OptCoordinatorMetrics  = "namenode_metrics_period"
	OptWorkerMemoryMB      = "datanode_memory_mb"
	OptWorkerVcores        = "datanode_vcores"
	OptWorkerArgs          = "datanode_args"
	OptWorkersPerContainer = "datanodes_per_cluster"
	OptWorkerLaunchDelay   = "datanode_launch_delay"
	OptHelp                = "help"
)

// Option describes one entry of the accepted option surface
type Option struct {
	Name string

	// HasArg is false for switches such as help
	HasArg bool

	// Repeatable options may be given more than once; every value is kept
	Repeatable bool

	Help string

	Default    string
	HasDefault bool
}

// schema is the single table of recognized options. Flag registration,
// the option listing and Parse defaults are all driven from it.
var schema = []Option{
	{
		Name:       OptShellEnv,
		HasArg:     true,
		Repeatable: true,
		Help:       "Environment for the launched containers, given as env_key=env_val pairs",
	},
	{
		Name:       OptCoordinatorMemoryMB,
		HasArg:     true,
		Help:       "Memory in MB requested for the NameNode container (default 2048). Only used when the NameNode runs inside the cluster.",
		Default:    "2048",
		HasDefault: true,
	},
	{
		Name:       OptCoordinatorVcores,
		HasArg:     true,
		Help:       "Virtual cores requested for the NameNode container (default 1). Only used when the NameNode runs inside the cluster.",
		Default:    "1",
		HasDefault: true,
	},
	{
		Name:       OptCoordinatorArgs,
		HasArg:     true,
		Help:       "Extra arguments passed when starting the NameNode. Only used when the NameNode runs inside the cluster.",
		Default:    "",
		HasDefault: true,
	},
	{
		Name:   OptCoordinatorMetrics,
		HasArg: true,
		Help: "Period in seconds at which the NameNode writes metrics to a file in its container logs; " +
			"a value <= 0 disables file metrics (default 60).",
		Default:    "60",
		HasDefault: true,
	},
	{
		Name:       OptWorkerMemoryMB,
		HasArg:     true,
		Help:       "Memory in MB requested for each DataNode container (default 2048)",
		Default:    "2048",
		HasDefault: true,
	},
	{
		Name:       OptWorkerVcores,
		HasArg:     true,
		Help:       "Virtual cores requested for each DataNode container (default 1)",
		Default:    "1",
		HasDefault: true,
	},
	{
		Name:       OptWorkerArgs,
		HasArg:     true,
		Help:       "Extra arguments passed when starting the DataNodes",
		Default:    "",
		HasDefault: true,
	},
	{
		Name:       OptWorkersPerContainer,
		HasArg:     true,
		Help:       "Number of simulated DataNodes to run in each container (default 1)",
		Default:    "1",
		HasDefault: true,
	},
	{
		Name:   OptWorkerLaunchDelay,
		HasArg: true,
		Help: "Window over which DataNode containers are launched; each container starts after a random " +
			"delay below this value. Accepts human-readable durations such as 10s or 1m (default 0s)",
		Default:    "0s",
		HasDefault: true,
	},
	{
		Name: OptHelp,
		Help: "Print usage",
	},
}

// Options returns a copy of the option table in registration order
func Options() []Option {
	out := make([]Option, len(schema))
	copy(out, schema)
	return out
}

// Lookup returns the option with the given name
func Lookup(name string) (Option, bool) {
	for _, opt := range schema {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}

func defaultFor(name string) string {
	opt, _ := Lookup(name)
	return opt.Default
}
