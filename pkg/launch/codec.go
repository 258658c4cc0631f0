package launch

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Values maps option names to the raw values given for them, in order
type Values map[string][]string

// Add appends a value for the named option
func (v Values) Add(name, value string) {
	v[name] = append(v[name], value)
}

// Get returns the last value given for the named option
func (v Values) Get(name string) (string, bool) {
	vals := v[name]
	if len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

func (v Values) stringOr(name string) string {
	if s, ok := v.Get(name); ok {
		return s
	}
	return defaultFor(name)
}

func (v Values) intOr(name string) (int, error) {
	s := v.stringOr(name)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Option: name, Value: s, Err: err}
	}
	return n, nil
}

// Parse builds a Config from option values. Options that are absent take
// their schema default. Parse does not validate ranges.
func Parse(values Values) (*Config, error) {
	var p Params
	ints := []struct {
		name string
		dst  *int
	}{
		{OptWorkerMemoryMB, &p.WorkerMemoryMB},
		{OptWorkerVcores, &p.WorkerVirtualCores},
		{OptWorkersPerContainer, &p.WorkersPerContainer},
		{OptCoordinatorMemoryMB, &p.CoordinatorMemoryMB},
		{OptCoordinatorVcores, &p.CoordinatorVirtualCores},
		{OptCoordinatorMetrics, &p.CoordinatorMetricsPeriodSec},
	}
	for _, f := range ints {
		n, err := values.intOr(f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = n
	}

	p.WorkerExtraArgs = values.stringOr(OptWorkerArgs)
	p.WorkerLaunchDelay = values.stringOr(OptWorkerLaunchDelay)
	p.CoordinatorExtraArgs = values.stringOr(OptCoordinatorArgs)
	p.Env = ParseEnv(values[OptShellEnv])

	return New(p), nil
}

// ParseEnv turns KEY=VALUE entries into a map. Each entry is trimmed and
// split on its first '='; an entry without '=' maps the whole entry to the
// empty string. Later duplicates overwrite earlier ones.
func ParseEnv(entries []string) map[string]string {
	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, val, _ := strings.Cut(strings.TrimSpace(entry), "=")
		env[key] = val
	}
	return env
}

// Serialize renders cfg as "--name value" tokens that ParseArgs accepts
// once they have passed through CommandLine and Tokenize. Only the
// original environment is emitted; the synthesized keys are rebuilt by
// the receiving side.
func Serialize(cfg *Config) []string {
	p := cfg.params
	var args []string
	add := func(name, value string) {
		args = append(args, "--"+name+" "+value)
	}

	add(OptWorkerMemoryMB, strconv.Itoa(p.WorkerMemoryMB))
	add(OptWorkerVcores, strconv.Itoa(p.WorkerVirtualCores))
	if p.WorkerExtraArgs != "" {
		add(OptWorkerArgs, quoteForChild(p.WorkerExtraArgs))
	}
	add(OptWorkersPerContainer, strconv.Itoa(p.WorkersPerContainer))
	add(OptWorkerLaunchDelay, wordForChild(p.WorkerLaunchDelay))
	add(OptCoordinatorMemoryMB, strconv.Itoa(p.CoordinatorMemoryMB))
	add(OptCoordinatorVcores, strconv.Itoa(p.CoordinatorVirtualCores))
	if p.CoordinatorExtraArgs != "" {
		add(OptCoordinatorArgs, quoteForChild(p.CoordinatorExtraArgs))
	}
	add(OptCoordinatorMetrics, strconv.Itoa(p.CoordinatorMetricsPeriodSec))
	for _, key := range slices.Sorted(maps.Keys(p.Env)) {
		add(OptShellEnv, wordForChild(key+"="+p.Env[key]))
	}
	return args
}

// CommandLine joins serialized tokens into the string embedded in the
// child's launch script
func CommandLine(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Tokenize splits a command line produced by CommandLine back into
// arguments. The line is first unescaped as the body of a double-quoted
// script, then word-split the way /bin/sh would.
func Tokenize(line string) ([]string, error) {
	script, err := shellquote.Split(`"` + line + `"`)
	if err != nil {
		return nil, fmt.Errorf("unescape command line: %w", err)
	}
	if len(script) != 1 {
		return nil, fmt.Errorf("unescape command line: unbalanced quoting")
	}
	words, err := shellquote.Split(script[0])
	if err != nil {
		return nil, fmt.Errorf("split command line: %w", err)
	}
	return words, nil
}

// quoteForChild wraps s in escaped double quotes so that it stays one word
// after both shell passes
func quoteForChild(s string) string {
	return `\"` + escapeDoubleQuoted(escapeDoubleQuoted(s)) + `\"`
}

// wordForChild leaves plain words alone and quotes the rest
func wordForChild(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]#~{}") {
		return quoteForChild(s)
	}
	return s
}

var doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

func escapeDoubleQuoted(s string) string {
	return doubleQuoteEscaper.Replace(s)
}
