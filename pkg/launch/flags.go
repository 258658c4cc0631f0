package launch

import (
	"io"

	"github.com/spf13/pflag"
)

// Register adds every schema option to fs. Repeatable options become
// string arrays, value options strings and switches bools.
func Register(fs *pflag.FlagSet) {
	for _, opt := range schema {
		if fs.Lookup(opt.Name) != nil {
			continue
		}
		switch {
		case opt.Repeatable:
			fs.StringArray(opt.Name, nil, opt.Help)
		case opt.HasArg:
			fs.String(opt.Name, opt.Default, opt.Help)
		default:
			fs.Bool(opt.Name, false, opt.Help)
		}
	}
}

// Collect returns the values of the schema options that were set on fs.
// Options left at their default are omitted so Parse can apply its own.
func Collect(fs *pflag.FlagSet) (Values, error) {
	values := Values{}
	for _, opt := range schema {
		if !opt.HasArg {
			continue
		}
		flag := fs.Lookup(opt.Name)
		if flag == nil || !flag.Changed {
			continue
		}
		if opt.Repeatable {
			vals, err := fs.GetStringArray(opt.Name)
			if err != nil {
				return nil, err
			}
			values[opt.Name] = append([]string(nil), vals...)
			continue
		}
		values.Add(opt.Name, flag.Value.String())
	}
	return values, nil
}

// ParseArgs parses a raw argument list, as received by the child process,
// into a Config
func ParseArgs(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("dyno-launch", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	values, err := Collect(fs)
	if err != nil {
		return nil, err
	}
	return Parse(values)
}
