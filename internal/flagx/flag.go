// Package flagx helps several independent parsers share one command line.
//
// Each config source (JSON loader, flag overlay) only looks at the flags it
// owns, so unknown flags of other sources never abort parsing.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args.
//
// Both "-name value" and "-name=value" forms are recognised. Go's flag
// package treats "-name" and "--name" alike, so either spelling in args
// matches either spelling in allowedFlags. A following token that starts
// with "-" is never consumed as a value. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[bareName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := allowed[bareName(name)]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue {
			continue
		}

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func bareName(f string) string {
	return strings.TrimLeft(f, "-")
}

// ConfigPath returns the JSON config file path given via -c or -config, or
// an empty string. Other flags in args are ignored. When both are present
// the last one wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-path", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
