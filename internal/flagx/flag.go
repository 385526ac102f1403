// Package flagx lets several loaders share os.Args without tripping over
// each other's flags: each loader picks out the flags it owns and parses
// only those.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in owned, together with their values.
// Both "-f value" and "-f=value" (or "--f=value") forms are recognised.
// A value is taken from the next argument only if it does not start with '-'.
// The result is never nil.
func FilterArgs(args []string, owned []string) []string {
	set := make(map[string]bool, len(owned))
	for _, name := range owned {
		set[name] = true
	}

	out := []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		if name, _, found := strings.Cut(arg, "="); found {
			if set[name] {
				out = append(out, arg)
			}
			continue
		}
		if !set[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// lookupString returns the value of a string flag known under any of names.
func lookupString(args []string, names ...string) string {
	owned := make([]string, 0, len(names)*2)
	for _, n := range names {
		owned = append(owned, "-"+n, "--"+n)
	}

	var value string
	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, "", "")
	}
	_ = fs.Parse(FilterArgs(args, owned))
	return value
}

// JsonConfigFlags returns the JSON config path given with -c or -config.
func JsonConfigFlags() string {
	return lookupString(os.Args[1:], "c", "config")
}

// EnvFileFlags returns the dotenv path given with -env-file.
func EnvFileFlags() string {
	return lookupString(os.Args[1:], "env-file")
}
