package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/weekplan/internal/tree"
	"github.com/spf13/pflag"
)

// flagSetValue collects task flags from a comma-separated list such as
// "important,urgent". Repeating the option appends.
type flagSetValue struct {
	flags []tree.Flag
}

var _ pflag.Value = (*flagSetValue)(nil)

func (v *flagSetValue) String() string {
	names := make([]string, len(v.flags))
	for i, f := range v.flags {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

func (v *flagSetValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		f, ok := tree.ParseFlag(name)
		if !ok {
			return fmt.Errorf("unknown flag %q (want one of %s)", name, flagNames())
		}
		if !v.has(f) {
			v.flags = append(v.flags, f)
		}
	}
	return nil
}

func (v *flagSetValue) Type() string {
	return "flags"
}

func (v *flagSetValue) has(f tree.Flag) bool {
	for _, existing := range v.flags {
		if existing == f {
			return true
		}
	}
	return false
}

func flagNames() string {
	names := make([]string, len(tree.Flags))
	for i, f := range tree.Flags {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
