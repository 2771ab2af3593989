package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// parse walks args down the command tree rooted at spec, creating an
// instance for each command and parsing its flags.  It returns the
// instances along the path, the arguments left for the last command,
// and whether hidden help was requested.
func parse(spec *Spec, args []string, parent Command) (path, []string, bool, error) {
	var p path
	var showHidden bool
	for {
		inst, err := newInstance(parent, spec)
		if err != nil {
			return nil, nil, false, err
		}
		p = append(p, inst)
		inst.flags.SetOutput(io.Discard)
		var hidden bool
		if spec.parent == nil {
			inst.flags.BoolVar(&hidden, "hidden", false, "show hidden options")
		}
		if err := inst.flags.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return p, nil, showHidden || hidden, NeedHelp
			}
			return p, nil, false, fmt.Errorf("%s: %w", p.names(), err)
		}
		showHidden = showHidden || hidden
		rest := inst.flags.Args()
		if len(rest) == 0 {
			return p, rest, showHidden, nil
		}
		child := spec.lookupSub(rest[0])
		if child == nil {
			return p, rest, showHidden, nil
		}
		spec, args, parent = child, rest[1:], inst.command
	}
}

// parseHelp locates the command named by args without running any
// constructor side effects beyond flag setup.  Flags are ignored.
func parseHelp(spec *Spec, args []string) (path, error) {
	inst, err := newInstance(nil, spec)
	if err != nil {
		return nil, err
	}
	p := path{inst}
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		child := p.last().spec.lookupSub(arg)
		if child == nil {
			// Positional arguments end the command path.
			break
		}
		inst, err := newInstance(p.last().command, child)
		if err != nil {
			return nil, err
		}
		p = append(p, inst)
	}
	return p, nil
}

// lookupPath is like parseHelp but every arg must name a sub-command.
func lookupPath(root *Spec, args []string) (path, error) {
	p, err := parseHelp(root, args)
	if err != nil {
		return nil, err
	}
	if len(p) != len(args)+1 {
		return nil, fmt.Errorf("no such command: %s", strings.Join(args, " "))
	}
	return p, nil
}
