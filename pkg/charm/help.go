package charm

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brimdata/serql/pkg/terminal"
	"github.com/brimdata/serql/pkg/terminal/color"
	"github.com/kr/text"
)

var helpOutput io.Writer = os.Stderr

var Help = &Spec{
	Name:  "help",
	Usage: "help [command]",
	Short: "display help for a command",
	Long: `
For help on the top-level command just type "help".
For help on a subcommand, type "help command" where command is the name of
the command.  For help on command nested further, type "help cmd1 cmd2" and
so forth.`,
	HiddenFlags: "v",
	New: func(parent Command, f *flag.FlagSet) (Command, error) {
		c := &HelpCommand{}
		f.BoolVar(&c.vflag, "v", false, "show hidden commands and flags")
		return c, nil
	},
}

type HelpCommand struct {
	vflag bool
}

func (c *HelpCommand) Run(args []string) error {
	p, err := lookupPath(Help.root(), args)
	if err != nil {
		return err
	}
	displayHelp(p, c.vflag)
	return nil
}

// splitFlags is like strings.Split with a comma and also trims whitespace
func splitFlags(flags string) []string {
	var out []string
	for _, flag := range strings.Split(flags, ",") {
		out = append(out, strings.TrimSpace(flag))
	}
	return out
}

// flagMap creates a map that maps a name to a boolean based on the existence
// of that name in the comma-separated string of flags.  Whitespace is removed
// from each name in the flags list.  A map that contains no entries is returned
// for an empty string.
func flagMap(flags string) map[string]bool {
	m := make(map[string]bool)
	if flags == "" {
		return m
	}
	for _, flag := range splitFlags(flags) {
		m[flag] = true
	}
	return m
}

func formatParagraph(body, tab string, lineWidth int) string {
	paragraphs := strings.Split(body, "\n\n")
	var chunks []string
	for _, paragraph := range paragraphs {
		var chunk string
		if len(paragraph) < lineWidth {
			chunk = strings.TrimRight(paragraph, " \t\n")
		} else {
			paragraph = strings.TrimSpace(paragraph)
			paragraph = text.Wrap(paragraph, lineWidth)
			lines := strings.Split(paragraph, "\n")
			chunk = strings.Join(lines, "\n"+tab)
		}
		chunks = append(chunks, chunk)
	}
	body = strings.Join(chunks, "\n\n"+tab)
	body = strings.TrimRight(body, " \t\n")
	return tab + body + "\n\n"
}

const tab = "    "

func header(heading string) string {
	return color.Bold.Wrap(heading)
}

func helpItem(heading, body string) {
	fmt.Fprint(helpOutput, header(heading)+"\n"+tab+body+"\n\n")
}

func helpDesc(heading, body string) {
	body = tab + strings.TrimSpace(body) + "\n\n"
	lineWidth := terminal.Width() - len(tab) - 5
	if len(body) > lineWidth {
		body = formatParagraph(body, tab, lineWidth)
	}
	fmt.Fprint(helpOutput, header(heading)+"\n"+body)
}

func helpList(heading string, lines []string) {
	body := strings.Join(lines, "\n"+tab)
	fmt.Fprint(helpOutput, header(heading)+"\n"+tab+body+"\n\n")
}

func commands(target *Spec, vflag bool) []string {
	var lines []string
	for _, cmd := range target.children {
		name := cmd.Name
		if cmd.Hidden {
			if !vflag {
				continue
			}
			name = "[" + name + "]"
		}
		lines = append(lines, name+" - "+cmd.Short)
	}
	return lines
}

func buildOptions(p path, parentCmd string, vflag bool) []string {
	if len(p) == 1 {
		options := p[0].options(vflag)
		if len(options) == 0 {
			options = []string{"no flags for this command"}
		}
		return options
	}
	pathCmd := p[0].spec.Name
	if parentCmd != "" {
		pathCmd = parentCmd + " " + pathCmd
	}
	childOptions := buildOptions(p[1:], pathCmd, vflag)
	options := p[0].options(vflag)
	if len(options) == 0 {
		return childOptions
	}
	// Separate the parent's flags under a header naming the parent path.
	childOptions = append(childOptions, "", "["+pathCmd+" flags]")
	return append(childOptions, options...)
}

func displayHelp(p path, vflag bool) {
	spec := p.last().spec
	helpItem("NAME", spec.Name+" - "+spec.Short)
	helpDesc("USAGE", spec.Usage)
	helpList("OPTIONS", buildOptions(p, "", vflag))
	if len(spec.children) > 0 {
		helpList("COMMANDS", commands(spec, vflag))
	}
	if spec.Long != "" {
		helpDesc("DESCRIPTION", spec.Long)
	}
}
