package term

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// CmdDesc maps a command to its alias and a short description.
var CmdDesc = map[string][2]string{
	"new":             {"n", "generate an outline from a search query"},
	"edit":            {"e", "edit an article's outline or enrichment"},
	"ls":              {"", "list articles"},
	"show":            {"s", "show an article brief"},
	"rm":              {"", "delete articles"},
	"publish":         {"", "mark an article as published"},
	"unpublish":       {"", "move an article back to draft"},
	"export":          {"", "export an article brief as markdown or html"},
	"config":          {"", "show the cli config"},
	"config set-host": {"", "point the cli at a server"},
}

func PrintCmds(prefix string, cmds ...string) {
	printCmds(os.Stderr, prefix, []color.Attribute{color.Bold, color.FgHiWhite, color.BgCyan}, cmds...)
}

func printCmds(w io.Writer, prefix string, colors []color.Attribute, cmds ...string) {
	for _, cmd := range cmds {
		config, ok := CmdDesc[cmd]
		if !ok {
			continue
		}

		alias := config[0]
		desc := config[1]
		if alias != "" {
			if strings.HasPrefix(cmd, alias) {
				cmd = strings.Replace(cmd, alias, fmt.Sprintf("(%s)", alias), 1)
			} else {
				cmd = fmt.Sprintf("%s (%s)", cmd, alias)
			}
		}
		styled := color.New(colors...).Sprintf(" planner %s ", cmd)

		fmt.Fprintf(w, "%s%s 👉 %s\n", prefix, styled, desc)
	}
}
