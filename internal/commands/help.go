package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/app"
	"taskdeck/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdeck help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                           List tasks with saved filters
  taskdeck list [--priority <p>] [--status <s>] [--tag <t>]
  taskdeck add [--priority <p>] [--tag <t>]... <title...>
  taskdeck done <ref>                                Toggle completion
  taskdeck edit [--title <t>] [--priority <p>] [--tag <t>]... <ref>
  taskdeck rm <ref>
  taskdeck theme [light|dark]
  taskdeck register <email> <password>
  taskdeck login <email> <password>
  taskdeck logout
  taskdeck whoami
  taskdeck help
  taskdeck version

A <ref> is the number shown by list (against your saved filters), a task id,
or a unique id prefix. Priorities: low, medium, high. Statuses: all, active,
completed.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --color          Styled output
`
