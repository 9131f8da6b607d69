package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/app"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority string
	tags     tagsFlag
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskdeck add [--priority <p>] [--tag <t>]... <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.Var(&c.tags, "tag", "")
	fs.Var(&c.tags, "t", "")
}

func (c *AddCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if !task.ValidTitle(title) {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	priority, err := task.ParsePriority(c.priority)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	created, err := a.Engine.Add(ctx, task.Draft{
		Title:    title,
		Priority: priority,
		Tags:     c.tags,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to add task: %v\n", err)
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "task added: %s\n", created.ID)
	}
	return exitcode.Success
}
