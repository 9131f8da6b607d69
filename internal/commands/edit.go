package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/app"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd updates title, priority, or tags of a task. --tag toggles
// membership: a present tag is removed, an absent one added.
type EditCmd struct {
	title    string
	priority string
	tags     tagsFlag
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [--title <t>] [--priority <p>] [--tag <t>]... <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.Var(&c.tags, "tag", "")
	fs.Var(&c.tags, "t", "")
}

func (c *EditCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	ref := args[0]

	if c.title == "" && c.priority == "" && len(c.tags) == 0 {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}
	if c.title != "" && !task.ValidTitle(c.title) {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if code := loadCollection(ctx, a, errOut); code >= 0 {
		return code
	}

	view, _ := task.Derive(a.Engine.Tasks(), savedFilter(a))
	t, err := resolveTask(a, view, ref)
	if err != nil {
		return reportRefErr(errOut, ref, err)
	}

	updated := t.Clone()
	if c.title != "" {
		updated.Title = c.title
	}
	if c.priority != "" {
		p, err := task.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		updated.Priority = p
	}
	for _, tg := range c.tags {
		updated.Tags = task.ToggleTag(updated.Tags, tg)
	}

	if err := a.Engine.Update(ctx, updated); err != nil {
		fmt.Fprintf(errOut, "error: failed to update task: %v\n", err)
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "task updated")
	}
	return exitcode.Success
}
