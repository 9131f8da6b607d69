package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/app"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/prefs"
	"taskdeck/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: load the collection, derive the
// filtered view, print progress and tasks.
type ListCmd struct {
	priority string
	status   string
	tag      string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskdeck list [--priority <p>] [--status <s>] [--tag <t>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.StringVar(&c.tag, "tag", "", "")
	fs.StringVar(&c.tag, "t", "", "")
}

func (c *ListCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	filter := savedFilter(a)

	// Explicit flags override the saved filters and become the new
	// last-used selection. The tag criterion is per-invocation only.
	persist := false
	if c.priority != "" {
		if c.priority != task.FilterAll {
			if _, err := task.ParsePriority(c.priority); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.UserError
			}
		}
		filter.Priority = c.priority
		persist = true
	}
	if c.status != "" {
		switch c.status {
		case task.FilterAll, task.StatusActive, task.StatusCompleted:
		default:
			fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
			return exitcode.UserError
		}
		filter.Status = c.status
		persist = true
	}
	if c.tag != "" {
		filter.Tag = c.tag
	}

	if code := loadCollection(ctx, a, errOut); code >= 0 {
		return code
	}

	if persist {
		a.Prefs.FilterPriority = filter.Priority
		a.Prefs.FilterStatus = filter.Status
		a.SavePrefs()
	}

	view, stats := task.Derive(a.Engine.Tasks(), filter)

	p := output.NewPrinter(out, a.Config.Color, a.Prefs.Theme == prefs.ThemeDark)
	if stats.Total == 0 {
		if !a.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	p.Progress(stats)
	if len(view) == 0 {
		if !a.Config.Quiet {
			fmt.Fprintln(out, "no tasks match your filters")
		}
		return exitcode.Success
	}
	for i, t := range view {
		p.Task(i+1, t)
	}
	return exitcode.Success
}
