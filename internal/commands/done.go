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
	Register(&DoneCmd{})
}

// DoneCmd toggles the completion flag of a task.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskdeck done <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	ref := args[0]

	if code := loadCollection(ctx, a, errOut); code >= 0 {
		return code
	}

	view, _ := task.Derive(a.Engine.Tasks(), savedFilter(a))
	t, err := resolveTask(a, view, ref)
	if err != nil {
		return reportRefErr(errOut, ref, err)
	}

	if err := a.Engine.ToggleCompletion(ctx, t.ID); err != nil {
		fmt.Fprintf(errOut, "error: failed to update task: %v\n", err)
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
