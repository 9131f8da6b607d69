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
	Register(&RmCmd{})
}

// RmCmd deletes a task.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskdeck rm <ref>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
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

	if err := a.Engine.Remove(ctx, t.ID); err != nil {
		fmt.Fprintf(errOut, "error: failed to delete task: %v\n", err)
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "task deleted")
	}
	return exitcode.Success
}
