package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskdeck/internal/app"
	"taskdeck/internal/engine"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/task"
)

// errAmbiguousRef is returned when an id prefix matches more than one task.
var errAmbiguousRef = errors.New("ambiguous task reference")

// loadCollection fills the engine from the remote store, reporting failures
// the standard way. Returns an exit code, or -1 on success.
func loadCollection(ctx context.Context, a *app.App, errOut io.Writer) int {
	if err := a.Engine.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: failed to load tasks: %v\n", err)
		return exitcode.BackendError
	}
	return -1
}

// savedFilter is the filter the user last saw on a plain list run. Numeric
// references resolve against the view it produces.
func savedFilter(a *app.App) task.Filter {
	return task.Filter{
		Priority: a.Prefs.FilterPriority,
		Status:   a.Prefs.FilterStatus,
		Tag:      task.FilterAll,
	}
}

// resolveTask turns a user-supplied reference into a task. A positive
// integer is a 1-based index into view; anything else matches an exact id
// first, then a unique id prefix over the whole collection.
func resolveTask(a *app.App, view []task.Task, ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(view) {
			return task.Task{}, fmt.Errorf("task number out of range: %d", n)
		}
		return view[n-1], nil
	}

	if t, ok := a.Engine.Find(ref); ok {
		return t, nil
	}

	var matches []task.Task
	for _, t := range a.Engine.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, engine.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, errAmbiguousRef
	}
}

// reportRefErr prints a resolution failure and returns the exit code.
func reportRefErr(errOut io.Writer, ref string, err error) int {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		fmt.Fprintf(errOut, "error: task not found: %s\n", ref)
	case errors.Is(err, errAmbiguousRef):
		fmt.Fprintf(errOut, "error: ambiguous task reference: %s\n", ref)
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

// tagsFlag collects repeated --tag flags.
type tagsFlag []string

func (f *tagsFlag) String() string { return strings.Join(*f, ",") }

func (f *tagsFlag) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("empty tag")
	}
	*f = append(*f, v)
	return nil
}
