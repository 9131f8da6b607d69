// Package engine owns the in-memory task collection and keeps it in sync
// with the remote store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

// ErrNotFound is returned when an id does not address a task in the local
// collection.
var ErrNotFound = errors.New("task not found")

// Operation names carried by OpError.
const (
	OpLoad   = "load"
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// OpError reports a failed collection operation. The local collection is
// never left partially applied: a failed operation leaves it exactly as it
// was before the call.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *OpError) Unwrap() error { return e.Err }

// Engine is the single owner of the authoritative task collection for one
// user. The canonical order is createdAt descending, so newly created tasks
// appear first without the view layer mutating stored order.
//
// Every mutating call is one round trip to the store; there is no retry and
// no optimistic locking. The last successful write for an id wins.
type Engine struct {
	store  store.TaskStore
	userID string
	tasks  []task.Task

	nowMillis func() int64
	newID     func() string
}

// New creates an engine for userID with an empty collection.
func New(ts store.TaskStore, userID string) *Engine {
	return &Engine{
		store:     ts,
		userID:    userID,
		nowMillis: func() int64 { return time.Now().UnixMilli() },
		newID:     uuid.NewString,
	}
}

// Tasks returns a copy of the collection in canonical order.
func (e *Engine) Tasks() []task.Task {
	out := make([]task.Task, len(e.tasks))
	copy(out, e.tasks)
	return out
}

// Len returns the collection size.
func (e *Engine) Len() int { return len(e.tasks) }

// Load fetches the full task list and replaces the collection wholesale.
// On failure the collection remains whatever it was.
func (e *Engine) Load(ctx context.Context) error {
	fetched, err := e.store.List(ctx, e.userID)
	if err != nil {
		return &OpError{Op: OpLoad, Err: err}
	}
	sort.SliceStable(fetched, func(i, j int) bool {
		return fetched[i].CreatedAt > fetched[j].CreatedAt
	})
	e.tasks = fetched
	return nil
}

// Add validates, constructs, and stores a new task, prepending the
// server-confirmed record. A whitespace-only title is a silent no-op: the
// collection is unchanged and the store is never called.
func (e *Engine) Add(ctx context.Context, draft task.Draft) (*task.Task, error) {
	if !task.ValidTitle(draft.Title) {
		return nil, nil
	}
	priority := draft.Priority
	if priority == "" {
		priority = task.DefaultPriority
	}

	t := task.Task{
		ID:        e.newID(),
		UserID:    e.userID,
		Title:     draft.Title,
		Completed: false,
		Priority:  priority,
		Tags:      draft.Tags,
		CreatedAt: e.nowMillis(),
	}

	created, err := e.store.Create(ctx, t)
	if err != nil {
		return nil, &OpError{Op: OpAdd, Err: err}
	}
	e.tasks = append([]task.Task{created}, e.tasks...)
	return &created, nil
}

// ToggleCompletion flips the completed flag of the task addressed by id and
// sends the full record. The local entry is replaced only on success.
func (e *Engine) ToggleCompletion(ctx context.Context, id string) error {
	i := e.index(id)
	if i < 0 {
		return &OpError{Op: OpUpdate, Err: ErrNotFound}
	}
	flipped := e.tasks[i].Clone()
	flipped.Completed = !flipped.Completed

	updated, err := e.store.Replace(ctx, flipped)
	if err != nil {
		return &OpError{Op: OpUpdate, Err: err}
	}
	e.tasks[i] = updated
	return nil
}

// Update sends an arbitrary field delta (title, priority, tags) as a full
// replace and commits it in place on success.
func (e *Engine) Update(ctx context.Context, t task.Task) error {
	i := e.index(t.ID)
	if i < 0 {
		return &OpError{Op: OpUpdate, Err: ErrNotFound}
	}

	updated, err := e.store.Replace(ctx, t)
	if err != nil {
		return &OpError{Op: OpUpdate, Err: err}
	}
	e.tasks[i] = updated
	return nil
}

// Remove deletes the task addressed by id. The entry stays in the
// collection when the delete fails.
func (e *Engine) Remove(ctx context.Context, id string) error {
	i := e.index(id)
	if i < 0 {
		return &OpError{Op: OpDelete, Err: ErrNotFound}
	}
	if err := e.store.Delete(ctx, id); err != nil {
		return &OpError{Op: OpDelete, Err: err}
	}
	e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
	return nil
}

// Find returns the task addressed by id.
func (e *Engine) Find(id string) (task.Task, bool) {
	i := e.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return e.tasks[i], true
}

func (e *Engine) index(id string) int {
	for i, t := range e.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
