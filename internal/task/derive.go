package task

import (
	"math"
	"sort"
)

// FilterAll is the criterion value that disables a filter dimension.
// An empty string is treated the same way.
const FilterAll = "all"

// Status filter values.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Filter selects a subset of the collection. Each criterion independently
// defaults to "all" (no constraint).
type Filter struct {
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Tag      string `json:"tag"`
}

// DefaultFilter returns a filter that matches everything.
func DefaultFilter() Filter {
	return Filter{Priority: FilterAll, Status: FilterAll, Tag: FilterAll}
}

// Stats are aggregate counts over the unfiltered collection.
type Stats struct {
	Total           int
	Completed       int
	Active          int
	ProgressPercent int
}

// Derive computes the filtered, priority-sorted view of tasks plus progress
// statistics. It is pure: the input slice is never mutated and identical
// inputs always produce identical outputs. Stats are computed over the
// unfiltered input, so narrowing the view never changes the progress line.
// The sort is stable; tasks of equal priority keep their input order.
func Derive(tasks []Task, f Filter) ([]Task, Stats) {
	view := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.matches(t) {
			view = append(view, t)
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].Priority.Rank() < view[j].Priority.Rank()
	})

	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	if st.Total > 0 {
		st.ProgressPercent = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return view, st
}

func (f Filter) matches(t Task) bool {
	if !pass(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	switch {
	case pass(f.Status):
	case f.Status == StatusActive:
		if t.Completed {
			return false
		}
	case f.Status == StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if !pass(f.Tag) && !HasTag(t.Tags, f.Tag) {
		return false
	}
	return true
}

func pass(criterion string) bool {
	return criterion == "" || criterion == FilterAll
}
