// Package task defines the task data model and the pure view derivation.
package task

import (
	"fmt"
	"strings"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	// DefaultPriority is used when a draft carries no priority.
	DefaultPriority = PriorityMedium
)

// ParsePriority validates a priority string. Empty input yields the default.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultPriority, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}

// Rank returns the display order of a priority: high sorts first.
// Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Task is a single user-owned to-do record. Field names on the wire follow
// the backend contract (camelCase, userId scoping).
type Task struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId,omitempty"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"` // epoch milliseconds, immutable
}

// Draft carries the user-supplied fields for a new task.
type Draft struct {
	Title    string
	Priority Priority
	Tags     []string
}

// ValidTitle reports whether a title is acceptable for creation.
// Whitespace-only titles are rejected.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// ToggleTag flips membership of tag in tags: present is removed, absent is
// appended. Relative order of the remaining tags is preserved and duplicates
// never accumulate.
func ToggleTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags)+1)
	found := false
	for _, t := range tags {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}

// HasTag reports whether tags contains tag.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of t. The tag slice is copied so callers can
// mutate the clone without aliasing the original.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = make([]string, len(t.Tags))
		copy(c.Tags, t.Tags)
	}
	return c
}
