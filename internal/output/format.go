// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/task"
)

const (
	checkboxDone = "[x]"
	checkboxOpen = "[ ]"

	progressBarWidth = 20
)

// Printer renders tasks and progress to a writer. Styling degrades to plain
// text when color is off or the writer is not a terminal.
type Printer struct {
	w     io.Writer
	color bool

	high lipgloss.Style
	med  lipgloss.Style
	low  lipgloss.Style
	done lipgloss.Style
	tag  lipgloss.Style
}

// NewPrinter creates a printer for w. The dark flag picks the palette to
// match the persisted theme preference.
func NewPrinter(w io.Writer, color, dark bool) *Printer {
	p := &Printer{w: w, color: color}
	if !color {
		return p
	}
	r := lipgloss.NewRenderer(w)
	tagColor := lipgloss.Color("4")
	doneColor := lipgloss.Color("8")
	if dark {
		tagColor = lipgloss.Color("12")
		doneColor = lipgloss.Color("7")
	}
	p.high = r.NewStyle().Foreground(lipgloss.Color("9"))
	p.med = r.NewStyle().Foreground(lipgloss.Color("11"))
	p.low = r.NewStyle().Foreground(lipgloss.Color("10"))
	p.done = r.NewStyle().Foreground(doneColor).Strikethrough(true)
	p.tag = r.NewStyle().Foreground(tagColor)
	return p
}

// Task formats one task line.
// Format: "{N:>4}  {BOX} {PRIORITY:<6}  {TITLE}[  #tag...]\n"
func (p *Printer) Task(num int, t task.Task) {
	box := checkboxOpen
	if t.Completed {
		box = checkboxDone
	}

	title := normalizeTitle(t.Title)
	priority := string(t.Priority)
	if p.color {
		priority = p.priorityStyle(t.Priority).Render(priority)
		if t.Completed {
			title = p.done.Render(title)
		}
	}

	var tags strings.Builder
	for _, tg := range t.Tags {
		label := "#" + tg
		if p.color {
			label = p.tag.Render(label)
		}
		tags.WriteString("  ")
		tags.WriteString(label)
	}

	fmt.Fprintf(p.w, "%4d  %s %-6s  %s%s\n", num, box, priority, title, tags.String())
}

// Progress formats the stats line and bar.
// Format: "Active: {A}/{T}  {P}% done\n[####----]\n"
func (p *Printer) Progress(st task.Stats) {
	fmt.Fprintf(p.w, "Active: %d/%d  %d%% done\n", st.Active, st.Total, st.ProgressPercent)
	filled := st.ProgressPercent * progressBarWidth / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)
	fmt.Fprintf(p.w, "[%s]\n", bar)
}

func (p *Printer) priorityStyle(pr task.Priority) lipgloss.Style {
	switch pr {
	case task.PriorityHigh:
		return p.high
	case task.PriorityLow:
		return p.low
	}
	return p.med
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
