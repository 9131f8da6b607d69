package output_test

import (
	"bytes"
	"testing"

	"taskdeck/internal/output"
	"taskdeck/internal/task"
	"taskdeck/internal/testutil"
)

func TestPrinter_TaskList(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, false, false)

	p.Progress(task.Stats{Total: 3, Completed: 1, Active: 2, ProgressPercent: 33})
	p.Task(1, task.Task{Title: "Ship release", Priority: task.PriorityHigh})
	p.Task(2, task.Task{Title: "Write report", Priority: task.PriorityMedium, Tags: []string{"Work"}})
	p.Task(3, task.Task{Title: "Water plants", Priority: task.PriorityLow, Completed: true, Tags: []string{"Personal"}})

	testutil.GoldenString(t, "tasklist", buf.String())
}

func TestPrinter_ProgressBar(t *testing.T) {
	cases := []struct {
		percent int
		want    string
	}{
		{0, "[--------------------]"},
		{50, "[##########----------]"},
		{100, "[####################]"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		output.NewPrinter(&buf, false, false).Progress(task.Stats{Total: 2, Active: 1, ProgressPercent: tc.percent})
		lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
		if got := string(lines[1]); got != tc.want {
			t.Errorf("%d%%: bar = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestPrinter_NormalizesTitles(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, false, false)

	p.Task(1, task.Task{Title: "line1\nline2", Priority: task.PriorityMedium})
	p.Task(2, task.Task{Title: "   ", Priority: task.PriorityMedium})

	want := "   1  [ ] medium  line1 line2\n" +
		"   2  [ ] medium  (untitled)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrinter_ColorOutputContainsTitle(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, true, true)
	p.Task(1, task.Task{Title: "Ship release", Priority: task.PriorityHigh, Tags: []string{"Work"}})

	got := buf.String()
	if !bytes.Contains([]byte(got), []byte("Ship release")) || !bytes.Contains([]byte(got), []byte("#Work")) {
		t.Errorf("styled output lost content: %q", got)
	}
}
