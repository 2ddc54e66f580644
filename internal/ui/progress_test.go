package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cjslex/internal/driver"
)

func TestProgressModelCountsFinishedFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("scan", []string{"a.js", "b.js", "c.js"}, events).(*progressModel)

	for _, ev := range []driver.Event{
		{File: "a.js", Status: driver.StatusWorking},
		{File: "a.js", Status: driver.StatusDone, Cached: true},
		{File: "b.js", Status: driver.StatusError},
		{File: "b.js", Status: driver.StatusError},
		{File: "unknown.js", Status: driver.StatusDone},
	} {
		m.Update(eventMsg(ev))
	}

	if m.finished != 2 || m.cached != 1 {
		t.Fatalf("finished=%d cached=%d, want 2 and 1", m.finished, m.cached)
	}
	view := m.View()
	for _, want := range []string{"scan (2/3, 1 cached)", "cached", "error", "queued"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("scan", []string{"a.js"}, events).(*progressModel)

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("got %T, want doneMsg", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if !m.done || !strings.HasPrefix(m.View(), "done: scan") {
		t.Fatal("model not marked done")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/long/path.js", 10); got != "interna..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("漢字漢字漢字", 7); got != "漢字..." {
		t.Errorf("truncate wide = %q", got)
	}
	if got := truncate("short.js", 20); got != "short.js" {
		t.Errorf("truncate = %q", got)
	}
}
