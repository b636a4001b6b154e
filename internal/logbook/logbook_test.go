package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "journey.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines := book.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestLinesCarryLevelSessionAndTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey.log")
	fixed := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	book, err := New(path, WithSession("abc12345"), WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("seat %s refused", "B05")
	lines := book.Tail(1)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %v", lines)
	}
	want := "2026-10-17T09:30:00Z WARN  [abc12345] seat B05 refused"
	if lines[0] != want {
		t.Fatalf("line = %q, want %q", lines[0], want)
	}
}

func TestGeneratedSessionIsShortAndStable(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "journey.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	if len(book.Session()) != 8 {
		t.Fatalf("session = %q, want 8 chars", book.Session())
	}
	book.Info("one")
	book.Error("two")
	for _, line := range book.Tail(2) {
		if !strings.Contains(line, "["+book.Session()+"]") {
			t.Fatalf("line %q missing session tag", line)
		}
	}
}

func TestNilLogbookIsNoop(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if book.Tail(5) != nil || book.Path() != "" || book.Session() != "" {
		t.Fatalf("nil logbook should be inert")
	}
}
