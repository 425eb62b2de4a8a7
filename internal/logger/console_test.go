package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestWarnfFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")
	l.Warnf("%s: cannot open", "a.txt")

	got := buf.String()
	if got != "scanr: warning: a.txt: cannot open\n" {
		t.Errorf("output = %q", got)
	}
}

func TestErrorfFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")
	l.Errorf("bad state %d", 7)

	if got := buf.String(); got != "scanr: error: bad state 7\n" {
		t.Errorf("output = %q", got)
	}
}

func TestInfofHasNoLabel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")
	l.Infof("scanning %d files", 3)

	if got := buf.String(); got != "scanr: scanning 3 files\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.level)
			l.Debugf("dbg")
			l.Warnf("wrn")

			got := buf.String()
			if strings.Contains(got, "dbg") != tt.wantDebug {
				t.Errorf("level %s: debug emitted = %v, want %v", tt.level, !tt.wantDebug, tt.wantDebug)
			}
			if strings.Contains(got, "wrn") != tt.wantWarn {
				t.Errorf("level %s: warn emitted = %v, want %v", tt.level, !tt.wantWarn, tt.wantWarn)
			}
		})
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "shouty")
	l.Debugf("hidden")
	l.Infof("shown")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Error("debug message emitted at default info level")
	}
	if !strings.Contains(got, "shown") {
		t.Error("info message missing at default info level")
	}
}

func TestNilWriterDiscards(t *testing.T) {
	l := New(nil, "debug")
	// Must not panic.
	l.Debugf("a")
	l.Warnf("b")
	l.Errorf("c")
}

func TestNoColorForNonTerminalWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")
	l.Warnf("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output contains ANSI codes for non-terminal writer: %q", buf.String())
	}
}

func TestConcurrentWritesStayWholeLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				l.Warnf("message")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 200 {
		t.Fatalf("line count = %d, want 200", len(lines))
	}
	for _, line := range lines {
		if line != "scanr: warning: message" {
			t.Errorf("interleaved line %q", line)
		}
	}
}
