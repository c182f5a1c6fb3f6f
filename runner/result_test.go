package runner

import (
	"os"
	"strings"
	"testing"
	"time"
)

func fixtureResult() *Result {
	return &Result{
		Command:  "ping 8.8.8.8",
		Args:     []string{"ping", "8.8.8.8"},
		ExitCode: 0,
		Stdout:   "64 bytes from 8.8.8.8\n",
		Start:    time.Unix(1756100000, 0),
		Duration: 1234 * time.Millisecond,
	}
}

func TestDebugOutputLayout(t *testing.T) {
	out := fixtureResult().DebugOutput()
	lines := strings.Split(out, "\n")

	wantPrefixes := []string{
		"cmd: ping 8.8.8.8",
		"rc: 0",
		"start: 1756100000",
		"start_time: ",
		"elapsed: 1.234s",
		"",
	}
	if len(lines) < len(wantPrefixes) {
		t.Fatalf("DebugOutput() has %d lines, want at least %d:\n%s", len(lines), len(wantPrefixes), out)
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
	if !strings.Contains(out, "64 bytes from 8.8.8.8") {
		t.Errorf("DebugOutput() missing captured stdout:\n%s", out)
	}
}

func TestOutputCombinesStreams(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		stderr string
		want   string
	}{
		{
			name:   "both streams",
			stdout: "a\n",
			stderr: "b\n",
			want:   "a\n\nb\n",
		},
		{
			name:   "stdout only",
			stdout: "a\n",
			want:   "a\n",
		},
		{
			name:   "stderr only",
			stderr: "b\n",
			want:   "b\n",
		},
		{
			name: "empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Result{Stdout: tt.stdout, Stderr: tt.stderr}
			if got := r.Output(); got != tt.want {
				t.Errorf("Output() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := &Result{Stdout: "alpha\n", Stderr: "beta\n"}
	if !r.StdoutContains("alpha") || r.StdoutContains("beta") {
		t.Error("StdoutContains should only match stdout")
	}
	if !r.StderrContains("beta") || r.StderrContains("alpha") {
		t.Error("StderrContains should only match stderr")
	}
	if !r.Contains("alpha") || !r.Contains("beta") || r.Contains("gamma") {
		t.Error("Contains should match either stream")
	}
}

func TestDumpTo(t *testing.T) {
	path := t.TempDir() + "/dumps/nested/result.txt"
	written, err := fixtureResult().DumpTo(path)
	if err != nil {
		t.Fatalf("DumpTo() error: %v", err)
	}
	if written != path {
		t.Errorf("DumpTo() path = %q, want %q", written, path)
	}

	want := fixtureResult().DebugOutput() + "\n"
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if string(data) != want {
		t.Errorf("dump contents = %q, want %q", string(data), want)
	}
}
