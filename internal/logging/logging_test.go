package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"yaml", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRespectsLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("warn", "logfmt", false, false))

	logger.Info("hidden")
	logger.Warn("shown", "id", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "id=3") {
		t.Errorf("expected logfmt warn line, got: %s", out)
	}
	if !strings.Contains(out, "prefix=tasklist") {
		t.Errorf("expected prefix in output, got: %s", out)
	}
}

func TestOpenSessionLog(t *testing.T) {
	t.Run("creates log file under project slug", func(t *testing.T) {
		base := t.TempDir()
		work := filepath.Join(t.TempDir(), "my project")
		if err := os.Mkdir(work, 0755); err != nil {
			t.Fatal(err)
		}

		s, err := OpenSessionLog(base, work)
		if err != nil {
			t.Fatalf("OpenSessionLog: %v", err)
		}
		defer s.Close()

		if !strings.HasPrefix(filepath.Base(s.Dir), "my_project-") {
			t.Errorf("Dir = %s, want my_project-<hash>", s.Dir)
		}
		if !strings.HasSuffix(s.Path, s.SessionID+".log") {
			t.Errorf("Path = %s does not end with session id", s.Path)
		}

		logger := New(s.Writer(), DefaultOptions())
		logger.Info("session started")
		data, err := os.ReadFile(s.Path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "session started") {
			t.Errorf("log file missing entry: %q", data)
		}
	})

	t.Run("empty base dir", func(t *testing.T) {
		if _, err := OpenSessionLog("", t.TempDir()); err == nil {
			t.Fatal("expected error for empty base dir")
		}
	})

	t.Run("relative base dir resolves against work dir", func(t *testing.T) {
		work := t.TempDir()
		s, err := OpenSessionLog("logs", work)
		if err != nil {
			t.Fatalf("OpenSessionLog: %v", err)
		}
		defer s.Close()
		if !strings.HasPrefix(s.Dir, filepath.Join(work, "logs")) {
			t.Errorf("Dir = %s, want under %s", s.Dir, filepath.Join(work, "logs"))
		}
	})
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasklist.log")
	for i := 0; i < 2; i++ {
		s, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		if _, err := s.Writer().Write([]byte("line\n")); err != nil {
			t.Fatal(err)
		}
		s.Close()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "line\nline\n" {
		t.Errorf("file content = %q, want two lines", data)
	}
}

func TestCloseNil(t *testing.T) {
	var s *SessionLog
	if err := s.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tasklist", "tasklist"},
		{"my project", "my_project"},
		{"a  b!!c", "a_b_c"},
		{"   ", "project"},
		{"***", "project"},
		{"v1.2-beta_x", "v1.2-beta_x"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
