package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_WritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "tubeclone-test")
	log.Info().Str("view", "home").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "tubeclone-test" || entry["message"] != "hello" || entry["view"] != "home" {
		t.Fatalf("entry = %#v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("entry has no time field: %#v", entry)
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	for _, tt := range tests {
		New(&bytes.Buffer{}, tt.level, "svc")
		if got := zerolog.GlobalLevel(); got != tt.want {
			t.Fatalf("level(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestOpenFile_CreatesDirAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "client.log")

	for i := 0; i < 2; i++ {
		f, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile returned error: %v", err)
		}
		if _, err := f.WriteString("line\n"); err != nil {
			t.Fatalf("WriteString: %v", err)
		}
		_ = f.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "line\nline\n" {
		t.Fatalf("file = %q, want two lines", data)
	}
}
