package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "shelf.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{name: "zero", maxLines: 0, want: nil},
		{name: "partial", maxLines: 3, want: all[7:]},
		{name: "exact", maxLines: 10, want: all},
		{name: "more than file", maxLines: 50, want: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Read mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read = %v, %v, want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"warn","id":7,"outcome":"remote_failed_local_applied","time":"2024-03-09T10:11:12Z","message":"remote update failed, applying locally"}`

	e := Parse(line)
	want := Entry{
		Time:    time.Date(2024, 3, 9, 10, 11, 12, 0, time.UTC),
		Level:   "warn",
		Message: "remote update failed, applying locally",
		Fields: []Field{
			{Key: "id", Value: "7"},
			{Key: "outcome", Value: "remote_failed_local_applied"},
		},
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}

	e.Time = time.Time{}
	if got := e.String(); got != "WRN remote update failed, applying locally id=7 outcome=remote_failed_local_applied" {
		t.Fatalf("String = %q", got)
	}
}

func TestParse_PlainText(t *testing.T) {
	e := Parse("  panic: something  ")
	if e.Message != "panic: something" || e.Level != "" || len(e.Fields) != 0 {
		t.Fatalf("Parse = %+v", e)
	}
	if got := e.String(); got != "panic: something" {
		t.Fatalf("String = %q", got)
	}
}
