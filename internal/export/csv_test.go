package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

func TestWriteCSV(t *testing.T) {
	rows := []catalog.Product{
		{ID: 1, Title: `Shirt "Classic"`, Price: 10.5, Description: "soft, warm", Category: &catalog.Category{ID: 1, Name: "Clothes"}, Images: []string{`["https://img/1.png"]`}},
		{ID: 2, Title: "Shoe", Price: 5},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	want := "ID,Title,Price,Category,Image URL,Description\n" +
		"1,\"Shirt \"\"Classic\"\"\",10.5,Clothes,https://img/1.png,\"soft, warm\"\n" +
		"2,Shoe,5,N/A,,\n"
	if buf.String() != want {
		t.Fatalf("WriteCSV =\n%s\nwant\n%s", buf.String(), want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_PropagatesWriteErrors(t *testing.T) {
	if err := WriteCSV(failingWriter{}, nil); err == nil {
		t.Fatalf("WriteCSV returned nil error, want disk full")
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, time.March, 7, 15, 0, 0, 0, time.UTC)
	if got := FileName(3, now); got != "products_page3_20240307.csv" {
		t.Fatalf("FileName = %q, want products_page3_20240307.csv", got)
	}
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", FileName(1, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	rows := []catalog.Product{{ID: 9, Title: "Cap", Price: 2}}

	if err := WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := "ID,Title,Price,Category,Image URL,Description\n9,Cap,2,N/A,,\n"; string(data) != want {
		t.Fatalf("file = %q, want %q", string(data), want)
	}
}
