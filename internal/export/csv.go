// Package export writes product rows as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/natefinch/atomic"

	"github.com/five82/shelf/internal/catalog"
)

var header = []string{"ID", "Title", "Price", "Category", "Image URL", "Description"}

// WriteCSV writes a header row followed by one row per product.
func WriteCSV(w io.Writer, rows []catalog.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range rows {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.CategoryName(),
			p.FirstImage(),
			p.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", p.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FileName returns products_page{N}_{YYYYMMDD}.csv for the given page and day.
func FileName(page int, now time.Time) string {
	return fmt.Sprintf("products_page%d_%s.csv", page, now.Format("20060102"))
}

// WriteFile writes rows as CSV to path, creating parent directories. The file
// is replaced atomically so a failed export never leaves a partial file.
func WriteFile(path string, rows []catalog.Product) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
