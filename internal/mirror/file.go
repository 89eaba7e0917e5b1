package mirror

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"

	"github.com/five82/shelf/internal/catalog"
)

// DefaultPath is where the file mirror lives unless configured otherwise.
const DefaultPath = "~/.local/share/shelf/" + DefaultKey + ".json"

// File keeps the collection in a JSON file, replaced atomically on save.
type File struct {
	path string
}

// NewFile resolves path (DefaultPath when empty) and returns a file mirror.
func NewFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve mirror path: %w", err)
	}
	return &File{path: resolved}, nil
}

// Path returns the resolved file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Load(_ context.Context) ([]catalog.Product, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", f.path).Msg("no local mirror")
			return nil, false
		}
		log.Warn().Err(err).Str("path", f.path).Msg("read local mirror")
		return nil, false
	}
	products, err := decode(data)
	if err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("parse local mirror")
		return nil, false
	}
	log.Debug().Int("products", len(products)).Msg("loaded local mirror")
	return products, true
}

func (f *File) Save(_ context.Context, products []catalog.Product) {
	data, err := encode(products)
	if err != nil {
		log.Error().Err(err).Msg("save local mirror")
		return
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		log.Error().Err(err).Str("path", f.path).Msg("create mirror dir")
		return
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		log.Error().Err(err).Str("path", f.path).Msg("write local mirror")
		return
	}
	log.Debug().Int("products", len(products)).Msg("saved local mirror")
}

func (f *File) Clear(_ context.Context) {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error().Err(err).Str("path", f.path).Msg("clear local mirror")
		return
	}
	log.Info().Str("path", f.path).Msg("cleared local mirror")
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
