package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUnsupportedFileType = errors.New("only image files are allowed")

// PathPrefix is the URL path under which saved files are served.
const PathPrefix = "/uploads"

// Config controls where uploaded files land and how they are named.
// Filename must return a name unique within Dir; it defaults to
// DefaultFilename when nil.
type Config struct {
	Dir      string
	Filename func(originalName string) string
}

// Saver writes a single uploaded image to disk under a generated name.
type Saver struct {
	dir      string
	filename func(string) string
}

// NewSaver creates the destination directory if it does not exist yet.
func NewSaver(cfg Config) (*Saver, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := cfg.Filename
	if filename == nil {
		filename = DefaultFilename
	}
	return &Saver{dir: cfg.Dir, filename: filename}, nil
}

// Save validates the declared content type and writes the file under a
// generated name, returning that name. Nothing is written when the file
// is not an image.
func (s *Saver) Save(file *multipart.FileHeader) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", ErrUnsupportedFileType
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := s.filename(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return name, nil
}

// URL builds the public URL persisted on the user record. baseURL is the
// scheme and host of the live request, e.g. "http://localhost:5000".
func (s *Saver) URL(baseURL, name string) string {
	return baseURL + PathPrefix + "/" + name
}

// DefaultFilename replaces the original name with a millisecond timestamp
// plus a random suffix, keeping the extension. Concurrent uploads get
// distinct names without any locking.
func DefaultFilename(originalName string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, filepath.Ext(originalName))
}
