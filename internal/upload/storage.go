// Package upload stores uploaded image files under a single directory and
// serves them back by URL path. Generated names combine a timestamp with a
// random suffix, so concurrent uploads never collide and no locking is needed.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public path under which stored files are served
const URLPrefix = "/uploads"

// Storage writes uploaded files into a directory on disk
type Storage struct {
	dir string
}

// New creates the storage, making sure the directory exists
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the backing directory
func (s *Storage) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a collision-resistant generated name
// and returns its public URL path.
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixNano(), uuid.New().String()[:8], ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return URLPrefix + "/" + name, nil
}

// Remove deletes the file behind a stored URL. A file that is already absent
// is a no-op success, to tolerate prior partial failures.
func (s *Storage) Remove(url string) error {
	name := path.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
