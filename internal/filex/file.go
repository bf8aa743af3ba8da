package filex

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

var ErrNotRegular = errors.New("not a regular file")

// EnsureDir creates dir and its parents with owner-only permissions.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// LocalFile is a file read from disk for upload.
type LocalFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadLocal reads a regular file no larger than maxBytes. A maxBytes of 0
// disables the limit. The content type comes from the extension and falls
// back to sniffing the first bytes.
func ReadLocal(path string, maxBytes int64) (*LocalFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	if maxBytes > 0 && fi.Size() > maxBytes {
		return nil, fmt.Errorf("%s: %d bytes exceeds limit of %d", path, fi.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &LocalFile{Name: name, ContentType: ct, Data: data}, nil
}
