package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DiskStorage implements image storage on the local filesystem. Keys are flat
// file names inside the upload directory.
type DiskStorage struct {
	uploadsDir string // Local directory for uploads (e.g., "./uploads")
	publicPath string // URL prefix the files are served under (e.g., "/uploads")
}

// NewDiskStorage creates the upload directory if needed
func NewDiskStorage(uploadsDir, publicPath string) (*DiskStorage, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &DiskStorage{
		uploadsDir: uploadsDir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}, nil
}

func (d *DiskStorage) Save(ctx context.Context, key string, reader io.Reader) error {
	fullPath, err := d.resolve(key)
	if err != nil {
		return err
	}

	// Write to a temp file first so readers never see a partial image
	tmp, err := os.CreateTemp(d.uploadsDir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

func (d *DiskStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := d.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (d *DiskStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := d.resolve(key)
	if err != nil {
		return false, 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (d *DiskStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := d.resolve(key)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (d *DiskStorage) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(d.uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	files := []FileInfo{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{Key: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Key < files[j].Key })
	return files, nil
}

func (d *DiskStorage) PublicPath(key string) string {
	return path.Join(d.publicPath, key)
}

// KeyFromPublicPath returns the key for a path produced by PublicPath, or
// false when p does not point into this storage.
func (d *DiskStorage) KeyFromPublicPath(p string) (string, bool) {
	prefix := d.publicPath + "/"
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(p, prefix)
	if validKey(key) != nil {
		return "", false
	}
	return key, true
}

func (d *DiskStorage) resolve(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	return filepath.Join(d.uploadsDir, key), nil
}

func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.HasPrefix(key, ".") ||
		strings.ContainsAny(key, `/\`) || filepath.Base(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
