package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"teamboard/utils"
)

// DiskStore is a Store rooted at a local directory. It stands in for a
// hosted object store so the whole backend stays self-contained.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &utils.StoreError{Op: "init " + root, Err: err}
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Put(key string, r io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &utils.StoreError{Op: "put " + key, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &utils.StoreError{Op: "put " + key, Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return &utils.StoreError{Op: "put " + key, Err: err}
	}
	return nil
}

func (s *DiskStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", key, utils.ErrNotFound)
	}
	if err != nil {
		return nil, &utils.StoreError{Op: "open " + key, Err: err}
	}
	return f, nil
}

func (s *DiskStore) Delete(key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &utils.StoreError{Op: "delete " + key, Err: err}
	}
	return nil
}

func (s *DiskStore) List() ([]Object, error) {
	var objects []Object
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		objects = append(objects, Object{
			Key:     filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, &utils.StoreError{Op: "list", Err: err}
	}
	return objects, nil
}

// resolve maps a key to an on-disk path, rejecting traversal attempts.
func (s *DiskStore) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", &utils.StoreError{Op: "resolve " + key, Err: errors.New("invalid key")}
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}
