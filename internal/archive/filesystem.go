package archive

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KirkDiggler/gurps-api/internal/errors"
)

// defaultDir is used when no directory is configured
const defaultDir = "./exports-data"

// FilesystemStore maps keys to files under a root directory
type FilesystemStore struct {
	root string
}

// NewFilesystem returns a store rooted at dir, creating it if needed
func NewFilesystem(dir string) (*FilesystemStore, error) {
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create archive dir %s", dir)
	}
	return &FilesystemStore{root: dir}, nil
}

// Driver returns DriverFilesystem
func (s *FilesystemStore) Driver() Driver { return DriverFilesystem }

func (s *FilesystemStore) pathFor(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Put writes r to a temp file next to the target and renames it into place
func (s *FilesystemStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return Info{}, errors.Wrapf(err, "failed to create dir for %s", key)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return Info{}, errors.Wrapf(err, "failed to create temp file for %s", key)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return Info{}, errors.Wrapf(err, "failed to write %s", key)
	}
	if err := tmp.Close(); err != nil {
		return Info{}, errors.Wrapf(err, "failed to close %s", key)
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return Info{}, errors.Wrapf(err, "failed to move %s into place", key)
	}

	return s.stat(key, dataPath, opts.ContentType)
}

// Get opens the file stored under key
func (s *FilesystemStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return Info{}, nil, err
	}

	f, err := os.Open(dataPath)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Info{}, nil, errors.NotFoundf("export %s not found", key).WithMeta("key", key)
	}
	if err != nil {
		return Info{}, nil, errors.Wrapf(err, "failed to open %s", key)
	}

	info, err := s.stat(key, dataPath, "")
	if err != nil {
		_ = f.Close()
		return Info{}, nil, err
	}
	return info, f, nil
}

// List walks the root and returns every file whose key has prefix
func (s *FilesystemStore) List(_ context.Context, prefix string) ([]Info, error) {
	infos := []Info{}
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, Info{Key: key, Size: fi.Size(), LastModified: fi.ModTime().UTC()})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", prefix)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *FilesystemStore) stat(key, dataPath, contentType string) (Info, error) {
	fi, err := os.Stat(dataPath)
	if err != nil {
		return Info{}, errors.Wrapf(err, "failed to stat %s", key)
	}
	return Info{Key: key, Size: fi.Size(), ContentType: contentType, LastModified: fi.ModTime().UTC()}, nil
}
