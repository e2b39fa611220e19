// Package archive stores exported character sheets as blobs.
//
// Three drivers share the Store interface: a local directory for
// development, process memory for tests, and any S3-compatible bucket.
package archive

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/KirkDiggler/gurps-api/internal/errors"
)

// Driver identifies a Store implementation
type Driver string

// Drivers
const (
	DriverFilesystem Driver = "fs"
	DriverMemory     Driver = "memory"
	DriverS3         Driver = "s3"
)

// exportsPrefix roots every key written by the export flow
const exportsPrefix = "exports"

// Info describes a stored export
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// PutOptions are optional blob attributes
type PutOptions struct {
	ContentType string
}

// Store is a flat key/value blob store. Put replaces an existing key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get returns NotFound when the key is absent; callers close the reader
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// List returns infos under prefix sorted by key
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// Key builds the blob key for one export of a character
func Key(characterID, fileName string) string {
	return path.Join(exportsPrefix, characterID, fileName)
}

// CharacterPrefix is the List prefix for every export of a character
func CharacterPrefix(characterID string) string {
	return exportsPrefix + "/" + characterID + "/"
}

// Config selects and configures a driver
type Config struct {
	Driver Driver
	// Dir is the root directory for the fs driver
	Dir string
	S3  S3Config
}

// Open builds the Store named by cfg.Driver
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Dir)
	case DriverMemory:
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, errors.InvalidArgumentf("unknown archive driver %q", cfg.Driver)
	}
}

// validateKey rejects keys that could escape a filesystem root
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.InvalidArgument("key is required")
	}
	if strings.HasPrefix(key, "/") {
		return errors.InvalidArgumentf("invalid key %q", key).WithMeta("key", key)
	}
	for _, segment := range strings.Split(key, "/") {
		switch segment {
		case "", ".", "..":
			return errors.InvalidArgumentf("invalid key %q", key).WithMeta("key", key)
		}
	}
	return nil
}
