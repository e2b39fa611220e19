package archive

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/gurps-api/internal/errors"
)

type memoryBlob struct {
	info Info
	data []byte
}

// MemoryStore keeps blobs in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
	now   func() time.Time
}

// NewMemory returns an empty in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]memoryBlob), now: time.Now}
}

// Driver returns DriverMemory
func (s *MemoryStore) Driver() Driver { return DriverMemory }

// Put stores a copy of r's content under key
func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	if err := validateKey(key); err != nil {
		return Info{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, errors.Wrapf(err, "failed to read blob %s", key)
	}

	info := Info{Key: key, Size: int64(len(data)), ContentType: opts.ContentType, LastModified: s.now().UTC()}

	s.mu.Lock()
	s.blobs[key] = memoryBlob{info: info, data: data}
	s.mu.Unlock()

	return info, nil
}

// Get returns the blob stored under key
func (s *MemoryStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	s.mu.RLock()
	blob, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return Info{}, nil, errors.NotFoundf("export %s not found", key).WithMeta("key", key)
	}

	return blob.info, io.NopCloser(bytes.NewReader(bytes.Clone(blob.data))), nil
}

// List returns every blob under prefix
func (s *MemoryStore) List(_ context.Context, prefix string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := []Info{}
	for key, blob := range s.blobs {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, blob.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
