package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/utils/safefile"
	"github.com/google/uuid"
)

// LocalRegistryStore keeps the registry document in a file.
type LocalRegistryStore struct {
	path string
	now  func() time.Time
}

var _ RegistryStore = &LocalRegistryStore{}

type LocalOption func(*LocalRegistryStore) *LocalRegistryStore

// WithClock replaces the clock used to stamp registries.
func WithClock(now func() time.Time) LocalOption {
	return func(s *LocalRegistryStore) *LocalRegistryStore {
		s.now = now
		return s
	}
}

func NewLocalRegistryStore(path string, options ...LocalOption) *LocalRegistryStore {
	s := &LocalRegistryStore{path: path, now: time.Now}
	for _, opt := range options {
		s = opt(s)
	}
	return s
}

func (s *LocalRegistryStore) Path() string {
	return s.path
}

func (s *LocalRegistryStore) GetRegistryProto(ctx context.Context) (*core.Registry, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf(
				"%w: local registry file %s does not exist", ErrRegistryNotFound, s.path,
			)
		}
		return nil, err
	}
	r := new(core.Registry)
	if err := r.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("local registry file %s is broken: %w", s.path, err)
	}
	return r, nil
}

func (s *LocalRegistryStore) UpdateRegistryProto(ctx context.Context, r *core.Registry) error {
	r.VersionId = uuid.NewString()
	r.LastUpdated = s.now().UTC()
	buf, err := r.Marshal()
	if err != nil {
		return err
	}
	return safefile.Write(s.path, buf)
}

func (s *LocalRegistryStore) Teardown(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
