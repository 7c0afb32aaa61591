package registry

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/azure/feast-azure/pkg/feast/core"
)

// Registry is a cache of a registry document kept in a RegistryStore.
//
// Every mutation is committed to the store before it returns. A mutation
// which fails to be committed leaves the cache as it was, and a conflict
// drops the cache so that the next access reads the store again.
//
// Registry is not safe for concurrent use.
type Registry struct {
	store RegistryStore
	ttl   time.Duration
	now   func() time.Time

	cached   *core.Registry
	cachedAt time.Time
}

type Option func(*Registry) *Registry

// WithCacheTTL sets how long the cache is used for reads without refreshing.
//
// Zero (default) means the cache never expires.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Registry) *Registry {
		r.ttl = ttl
		return r
	}
}

// WithTimeFunc replaces the clock used for object timestamps and cache expiry.
func WithTimeFunc(now func() time.Time) Option {
	return func(r *Registry) *Registry {
		r.now = now
		return r
	}
}

func New(store RegistryStore, options ...Option) *Registry {
	r := &Registry{store: store, now: time.Now}
	for _, opt := range options {
		r = opt(r)
	}
	return r
}

func (r *Registry) Store() RegistryStore {
	return r.store
}

// Refresh drops the cache and reads the registry from the store.
//
// A store without registry document gives an empty registry.
func (r *Registry) Refresh(ctx context.Context) error {
	proto, err := r.store.GetRegistryProto(ctx)
	if errors.Is(err, ErrRegistryNotFound) {
		proto = core.NewRegistry()
	} else if err != nil {
		return err
	}
	r.cached = proto
	r.cachedAt = r.now()
	return nil
}

// Commit writes the cached registry to the store.
func (r *Registry) Commit(ctx context.Context) error {
	if r.cached == nil {
		return nil
	}
	return r.commit(ctx, r.cached.Clone())
}

// commit writes proto and makes it the cache on success.
func (r *Registry) commit(ctx context.Context, proto *core.Registry) error {
	if err := r.store.UpdateRegistryProto(ctx, proto); err != nil {
		if errors.Is(err, ErrRegistryConflict) {
			r.cached = nil
		}
		return err
	}
	r.cached = proto
	r.cachedAt = r.now()
	return nil
}

// Replace overwrites the registry document in the store with a copy of proto.
//
// The store is read first, so a store which detects concurrent writers
// fails with ErrRegistryConflict when the document is replaced by others
// in the meantime.
func (r *Registry) Replace(ctx context.Context, proto *core.Registry) error {
	if err := r.Refresh(ctx); err != nil {
		return err
	}
	return r.commit(ctx, proto.Clone())
}

// Teardown removes the registry document from the store and drops the cache.
func (r *Registry) Teardown(ctx context.Context) error {
	if err := r.store.Teardown(ctx); err != nil {
		return err
	}
	r.cached = nil
	return nil
}

// Snapshot returns a copy of the whole registry document.
func (r *Registry) Snapshot(ctx context.Context, allowCache bool) (*core.Registry, error) {
	proto, err := r.forRead(ctx, allowCache)
	if err != nil {
		return nil, err
	}
	return proto.Clone(), nil
}

// forChange returns a copy of the cache to be mutated and passed to commit.
func (r *Registry) forChange(ctx context.Context) (*core.Registry, error) {
	if r.cached == nil {
		if err := r.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return r.cached.Clone(), nil
}

func (r *Registry) forRead(ctx context.Context, allowCache bool) (*core.Registry, error) {
	expired := r.ttl > 0 && r.cachedAt.Add(r.ttl).Before(r.now())
	if r.cached == nil || !allowCache || expired {
		if err := r.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return r.cached, nil
}

type registered interface {
	Name() string
	Project() string
}

type touchable[T any] interface {
	registered
	Clone() T
	Created() time.Time
	Touch(project string, created time.Time, now time.Time)
}

func indexOf[T registered](items []T, name string, project string) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.Name() == name && item.Project() == project
	})
}

// upsert replaces the item with the same (name, project) with a copy of item,
// or appends it.
func upsert[T touchable[T]](items []T, item T, project string, now time.Time) []T {
	item = item.Clone()
	if i := indexOf(items, item.Name(), project); 0 <= i {
		item.Touch(project, items[i].Created(), now)
		items[i] = item
		return items
	}
	item.Touch(project, time.Time{}, now)
	return append(items, item)
}

func filterProject[T touchable[T]](items []T, project string) []T {
	ret := []T{}
	for _, item := range items {
		if item.Project() == project {
			ret = append(ret, item.Clone())
		}
	}
	return ret
}

// ApplyEntity registers entities to the project, replacing ones with the same name.
func (r *Registry) ApplyEntity(ctx context.Context, project string, entities ...*core.Entity) error {
	proto, err := r.forChange(ctx)
	if err != nil {
		return err
	}
	now := r.now().UTC()
	for _, e := range entities {
		proto.Entities = upsert(proto.Entities, e, project, now)
	}
	return r.commit(ctx, proto)
}

// ApplyFeatureView registers feature views to the project, replacing ones with the same name.
func (r *Registry) ApplyFeatureView(ctx context.Context, project string, featureViews ...*core.FeatureView) error {
	proto, err := r.forChange(ctx)
	if err != nil {
		return err
	}
	now := r.now().UTC()
	for _, fv := range featureViews {
		proto.FeatureViews = upsert(proto.FeatureViews, fv, project, now)
	}
	return r.commit(ctx, proto)
}

// ApplyFeatureService registers feature services to the project, replacing ones with the same name.
func (r *Registry) ApplyFeatureService(ctx context.Context, project string, featureServices ...*core.FeatureService) error {
	proto, err := r.forChange(ctx)
	if err != nil {
		return err
	}
	now := r.now().UTC()
	for _, fs := range featureServices {
		proto.FeatureServices = upsert(proto.FeatureServices, fs, project, now)
	}
	return r.commit(ctx, proto)
}

// DeleteEntity removes the entity and commits.
//
// If there are no such entity, it returns *EntityNotFoundError.
func (r *Registry) DeleteEntity(ctx context.Context, name string, project string) error {
	proto, err := r.forChange(ctx)
	if err != nil {
		return err
	}
	i := indexOf(proto.Entities, name, project)
	if i < 0 {
		return &EntityNotFoundError{Name: name, Project: project}
	}
	proto.Entities = slices.Delete(proto.Entities, i, i+1)
	return r.commit(ctx, proto)
}

// DeleteFeatureView removes the feature view and commits.
//
// If there are no such feature view, it returns *FeatureViewNotFoundError.
func (r *Registry) DeleteFeatureView(ctx context.Context, name string, project string) error {
	proto, err := r.forChange(ctx)
	if err != nil {
		return err
	}
	i := indexOf(proto.FeatureViews, name, project)
	if i < 0 {
		return &FeatureViewNotFoundError{Name: name, Project: project}
	}
	proto.FeatureViews = slices.Delete(proto.FeatureViews, i, i+1)
	return r.commit(ctx, proto)
}

// DeleteFeatureService removes the feature service and commits.
//
// If there are no such feature service, it returns *FeatureServiceNotFoundError.
func (r *Registry) DeleteFeatureService(ctx context.Context, name string, project string) error {
	proto, err := r.forChange(ctx)
	if err != nil {
		return err
	}
	i := indexOf(proto.FeatureServices, name, project)
	if i < 0 {
		return &FeatureServiceNotFoundError{Name: name, Project: project}
	}
	proto.FeatureServices = slices.Delete(proto.FeatureServices, i, i+1)
	return r.commit(ctx, proto)
}

func (r *Registry) GetEntity(ctx context.Context, name string, project string, allowCache bool) (*core.Entity, error) {
	proto, err := r.forRead(ctx, allowCache)
	if err != nil {
		return nil, err
	}
	i := indexOf(proto.Entities, name, project)
	if i < 0 {
		return nil, &EntityNotFoundError{Name: name, Project: project}
	}
	return proto.Entities[i].Clone(), nil
}

func (r *Registry) GetFeatureView(ctx context.Context, name string, project string, allowCache bool) (*core.FeatureView, error) {
	proto, err := r.forRead(ctx, allowCache)
	if err != nil {
		return nil, err
	}
	i := indexOf(proto.FeatureViews, name, project)
	if i < 0 {
		return nil, &FeatureViewNotFoundError{Name: name, Project: project}
	}
	return proto.FeatureViews[i].Clone(), nil
}

func (r *Registry) GetFeatureService(ctx context.Context, name string, project string, allowCache bool) (*core.FeatureService, error) {
	proto, err := r.forRead(ctx, allowCache)
	if err != nil {
		return nil, err
	}
	i := indexOf(proto.FeatureServices, name, project)
	if i < 0 {
		return nil, &FeatureServiceNotFoundError{Name: name, Project: project}
	}
	return proto.FeatureServices[i].Clone(), nil
}

func (r *Registry) ListEntities(ctx context.Context, project string, allowCache bool) ([]*core.Entity, error) {
	proto, err := r.forRead(ctx, allowCache)
	if err != nil {
		return nil, err
	}
	return filterProject(proto.Entities, project), nil
}

func (r *Registry) ListFeatureViews(ctx context.Context, project string, allowCache bool) ([]*core.FeatureView, error) {
	proto, err := r.forRead(ctx, allowCache)
	if err != nil {
		return nil, err
	}
	return filterProject(proto.FeatureViews, project), nil
}

func (r *Registry) ListFeatureServices(ctx context.Context, project string, allowCache bool) ([]*core.FeatureService, error) {
	proto, err := r.forRead(ctx, allowCache)
	if err != nil {
		return nil, err
	}
	return filterProject(proto.FeatureServices, project), nil
}
