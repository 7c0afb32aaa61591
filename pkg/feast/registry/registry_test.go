package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/feast/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(name string) *core.Entity {
	return &core.Entity{Spec: &core.EntitySpec{Name: name, JoinKey: name + "_id", ValueType: core.ValueType_INT64}}
}

func featureView(name string) *core.FeatureView {
	return &core.FeatureView{Spec: &core.FeatureViewSpec{
		Name:     name,
		Entities: []string{"driver"},
		Features: []*core.FeatureSpec{{Name: "f1", ValueType: core.ValueType_FLOAT}},
	}}
}

func featureService(name string) *core.FeatureService {
	return &core.FeatureService{Spec: &core.FeatureServiceSpec{
		Name:     name,
		Features: []*core.FeatureViewProjection{{FeatureViewName: "fv"}},
	}}
}

func TestLocalRegistryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get before update is not found", func(t *testing.T) {
		s := registry.NewLocalRegistryStore(filepath.Join(t.TempDir(), "registry.db"))
		_, err := s.GetRegistryProto(ctx)
		assert.ErrorIs(t, err, registry.ErrRegistryNotFound)
	})

	t.Run("update stamps a new version and time", func(t *testing.T) {
		now := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
		s := registry.NewLocalRegistryStore(
			filepath.Join(t.TempDir(), "nested", "registry.db"),
			registry.WithClock(func() time.Time { return now }),
		)

		r := core.NewRegistry()
		r.Entities = append(r.Entities, entity("driver"))
		require.NoError(t, s.UpdateRegistryProto(ctx, r))
		first, err := s.GetRegistryProto(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, first.VersionId)
		assert.True(t, now.Equal(first.LastUpdated))

		prev := first.VersionId
		require.NoError(t, s.UpdateRegistryProto(ctx, first))
		second, err := s.GetRegistryProto(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, prev, second.VersionId)
		assert.Len(t, second.Entities, 1)
	})

	t.Run("broken file is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.db")
		require.NoError(t, os.WriteFile(path, []byte{0x0a, 0x10}, 0600))
		_, err := registry.NewLocalRegistryStore(path).GetRegistryProto(ctx)
		require.Error(t, err)
		assert.False(t, errors.Is(err, registry.ErrRegistryNotFound))
	})

	t.Run("teardown removes the file and tolerates a missing one", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.db")
		s := registry.NewLocalRegistryStore(path)
		require.NoError(t, s.UpdateRegistryProto(ctx, core.NewRegistry()))
		require.NoError(t, s.Teardown(ctx))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		assert.NoError(t, s.Teardown(ctx))
	})
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	newRegistry := func(t *testing.T) (*registry.Registry, string) {
		path := filepath.Join(t.TempDir(), "registry.db")
		return registry.New(registry.NewLocalRegistryStore(path)), path
	}

	t.Run("a missing document gives an empty registry", func(t *testing.T) {
		r, _ := newRegistry(t)
		es, err := r.ListEntities(ctx, "demo", true)
		require.NoError(t, err)
		assert.Empty(t, es)

		snap, err := r.Snapshot(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, core.RegistrySchemaVersion, snap.RegistrySchemaVersion)
	})

	t.Run("apply sets the project and commits", func(t *testing.T) {
		r, path := newRegistry(t)
		require.NoError(t, r.ApplyEntity(ctx, "demo", entity("driver"), entity("customer")))

		reopened := registry.New(registry.NewLocalRegistryStore(path))
		got, err := reopened.GetEntity(ctx, "driver", "demo", true)
		require.NoError(t, err)
		assert.Equal(t, "demo", got.Project())
		assert.Equal(t, "driver_id", got.Spec.JoinKey)
		assert.False(t, got.Meta.CreatedTimestamp.IsZero())

		_, err = reopened.GetEntity(ctx, "driver", "other", true)
		var notFound *registry.EntityNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("apply replaces by name and keeps the creation time", func(t *testing.T) {
		clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		path := filepath.Join(t.TempDir(), "registry.db")
		r := registry.New(
			registry.NewLocalRegistryStore(path),
			registry.WithTimeFunc(func() time.Time { return clock }),
		)
		require.NoError(t, r.ApplyFeatureView(ctx, "demo", featureView("stats")))

		clock = clock.Add(time.Hour)
		updated := featureView("stats")
		updated.Spec.Description = "updated"
		require.NoError(t, r.ApplyFeatureView(ctx, "demo", updated))

		fvs, err := r.ListFeatureViews(ctx, "demo", false)
		require.NoError(t, err)
		require.Len(t, fvs, 1)
		assert.Equal(t, "updated", fvs[0].Spec.Description)
		assert.True(t, fvs[0].Meta.CreatedTimestamp.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, fvs[0].Meta.LastUpdatedTimestamp.Equal(clock))
	})

	t.Run("apply does not keep a reference to the argument", func(t *testing.T) {
		r, _ := newRegistry(t)
		fs := featureService("svc")
		require.NoError(t, r.ApplyFeatureService(ctx, "demo", fs))
		fs.Spec.Description = "changed after apply"

		got, err := r.GetFeatureService(ctx, "svc", "demo", true)
		require.NoError(t, err)
		assert.Empty(t, got.Spec.Description)
	})

	t.Run("delete removes exactly one matching object", func(t *testing.T) {
		r, path := newRegistry(t)
		require.NoError(t, r.ApplyEntity(ctx, "demo", entity("driver"), entity("customer")))
		require.NoError(t, r.ApplyEntity(ctx, "other", entity("driver")))

		require.NoError(t, r.DeleteEntity(ctx, "driver", "demo"))

		reopened := registry.New(registry.NewLocalRegistryStore(path))
		demo, err := reopened.ListEntities(ctx, "demo", true)
		require.NoError(t, err)
		require.Len(t, demo, 1)
		assert.Equal(t, "customer", demo[0].Name())

		other, err := reopened.ListEntities(ctx, "other", true)
		require.NoError(t, err)
		require.Len(t, other, 1)
		assert.Equal(t, "driver", other[0].Name())
	})

	t.Run("delete of a missing object is not found", func(t *testing.T) {
		r, _ := newRegistry(t)
		require.NoError(t, r.ApplyFeatureView(ctx, "demo", featureView("stats")))

		err := r.DeleteEntity(ctx, "nope", "demo")
		var enf *registry.EntityNotFoundError
		require.ErrorAs(t, err, &enf)
		assert.Equal(t, "nope", enf.Name)
		assert.Equal(t, "demo", enf.Project)
		assert.ErrorIs(t, err, registry.ErrObjectNotFound)

		err = r.DeleteFeatureView(ctx, "stats", "other")
		var fvnf *registry.FeatureViewNotFoundError
		assert.ErrorAs(t, err, &fvnf)

		err = r.DeleteFeatureService(ctx, "svc", "demo")
		var fsnf *registry.FeatureServiceNotFoundError
		assert.ErrorAs(t, err, &fsnf)
		assert.ErrorIs(t, err, registry.ErrObjectNotFound)
	})

	t.Run("reads refresh when the cache expired", func(t *testing.T) {
		clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		path := filepath.Join(t.TempDir(), "registry.db")
		reader := registry.New(
			registry.NewLocalRegistryStore(path),
			registry.WithCacheTTL(time.Minute),
			registry.WithTimeFunc(func() time.Time { return clock }),
		)
		writer := registry.New(registry.NewLocalRegistryStore(path))

		es, err := reader.ListEntities(ctx, "demo", true)
		require.NoError(t, err)
		assert.Empty(t, es)

		require.NoError(t, writer.ApplyEntity(ctx, "demo", entity("driver")))

		es, err = reader.ListEntities(ctx, "demo", true)
		require.NoError(t, err)
		assert.Empty(t, es, "cache is still fresh")

		clock = clock.Add(2 * time.Minute)
		es, err = reader.ListEntities(ctx, "demo", true)
		require.NoError(t, err)
		assert.Len(t, es, 1)
	})

	t.Run("teardown drops the document", func(t *testing.T) {
		r, path := newRegistry(t)
		require.NoError(t, r.ApplyEntity(ctx, "demo", entity("driver")))
		require.NoError(t, r.Teardown(ctx))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
	t.Run("a failed commit leaves the cache as it was", func(t *testing.T) {
		boom := errors.New("disk full")
		store := &flakyStore{inner: registry.NewLocalRegistryStore(filepath.Join(t.TempDir(), "registry.db"))}
		r := registry.New(store)
		require.NoError(t, r.ApplyEntity(ctx, "demo", entity("driver")))

		store.err = boom
		err := r.ApplyEntity(ctx, "demo", entity("customer"))
		require.ErrorIs(t, err, boom)
		err = r.DeleteEntity(ctx, "driver", "demo")
		require.ErrorIs(t, err, boom)

		es, err := r.ListEntities(ctx, "demo", true)
		require.NoError(t, err)
		require.Len(t, es, 1)
		assert.Equal(t, "driver", es[0].Name())
		assert.Equal(t, 1, store.reads, "cache should be kept")
	})

	t.Run("a conflict drops the cache and the next change reads the store again", func(t *testing.T) {
		store := &flakyStore{inner: registry.NewLocalRegistryStore(filepath.Join(t.TempDir(), "registry.db"))}
		r := registry.New(store)
		require.NoError(t, r.ApplyEntity(ctx, "demo", entity("driver")))
		assert.Equal(t, 1, store.reads)

		store.err = registry.ErrRegistryConflict
		err := r.ApplyEntity(ctx, "demo", entity("customer"))
		require.ErrorIs(t, err, registry.ErrRegistryConflict)

		store.err = nil
		require.NoError(t, r.ApplyFeatureView(ctx, "demo", featureView("driver_stats")))
		assert.Equal(t, 2, store.reads)

		snap, err := registry.New(store.inner).Snapshot(ctx, false)
		require.NoError(t, err)
		require.Len(t, snap.Entities, 1)
		assert.Equal(t, "driver", snap.Entities[0].Name())
		assert.Len(t, snap.FeatureViews, 1)
	})

	t.Run("replace reads the store before writing a copy of the document", func(t *testing.T) {
		store := &flakyStore{inner: registry.NewLocalRegistryStore(filepath.Join(t.TempDir(), "registry.db"))}
		r := registry.New(store)

		doc := core.NewRegistry()
		doc.Entities = append(doc.Entities, entity("driver"))
		require.NoError(t, r.Replace(ctx, doc))
		assert.Equal(t, 1, store.reads)
		assert.Empty(t, doc.VersionId, "argument should not be stamped")

		snap, err := r.Snapshot(ctx, true)
		require.NoError(t, err)
		assert.NotEmpty(t, snap.VersionId)
		assert.Len(t, snap.Entities, 1)
	})
}

// flakyStore counts reads and fails writes with err when it is set.
type flakyStore struct {
	inner registry.RegistryStore
	err   error
	reads int
}

func (f *flakyStore) GetRegistryProto(ctx context.Context) (*core.Registry, error) {
	f.reads += 1
	return f.inner.GetRegistryProto(ctx)
}

func (f *flakyStore) UpdateRegistryProto(ctx context.Context, r *core.Registry) error {
	if f.err != nil {
		return f.err
	}
	return f.inner.UpdateRegistryProto(ctx, r)
}

func (f *flakyStore) Teardown(ctx context.Context) error {
	return f.inner.Teardown(ctx)
}
