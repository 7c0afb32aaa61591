package core_test

import (
	"testing"
	"time"

	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"gopkg.in/yaml.v3"
)

func sampleFeatureView() *core.FeatureView {
	return &core.FeatureView{
		Spec: &core.FeatureViewSpec{
			Name:     "driver_hourly_stats",
			Project:  "demo",
			Entities: []string{"driver"},
			Features: []*core.FeatureSpec{
				{Name: "conv_rate", ValueType: core.ValueType_FLOAT},
				{Name: "avg_daily_trips", ValueType: core.ValueType_INT64, Tags: map[string]string{"b": "2", "a": "1"}},
			},
			Tags:   map[string]string{"team": "driver_performance"},
			Ttl:    24 * time.Hour,
			Online: true,
			BatchSource: &core.DataSource{
				Name:                "driver_stats",
				Type:                core.SourceType_CUSTOM_SOURCE,
				TimestampField:      "event_timestamp",
				DataSourceClassType: core.MsSqlServerSourceClassType,
				FieldMapping:        map[string]string{"trips": "avg_daily_trips"},
			},
		},
		Meta: &core.FeatureViewMeta{
			CreatedTimestamp:     time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC),
			LastUpdatedTimestamp: time.Date(2024, 2, 3, 4, 5, 6, 7, time.UTC),
		},
	}
}

func TestEntity(t *testing.T) {
	t.Run("it survives encoding", func(t *testing.T) {
		e := &core.Entity{
			Spec: &core.EntitySpec{
				Name:        "driver",
				Project:     "demo",
				ValueType:   core.ValueType_INT64,
				Description: "driver id",
				JoinKey:     "driver_id",
				Tags:        map[string]string{"owner": "ops"},
				Owner:       "someone@example.com",
			},
			Meta: &core.EntityMeta{
				CreatedTimestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			},
		}
		b, err := e.Marshal()
		require.NoError(t, err)

		got := new(core.Entity)
		require.NoError(t, got.Unmarshal(b))
		assert.True(t, e.Equal(got))
		assert.Equal(t, "driver_id", got.Spec.JoinKey)
		assert.Equal(t, core.ValueType_INT64, got.Spec.ValueType)
		assert.True(t, got.Meta.CreatedTimestamp.Equal(e.Meta.CreatedTimestamp))
		assert.True(t, got.Meta.LastUpdatedTimestamp.IsZero())
	})

	t.Run("fields unknown to the model are kept", func(t *testing.T) {
		var spec []byte
		spec = protowire.AppendTag(spec, 1, protowire.BytesType)
		spec = protowire.AppendString(spec, "driver")
		spec = protowire.AppendTag(spec, 4, protowire.BytesType)
		spec = protowire.AppendString(spec, "driver_id")
		// a field this package does not know
		spec = protowire.AppendTag(spec, 77, protowire.VarintType)
		spec = protowire.AppendVarint(spec, 42)

		var entity []byte
		entity = protowire.AppendTag(entity, 1, protowire.BytesType)
		entity = protowire.AppendBytes(entity, spec)
		entity = protowire.AppendTag(entity, 99, protowire.BytesType)
		entity = protowire.AppendString(entity, "opaque")

		e := new(core.Entity)
		require.NoError(t, e.Unmarshal(entity))
		assert.Equal(t, "driver", e.Name())

		again, err := e.Marshal()
		require.NoError(t, err)
		assert.Equal(t, entity, again)
	})

	t.Run("broken payload is rejected", func(t *testing.T) {
		e := new(core.Entity)
		assert.Error(t, e.Unmarshal([]byte{0x0a, 0x05, 0x01}))
	})

	t.Run("Validate requires a name", func(t *testing.T) {
		assert.Error(t, (&core.Entity{}).Validate())
		assert.Error(t, (&core.Entity{Spec: &core.EntitySpec{}}).Validate())
		assert.NoError(t, (&core.Entity{Spec: &core.EntitySpec{Name: "x"}}).Validate())
	})

	t.Run("SetDefaults uses the name as join key", func(t *testing.T) {
		e := &core.Entity{Spec: &core.EntitySpec{Name: "customer"}}
		e.SetDefaults()
		assert.Equal(t, "customer", e.Spec.JoinKey)
	})

	t.Run("Touch keeps the given creation timestamp", func(t *testing.T) {
		created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		e := &core.Entity{Spec: &core.EntitySpec{Name: "customer"}}
		e.Touch("demo", created, now)
		assert.Equal(t, "demo", e.Project())
		assert.Equal(t, created, e.Meta.CreatedTimestamp)
		assert.Equal(t, now, e.Meta.LastUpdatedTimestamp)

		fresh := &core.Entity{Spec: &core.EntitySpec{Name: "customer"}}
		fresh.Touch("demo", time.Time{}, now)
		assert.Equal(t, now, fresh.Meta.CreatedTimestamp)
	})
}

func TestDummyEntity(t *testing.T) {
	t.Run("GuardDummy forces the canonical join key and value type", func(t *testing.T) {
		e := &core.Entity{Spec: &core.EntitySpec{
			Name: core.DummyEntityName, JoinKey: "whatever", ValueType: core.ValueType_STRING,
		}}
		e.GuardDummy()
		assert.Equal(t, core.DummyEntityID, e.Spec.JoinKey)
		assert.Equal(t, core.ValueType_INT32, e.Spec.ValueType)
		assert.True(t, e.Equal(core.DummyEntity()))
	})

	t.Run("GuardDummy leaves other entities alone", func(t *testing.T) {
		e := &core.Entity{Spec: &core.EntitySpec{
			Name: "driver", JoinKey: "driver_id", ValueType: core.ValueType_STRING,
		}}
		e.GuardDummy()
		assert.Equal(t, "driver_id", e.Spec.JoinKey)
		assert.Equal(t, core.ValueType_STRING, e.Spec.ValueType)
	})
}

func TestFeatureView(t *testing.T) {
	t.Run("it survives encoding", func(t *testing.T) {
		fv := sampleFeatureView()
		b, err := fv.Marshal()
		require.NoError(t, err)

		got := new(core.FeatureView)
		require.NoError(t, got.Unmarshal(b))
		assert.True(t, fv.Equal(got))
		assert.Equal(t, 24*time.Hour, got.Spec.Ttl)
		assert.Equal(t, []string{"driver"}, got.Spec.Entities)
		assert.Equal(t, "1", got.Spec.Features[1].Tags["a"])
		assert.Equal(t, core.MsSqlServerSourceClassType, got.Spec.BatchSource.DataSourceClassType)
	})

	t.Run("encoding is deterministic", func(t *testing.T) {
		a, err := sampleFeatureView().Marshal()
		require.NoError(t, err)
		for range 10 {
			b, err := sampleFeatureView().Marshal()
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})

	t.Run("Clone is deep", func(t *testing.T) {
		fv := sampleFeatureView()
		c := fv.Clone()
		c.Spec.Features[0].Name = "changed"
		assert.Equal(t, "conv_rate", fv.Spec.Features[0].Name)
		assert.False(t, fv.Equal(c))
	})

	t.Run("Validate rejects duplicated features", func(t *testing.T) {
		fv := sampleFeatureView()
		fv.Spec.Features = append(fv.Spec.Features, &core.FeatureSpec{Name: "conv_rate"})
		assert.Error(t, fv.Validate())
		assert.NoError(t, sampleFeatureView().Validate())
	})
}

func TestFeatureService(t *testing.T) {
	fs := &core.FeatureService{
		Spec: &core.FeatureServiceSpec{
			Name:    "driver_activity",
			Project: "demo",
			Features: []*core.FeatureViewProjection{
				{
					FeatureViewName: "driver_hourly_stats",
					FeatureColumns:  []*core.FeatureSpec{{Name: "conv_rate", ValueType: core.ValueType_FLOAT}},
					JoinKeyMap:      map[string]string{"driver_id": "id"},
				},
			},
			Description: "activity",
		},
	}

	b, err := fs.Marshal()
	require.NoError(t, err)
	got := new(core.FeatureService)
	require.NoError(t, got.Unmarshal(b))
	assert.True(t, fs.Equal(got))
	assert.Equal(t, "id", got.Spec.Features[0].JoinKeyMap["driver_id"])
	assert.NoError(t, got.Validate())

	got.Spec.Features[0].FeatureViewName = ""
	assert.Error(t, got.Validate())
}

func TestRegistry(t *testing.T) {
	r := core.NewRegistry()
	r.VersionId = "7c1f0e0e-4e3b-4b7e-9a51-000000000000"
	r.LastUpdated = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	r.Entities = append(r.Entities, core.DummyEntity())
	r.FeatureViews = append(r.FeatureViews, sampleFeatureView())

	b, err := r.Marshal()
	require.NoError(t, err)

	got := new(core.Registry)
	require.NoError(t, got.Unmarshal(b))
	assert.True(t, r.Equal(got))
	assert.Equal(t, core.RegistrySchemaVersion, got.RegistrySchemaVersion)
	assert.Len(t, got.Entities, 1)
	assert.Len(t, got.FeatureViews, 1)
	assert.Empty(t, got.FeatureServices)
}

func TestValueTypeText(t *testing.T) {
	var holder struct {
		Type core.ValueType `yaml:"type"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("type: INT64"), &holder))
	assert.Equal(t, core.ValueType_INT64, holder.Type)

	require.NoError(t, yaml.Unmarshal([]byte("type: UNKNOWN"), &holder))
	assert.Equal(t, core.ValueType_INVALID, holder.Type)

	assert.Error(t, yaml.Unmarshal([]byte("type: NOPE"), &holder))

	out, err := core.ValueType_STRING_LIST.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "STRING_LIST", string(out))
}
