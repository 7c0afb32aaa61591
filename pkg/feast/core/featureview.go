package core

import (
	"errors"
	"fmt"
	"time"
)

// FeatureView is feast.core.FeatureView.
type FeatureView struct {
	Spec *FeatureViewSpec `json:"spec" yaml:"spec"`
	Meta *FeatureViewMeta `json:"meta,omitempty" yaml:"meta,omitempty"`

	unknown []byte
}

// FeatureViewSpec is feast.core.FeatureViewSpec.
type FeatureViewSpec struct {
	Name          string            `json:"name" yaml:"name"`
	Project       string            `json:"project,omitempty" yaml:"project,omitempty"`
	Entities      []string          `json:"entities,omitempty" yaml:"entities,omitempty"`
	Features      []*FeatureSpec    `json:"features,omitempty" yaml:"features,omitempty"`
	EntityColumns []*FeatureSpec    `json:"entityColumns,omitempty" yaml:"entityColumns,omitempty"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Tags          map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Owner         string            `json:"owner,omitempty" yaml:"owner,omitempty"`
	Ttl           time.Duration     `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	BatchSource   *DataSource       `json:"batchSource,omitempty" yaml:"batchSource,omitempty"`
	Online        bool              `json:"online" yaml:"online"`

	unknown []byte
}

// FeatureViewMeta is feast.core.FeatureViewMeta.
//
// Materialization intervals are kept as fields unknown to this package.
type FeatureViewMeta struct {
	CreatedTimestamp     time.Time `json:"createdTimestamp" yaml:"createdTimestamp"`
	LastUpdatedTimestamp time.Time `json:"lastUpdatedTimestamp" yaml:"lastUpdatedTimestamp"`

	unknown []byte
}

// FeatureSpec is feast.core.FeatureSpecV2.
type FeatureSpec struct {
	Name        string            `json:"name" yaml:"name"`
	ValueType   ValueType         `json:"valueType" yaml:"valueType"`
	Tags        map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`

	unknown []byte
}

// DataSource is feast.core.DataSource.
//
// Source specific options (file, bigquery, custom, ...) are kept as fields
// unknown to this package.
type DataSource struct {
	Name                   string            `json:"name,omitempty" yaml:"name,omitempty"`
	Project                string            `json:"project,omitempty" yaml:"project,omitempty"`
	Type                   SourceType        `json:"type" yaml:"type"`
	FieldMapping           map[string]string `json:"fieldMapping,omitempty" yaml:"fieldMapping,omitempty"`
	TimestampField         string            `json:"timestampField,omitempty" yaml:"timestampField,omitempty"`
	DatePartitionColumn    string            `json:"datePartitionColumn,omitempty" yaml:"datePartitionColumn,omitempty"`
	CreatedTimestampColumn string            `json:"createdTimestampColumn,omitempty" yaml:"createdTimestampColumn,omitempty"`
	DataSourceClassType    string            `json:"dataSourceClassType,omitempty" yaml:"dataSourceClassType,omitempty"`

	unknown []byte
}

// MsSqlServerSourceClassType is the class type of data sources read by the
// MsSqlServer offline store.
const MsSqlServerSourceClassType = "feast_azure_provider.mssqlserver_source.MsSqlServerSource"

func (fv *FeatureView) Marshal() ([]byte, error) {
	if fv == nil {
		return nil, nil
	}
	var b []byte
	var err error
	if fv.Spec != nil {
		if b, err = appendSubmessage(b, 1, fv.Spec); err != nil {
			return nil, err
		}
	}
	if fv.Meta != nil {
		if b, err = appendSubmessage(b, 2, fv.Meta); err != nil {
			return nil, err
		}
	}
	return append(b, fv.unknown...), nil
}

func (fv *FeatureView) Unmarshal(b []byte) error {
	*fv = FeatureView{}
	unknown, err := decodeFields(b, fields{
		1: messageField(func(v []byte) error {
			fv.Spec = new(FeatureViewSpec)
			return fv.Spec.Unmarshal(v)
		}),
		2: messageField(func(v []byte) error {
			fv.Meta = new(FeatureViewMeta)
			return fv.Meta.Unmarshal(v)
		}),
	})
	if err != nil {
		return err
	}
	fv.unknown = unknown
	return nil
}

func (s *FeatureViewSpec) Marshal() ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	var b []byte
	var err error
	b = appendString(b, 1, s.Name)
	b = appendString(b, 2, s.Project)
	b = appendRepeatedString(b, 3, s.Entities)
	for _, f := range s.Features {
		if b, err = appendSubmessage(b, 4, f); err != nil {
			return nil, err
		}
	}
	b = appendStringMap(b, 5, s.Tags)
	if b, err = appendDuration(b, 6, s.Ttl); err != nil {
		return nil, err
	}
	if s.BatchSource != nil {
		if b, err = appendSubmessage(b, 7, s.BatchSource); err != nil {
			return nil, err
		}
	}
	b = appendBool(b, 8, s.Online)
	b = appendString(b, 10, s.Description)
	b = appendString(b, 11, s.Owner)
	for _, f := range s.EntityColumns {
		if b, err = appendSubmessage(b, 12, f); err != nil {
			return nil, err
		}
	}
	return append(b, s.unknown...), nil
}

func (s *FeatureViewSpec) Unmarshal(b []byte) error {
	*s = FeatureViewSpec{}
	unknown, err := decodeFields(b, fields{
		1: stringField(&s.Name),
		2: stringField(&s.Project),
		3: repeatedStringField(&s.Entities),
		4: messageField(func(v []byte) error {
			f := new(FeatureSpec)
			if err := f.Unmarshal(v); err != nil {
				return err
			}
			s.Features = append(s.Features, f)
			return nil
		}),
		5: stringMapField(&s.Tags),
		6: durationField(&s.Ttl),
		7: messageField(func(v []byte) error {
			s.BatchSource = new(DataSource)
			return s.BatchSource.Unmarshal(v)
		}),
		8:  boolField(&s.Online),
		10: stringField(&s.Description),
		11: stringField(&s.Owner),
		12: messageField(func(v []byte) error {
			f := new(FeatureSpec)
			if err := f.Unmarshal(v); err != nil {
				return err
			}
			s.EntityColumns = append(s.EntityColumns, f)
			return nil
		}),
	})
	if err != nil {
		return err
	}
	s.unknown = unknown
	return nil
}

func (m *FeatureViewMeta) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	var err error
	if b, err = appendTimestamp(b, 1, m.CreatedTimestamp); err != nil {
		return nil, err
	}
	if b, err = appendTimestamp(b, 2, m.LastUpdatedTimestamp); err != nil {
		return nil, err
	}
	return append(b, m.unknown...), nil
}

func (m *FeatureViewMeta) Unmarshal(b []byte) error {
	*m = FeatureViewMeta{}
	unknown, err := decodeFields(b, fields{
		1: timestampField(&m.CreatedTimestamp),
		2: timestampField(&m.LastUpdatedTimestamp),
	})
	if err != nil {
		return err
	}
	m.unknown = unknown
	return nil
}

func (f *FeatureSpec) Marshal() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	var b []byte
	b = appendString(b, 1, f.Name)
	b = appendEnum(b, 2, f.ValueType)
	b = appendStringMap(b, 3, f.Tags)
	b = appendString(b, 4, f.Description)
	return append(b, f.unknown...), nil
}

func (f *FeatureSpec) Unmarshal(b []byte) error {
	*f = FeatureSpec{}
	unknown, err := decodeFields(b, fields{
		1: stringField(&f.Name),
		2: enumField(&f.ValueType),
		3: stringMapField(&f.Tags),
		4: stringField(&f.Description),
	})
	if err != nil {
		return err
	}
	f.unknown = unknown
	return nil
}

func (d *DataSource) Marshal() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	var b []byte
	b = appendEnum(b, 1, d.Type)
	b = appendStringMap(b, 2, d.FieldMapping)
	b = appendString(b, 3, d.TimestampField)
	b = appendString(b, 5, d.DatePartitionColumn)
	b = appendString(b, 6, d.CreatedTimestampColumn)
	b = appendString(b, 17, d.DataSourceClassType)
	b = appendString(b, 20, d.Name)
	b = appendString(b, 21, d.Project)
	return append(b, d.unknown...), nil
}

func (d *DataSource) Unmarshal(b []byte) error {
	*d = DataSource{}
	unknown, err := decodeFields(b, fields{
		1:  enumField(&d.Type),
		2:  stringMapField(&d.FieldMapping),
		3:  stringField(&d.TimestampField),
		5:  stringField(&d.DatePartitionColumn),
		6:  stringField(&d.CreatedTimestampColumn),
		17: stringField(&d.DataSourceClassType),
		20: stringField(&d.Name),
		21: stringField(&d.Project),
	})
	if err != nil {
		return err
	}
	d.unknown = unknown
	return nil
}

func (fv *FeatureView) Name() string {
	if fv == nil || fv.Spec == nil {
		return ""
	}
	return fv.Spec.Name
}

func (fv *FeatureView) Project() string {
	if fv == nil || fv.Spec == nil {
		return ""
	}
	return fv.Spec.Project
}

// Validate checks that the feature view can be registered.
func (fv *FeatureView) Validate() error {
	if fv == nil || fv.Spec == nil {
		return errors.New("feature view has no spec")
	}
	if fv.Spec.Name == "" {
		return errors.New("feature view name is required")
	}
	seen := map[string]struct{}{}
	for i, f := range fv.Spec.Features {
		if f == nil || f.Name == "" {
			return fmt.Errorf("feature view %s: feature #%d has no name", fv.Spec.Name, i)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("feature view %s: duplicated feature %s", fv.Spec.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	if fv.Spec.Ttl < 0 {
		return fmt.Errorf("feature view %s: ttl should not be negative", fv.Spec.Name)
	}
	return nil
}

func (fv *FeatureView) Clone() *FeatureView {
	if fv == nil {
		return nil
	}
	b, err := fv.Marshal()
	if err != nil {
		panic(err)
	}
	c := new(FeatureView)
	if err := c.Unmarshal(b); err != nil {
		panic(err)
	}
	return c
}

func (fv *FeatureView) Equal(other *FeatureView) bool {
	if fv == nil || other == nil {
		return fv == other
	}
	return equal(fv, other)
}

// Touch sets the project of the feature view and updates its timestamps.
//
// When created is not zero, it is kept as the creation timestamp.
func (fv *FeatureView) Touch(project string, created time.Time, now time.Time) {
	if fv.Spec == nil {
		fv.Spec = new(FeatureViewSpec)
	}
	fv.Spec.Project = project
	if fv.Meta == nil {
		fv.Meta = new(FeatureViewMeta)
	}
	if !created.IsZero() {
		fv.Meta.CreatedTimestamp = created
	} else if fv.Meta.CreatedTimestamp.IsZero() {
		fv.Meta.CreatedTimestamp = now
	}
	fv.Meta.LastUpdatedTimestamp = now
}

func (fv *FeatureView) Created() time.Time {
	if fv == nil || fv.Meta == nil {
		return time.Time{}
	}
	return fv.Meta.CreatedTimestamp
}
