package core

import (
	"errors"
	"fmt"
	"time"
)

// FeatureService is feast.core.FeatureService.
type FeatureService struct {
	Spec *FeatureServiceSpec `json:"spec" yaml:"spec"`
	Meta *FeatureServiceMeta `json:"meta,omitempty" yaml:"meta,omitempty"`

	unknown []byte
}

// FeatureServiceSpec is feast.core.FeatureServiceSpec.
type FeatureServiceSpec struct {
	Name        string                   `json:"name" yaml:"name"`
	Project     string                   `json:"project,omitempty" yaml:"project,omitempty"`
	Features    []*FeatureViewProjection `json:"features,omitempty" yaml:"features,omitempty"`
	Tags        map[string]string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Owner       string                   `json:"owner,omitempty" yaml:"owner,omitempty"`

	unknown []byte
}

type FeatureServiceMeta struct {
	CreatedTimestamp     time.Time `json:"createdTimestamp" yaml:"createdTimestamp"`
	LastUpdatedTimestamp time.Time `json:"lastUpdatedTimestamp" yaml:"lastUpdatedTimestamp"`

	unknown []byte
}

// FeatureViewProjection selects features of a feature view for a feature service.
type FeatureViewProjection struct {
	FeatureViewName      string            `json:"featureViewName" yaml:"featureViewName"`
	FeatureViewNameAlias string            `json:"featureViewNameAlias,omitempty" yaml:"featureViewNameAlias,omitempty"`
	FeatureColumns       []*FeatureSpec    `json:"featureColumns,omitempty" yaml:"featureColumns,omitempty"`
	JoinKeyMap           map[string]string `json:"joinKeyMap,omitempty" yaml:"joinKeyMap,omitempty"`

	unknown []byte
}

func (fs *FeatureService) Marshal() ([]byte, error) {
	if fs == nil {
		return nil, nil
	}
	var b []byte
	var err error
	if fs.Spec != nil {
		if b, err = appendSubmessage(b, 1, fs.Spec); err != nil {
			return nil, err
		}
	}
	if fs.Meta != nil {
		if b, err = appendSubmessage(b, 2, fs.Meta); err != nil {
			return nil, err
		}
	}
	return append(b, fs.unknown...), nil
}

func (fs *FeatureService) Unmarshal(b []byte) error {
	*fs = FeatureService{}
	unknown, err := decodeFields(b, fields{
		1: messageField(func(v []byte) error {
			fs.Spec = new(FeatureServiceSpec)
			return fs.Spec.Unmarshal(v)
		}),
		2: messageField(func(v []byte) error {
			fs.Meta = new(FeatureServiceMeta)
			return fs.Meta.Unmarshal(v)
		}),
	})
	if err != nil {
		return err
	}
	fs.unknown = unknown
	return nil
}

func (s *FeatureServiceSpec) Marshal() ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	var b []byte
	var err error
	b = appendString(b, 1, s.Name)
	b = appendString(b, 2, s.Project)
	for _, p := range s.Features {
		if b, err = appendSubmessage(b, 3, p); err != nil {
			return nil, err
		}
	}
	b = appendStringMap(b, 4, s.Tags)
	b = appendString(b, 5, s.Description)
	b = appendString(b, 6, s.Owner)
	return append(b, s.unknown...), nil
}

func (s *FeatureServiceSpec) Unmarshal(b []byte) error {
	*s = FeatureServiceSpec{}
	unknown, err := decodeFields(b, fields{
		1: stringField(&s.Name),
		2: stringField(&s.Project),
		3: messageField(func(v []byte) error {
			p := new(FeatureViewProjection)
			if err := p.Unmarshal(v); err != nil {
				return err
			}
			s.Features = append(s.Features, p)
			return nil
		}),
		4: stringMapField(&s.Tags),
		5: stringField(&s.Description),
		6: stringField(&s.Owner),
	})
	if err != nil {
		return err
	}
	s.unknown = unknown
	return nil
}

func (m *FeatureServiceMeta) Marshal() ([]byte, error) {
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

func (m *FeatureServiceMeta) Unmarshal(b []byte) error {
	*m = FeatureServiceMeta{}
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

func (p *FeatureViewProjection) Marshal() ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	var b []byte
	var err error
	b = appendString(b, 1, p.FeatureViewName)
	for _, f := range p.FeatureColumns {
		if b, err = appendSubmessage(b, 2, f); err != nil {
			return nil, err
		}
	}
	b = appendString(b, 3, p.FeatureViewNameAlias)
	b = appendStringMap(b, 4, p.JoinKeyMap)
	return append(b, p.unknown...), nil
}

func (p *FeatureViewProjection) Unmarshal(b []byte) error {
	*p = FeatureViewProjection{}
	unknown, err := decodeFields(b, fields{
		1: stringField(&p.FeatureViewName),
		2: messageField(func(v []byte) error {
			f := new(FeatureSpec)
			if err := f.Unmarshal(v); err != nil {
				return err
			}
			p.FeatureColumns = append(p.FeatureColumns, f)
			return nil
		}),
		3: stringField(&p.FeatureViewNameAlias),
		4: stringMapField(&p.JoinKeyMap),
	})
	if err != nil {
		return err
	}
	p.unknown = unknown
	return nil
}

func (fs *FeatureService) Name() string {
	if fs == nil || fs.Spec == nil {
		return ""
	}
	return fs.Spec.Name
}

func (fs *FeatureService) Project() string {
	if fs == nil || fs.Spec == nil {
		return ""
	}
	return fs.Spec.Project
}

// Validate checks that the feature service can be registered.
func (fs *FeatureService) Validate() error {
	if fs == nil || fs.Spec == nil {
		return errors.New("feature service has no spec")
	}
	if fs.Spec.Name == "" {
		return errors.New("feature service name is required")
	}
	for i, p := range fs.Spec.Features {
		if p == nil || p.FeatureViewName == "" {
			return fmt.Errorf("feature service %s: projection #%d has no feature view name", fs.Spec.Name, i)
		}
	}
	return nil
}

func (fs *FeatureService) Clone() *FeatureService {
	if fs == nil {
		return nil
	}
	b, err := fs.Marshal()
	if err != nil {
		panic(err)
	}
	c := new(FeatureService)
	if err := c.Unmarshal(b); err != nil {
		panic(err)
	}
	return c
}

func (fs *FeatureService) Equal(other *FeatureService) bool {
	if fs == nil || other == nil {
		return fs == other
	}
	return equal(fs, other)
}

// Touch sets the project of the feature service and updates its timestamps.
//
// When created is not zero, it is kept as the creation timestamp.
func (fs *FeatureService) Touch(project string, created time.Time, now time.Time) {
	if fs.Spec == nil {
		fs.Spec = new(FeatureServiceSpec)
	}
	fs.Spec.Project = project
	if fs.Meta == nil {
		fs.Meta = new(FeatureServiceMeta)
	}
	if !created.IsZero() {
		fs.Meta.CreatedTimestamp = created
	} else if fs.Meta.CreatedTimestamp.IsZero() {
		fs.Meta.CreatedTimestamp = now
	}
	fs.Meta.LastUpdatedTimestamp = now
}

func (fs *FeatureService) Created() time.Time {
	if fs == nil || fs.Meta == nil {
		return time.Time{}
	}
	return fs.Meta.CreatedTimestamp
}
