package core

import (
	"errors"
	"time"
)

// Entity is feast.core.Entity.
type Entity struct {
	Spec *EntitySpec `json:"spec" yaml:"spec"`
	Meta *EntityMeta `json:"meta,omitempty" yaml:"meta,omitempty"`

	unknown []byte
}

// EntitySpec is feast.core.EntitySpecV2.
type EntitySpec struct {
	Name        string            `json:"name" yaml:"name"`
	Project     string            `json:"project,omitempty" yaml:"project,omitempty"`
	ValueType   ValueType         `json:"valueType" yaml:"valueType"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	JoinKey     string            `json:"joinKey" yaml:"joinKey"`
	Tags        map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Owner       string            `json:"owner,omitempty" yaml:"owner,omitempty"`

	unknown []byte
}

// EntityMeta is feast.core.EntityMeta.
type EntityMeta struct {
	CreatedTimestamp     time.Time `json:"createdTimestamp" yaml:"createdTimestamp"`
	LastUpdatedTimestamp time.Time `json:"lastUpdatedTimestamp" yaml:"lastUpdatedTimestamp"`

	unknown []byte
}

func (e *Entity) Marshal() ([]byte, error) {
	if e == nil {
		return nil, nil
	}
	var b []byte
	var err error
	if e.Spec != nil {
		if b, err = appendSubmessage(b, 1, e.Spec); err != nil {
			return nil, err
		}
	}
	if e.Meta != nil {
		if b, err = appendSubmessage(b, 2, e.Meta); err != nil {
			return nil, err
		}
	}
	return append(b, e.unknown...), nil
}

func (e *Entity) Unmarshal(b []byte) error {
	*e = Entity{}
	unknown, err := decodeFields(b, fields{
		1: messageField(func(v []byte) error {
			e.Spec = new(EntitySpec)
			return e.Spec.Unmarshal(v)
		}),
		2: messageField(func(v []byte) error {
			e.Meta = new(EntityMeta)
			return e.Meta.Unmarshal(v)
		}),
	})
	if err != nil {
		return err
	}
	e.unknown = unknown
	return nil
}

func (s *EntitySpec) Marshal() ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	var b []byte
	b = appendString(b, 1, s.Name)
	b = appendEnum(b, 2, s.ValueType)
	b = appendString(b, 3, s.Description)
	b = appendString(b, 4, s.JoinKey)
	b = appendStringMap(b, 8, s.Tags)
	b = appendString(b, 9, s.Project)
	b = appendString(b, 10, s.Owner)
	return append(b, s.unknown...), nil
}

func (s *EntitySpec) Unmarshal(b []byte) error {
	*s = EntitySpec{}
	unknown, err := decodeFields(b, fields{
		1:  stringField(&s.Name),
		2:  enumField(&s.ValueType),
		3:  stringField(&s.Description),
		4:  stringField(&s.JoinKey),
		8:  stringMapField(&s.Tags),
		9:  stringField(&s.Project),
		10: stringField(&s.Owner),
	})
	if err != nil {
		return err
	}
	s.unknown = unknown
	return nil
}

func (m *EntityMeta) Marshal() ([]byte, error) {
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

func (m *EntityMeta) Unmarshal(b []byte) error {
	*m = EntityMeta{}
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

// Name returns the name of the entity, or "" when it has no spec.
func (e *Entity) Name() string {
	if e == nil || e.Spec == nil {
		return ""
	}
	return e.Spec.Name
}

// Project returns the project of the entity, or "" when it has no spec.
func (e *Entity) Project() string {
	if e == nil || e.Spec == nil {
		return ""
	}
	return e.Spec.Project
}

// Validate checks that the entity can be registered.
func (e *Entity) Validate() error {
	if e == nil || e.Spec == nil {
		return errors.New("entity has no spec")
	}
	if e.Spec.Name == "" {
		return errors.New("entity name is required")
	}
	return nil
}

// SetDefaults fills fields which feast derives when they are omitted.
//
// The join key defaults to the entity name.
func (e *Entity) SetDefaults() {
	if e == nil || e.Spec == nil {
		return
	}
	if e.Spec.JoinKey == "" {
		e.Spec.JoinKey = e.Spec.Name
	}
}

func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	b, err := e.Marshal()
	if err != nil {
		panic(err)
	}
	c := new(Entity)
	if err := c.Unmarshal(b); err != nil {
		panic(err)
	}
	return c
}

func (e *Entity) Equal(other *Entity) bool {
	if e == nil || other == nil {
		return e == other
	}
	return equal(e, other)
}

// Touch sets the project of the entity and updates its timestamps.
//
// When created is not zero, it is kept as the creation timestamp.
func (e *Entity) Touch(project string, created time.Time, now time.Time) {
	if e.Spec == nil {
		e.Spec = new(EntitySpec)
	}
	e.Spec.Project = project
	if e.Meta == nil {
		e.Meta = new(EntityMeta)
	}
	if !created.IsZero() {
		e.Meta.CreatedTimestamp = created
	} else if e.Meta.CreatedTimestamp.IsZero() {
		e.Meta.CreatedTimestamp = now
	}
	e.Meta.LastUpdatedTimestamp = now
}

// Created returns the creation timestamp, or zero when it has no meta.
func (e *Entity) Created() time.Time {
	if e == nil || e.Meta == nil {
		return time.Time{}
	}
	return e.Meta.CreatedTimestamp
}
