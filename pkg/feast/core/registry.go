package core

import "time"

// RegistrySchemaVersion is the schema version stamped on new registries.
const RegistrySchemaVersion = "1"

// Registry is feast.core.Registry.
//
// Object kinds other than entities, feature views and feature services
// (data sources, on demand feature views, project metadata, ...) are kept
// as fields unknown to this package.
type Registry struct {
	Entities              []*Entity         `json:"entities" yaml:"entities"`
	FeatureViews          []*FeatureView    `json:"featureViews" yaml:"featureViews"`
	FeatureServices       []*FeatureService `json:"featureServices" yaml:"featureServices"`
	RegistrySchemaVersion string            `json:"registrySchemaVersion" yaml:"registrySchemaVersion"`
	VersionId             string            `json:"versionId" yaml:"versionId"`
	LastUpdated           time.Time         `json:"lastUpdated" yaml:"lastUpdated"`

	unknown []byte
}

func (r *Registry) Marshal() ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	var b []byte
	var err error
	for _, e := range r.Entities {
		if b, err = appendSubmessage(b, 1, e); err != nil {
			return nil, err
		}
	}
	b = appendString(b, 3, r.RegistrySchemaVersion)
	b = appendString(b, 4, r.VersionId)
	if b, err = appendTimestamp(b, 5, r.LastUpdated); err != nil {
		return nil, err
	}
	for _, fv := range r.FeatureViews {
		if b, err = appendSubmessage(b, 6, fv); err != nil {
			return nil, err
		}
	}
	for _, fs := range r.FeatureServices {
		if b, err = appendSubmessage(b, 7, fs); err != nil {
			return nil, err
		}
	}
	return append(b, r.unknown...), nil
}

func (r *Registry) Unmarshal(b []byte) error {
	*r = Registry{}
	unknown, err := decodeFields(b, fields{
		1: messageField(func(v []byte) error {
			e := new(Entity)
			if err := e.Unmarshal(v); err != nil {
				return err
			}
			r.Entities = append(r.Entities, e)
			return nil
		}),
		3: stringField(&r.RegistrySchemaVersion),
		4: stringField(&r.VersionId),
		5: timestampField(&r.LastUpdated),
		6: messageField(func(v []byte) error {
			fv := new(FeatureView)
			if err := fv.Unmarshal(v); err != nil {
				return err
			}
			r.FeatureViews = append(r.FeatureViews, fv)
			return nil
		}),
		7: messageField(func(v []byte) error {
			fs := new(FeatureService)
			if err := fs.Unmarshal(v); err != nil {
				return err
			}
			r.FeatureServices = append(r.FeatureServices, fs)
			return nil
		}),
	})
	if err != nil {
		return err
	}
	r.unknown = unknown
	return nil
}

func (r *Registry) Clone() *Registry {
	if r == nil {
		return nil
	}
	b, err := r.Marshal()
	if err != nil {
		panic(err)
	}
	c := new(Registry)
	if err := c.Unmarshal(b); err != nil {
		panic(err)
	}
	return c
}

func (r *Registry) Equal(other *Registry) bool {
	if r == nil || other == nil {
		return r == other
	}
	return equal(r, other)
}

// NewRegistry returns an empty registry of the current schema version.
func NewRegistry() *Registry {
	return &Registry{RegistrySchemaVersion: RegistrySchemaVersion}
}
