// Package manifest reads feast objects from YAML documents.
//
// A document is an object with its kind:
//
//	kind: entity
//	spec:
//	  name: driver
//	  joinKey: driver_id
//	  valueType: INT64
//
// Kinds are "entity", "featureview" and "featureservice" (case and "_" are ignored).
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/azure/feast-azure/pkg/feast/core"
	"github.com/azure/feast-azure/pkg/featurestore"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindEntity         Kind = "entity"
	KindFeatureView    Kind = "featureview"
	KindFeatureService Kind = "featureservice"
)

var ErrUnknownKind = errors.New("unknown kind")

// ParseKind normalizes kind names.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.ReplaceAll(s, "_", "")))
	switch k {
	case KindEntity, KindFeatureView, KindFeatureService:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindOf tells the kind of the object.
func KindOf(obj featurestore.Object) (Kind, error) {
	switch obj.(type) {
	case featurestore.EntityObject:
		return KindEntity, nil
	case featurestore.FeatureViewObject:
		return KindFeatureView, nil
	case featurestore.FeatureServiceObject:
		return KindFeatureService, nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownKind, obj)
}

type header struct {
	Kind string `yaml:"kind"`
}

// Decode reads all documents in r.
//
// # Args
//
// - r: YAML stream.
//
// - defaultKind: kind of documents without "kind". When it is empty, "kind" is required.
//
// # Returns
//
// - []featurestore.Object: objects in the order of documents.
//
// - error
func Decode(r io.Reader, defaultKind Kind) ([]featurestore.Object, error) {
	dec := yaml.NewDecoder(r)
	objects := []featurestore.Object{}
	for nth := 1; ; nth++ {
		node := new(yaml.Node)
		if err := dec.Decode(node); errors.Is(err, io.EOF) {
			return objects, nil
		} else if err != nil {
			return nil, fmt.Errorf("document #%d: %w", nth, err)
		}

		obj, err := decodeNode(node, defaultKind)
		if err != nil {
			return nil, fmt.Errorf("document #%d: %w", nth, err)
		}
		objects = append(objects, obj)
	}
}

func decodeNode(node *yaml.Node, defaultKind Kind) (featurestore.Object, error) {
	h := header{}
	if err := node.Decode(&h); err != nil {
		return nil, err
	}

	kind := defaultKind
	if h.Kind != "" {
		k, err := ParseKind(h.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}

	switch kind {
	case KindEntity:
		e := new(core.Entity)
		if err := node.Decode(e); err != nil {
			return nil, err
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		return featurestore.EntityObject{Entity: e}, nil
	case KindFeatureView:
		fv := new(core.FeatureView)
		if err := node.Decode(fv); err != nil {
			return nil, err
		}
		if err := fv.Validate(); err != nil {
			return nil, err
		}
		return featurestore.FeatureViewObject{FeatureView: fv}, nil
	case KindFeatureService:
		fs := new(core.FeatureService)
		if err := node.Decode(fs); err != nil {
			return nil, err
		}
		if err := fs.Validate(); err != nil {
			return nil, err
		}
		return featurestore.FeatureServiceObject{FeatureService: fs}, nil
	case "":
		return nil, fmt.Errorf("%w: kind is not given", ErrUnknownKind)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// ReadFiles decodes documents in files, in order.
func ReadFiles(defaultKind Kind, files ...string) ([]featurestore.Object, error) {
	objects := []featurestore.Object{}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		objs, err := Decode(f, defaultKind)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		objects = append(objects, objs...)
	}
	return objects, nil
}
