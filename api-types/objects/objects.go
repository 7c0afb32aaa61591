// Package objects defines how feast objects (entities, feature views and
// feature services) travel in request and response bodies.
package objects

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Proto is a feast object in protobuf wire format.
//
// It is encoded as base64 text in JSON.
type Proto []byte

// String returns the base64 encoded form.
func (b Proto) String() string {
	return base64.StdEncoding.EncodeToString(b)
}

func (b Proto) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *Proto) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// Payload is the body carrying one feast object: {"proto": "<base64>"}.
type Payload struct {
	Proto Proto `json:"proto"`
}

var ErrEmptyPayload = errors.New(`"proto" is empty`)

type marshaler interface {
	Marshal() ([]byte, error)
}

// Encode serializes obj into a Payload.
func Encode(obj marshaler) (Payload, error) {
	b, err := obj.Marshal()
	if err != nil {
		return Payload{}, err
	}
	return Payload{Proto: b}, nil
}

// Decode deserializes the object in p.
//
//	e, err := objects.Decode[core.Entity](payload)
func Decode[T any, P interface {
	*T
	Unmarshal([]byte) error
}](p Payload) (*T, error) {
	if p.Proto == nil {
		return nil, ErrEmptyPayload
	}
	obj := P(new(T))
	if err := obj.Unmarshal(p.Proto); err != nil {
		return nil, err
	}
	return (*T)(obj), nil
}

// DecodeAll deserializes objects in ps, in order.
func DecodeAll[T any, P interface {
	*T
	Unmarshal([]byte) error
}](ps []Payload) ([]*T, error) {
	ret := make([]*T, 0, len(ps))
	for _, p := range ps {
		obj, err := Decode[T, P](p)
		if err != nil {
			return nil, err
		}
		ret = append(ret, obj)
	}
	return ret, nil
}
