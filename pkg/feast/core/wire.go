package core

import (
	"fmt"
	"sort"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// fieldDecoder decodes one field number of a message.
//
// Exactly one of bytes or varint is set, matching typ.
type fieldDecoder struct {
	typ    protowire.Type
	bytes  func(v []byte) error
	varint func(v uint64) error
}

type fields map[protowire.Number]fieldDecoder

// decodeFields walks the fields of the message b.
//
// Fields which are not in fs (or which have an unexpected wire type) are
// returned as-is, in order, so that they can be written back on encoding.
func decodeFields(b []byte, fs fields) ([]byte, error) {
	var unknown []byte
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		m := protowire.ConsumeFieldValue(num, typ, b[n:])
		if m < 0 {
			return nil, fmt.Errorf("field %d: %w", num, protowire.ParseError(m))
		}
		raw := b[:n+m]
		val := b[n : n+m]
		b = b[n+m:]

		f, ok := fs[num]
		if !ok || f.typ != typ {
			unknown = append(unknown, raw...)
			continue
		}

		var err error
		switch typ {
		case protowire.BytesType:
			v, _ := protowire.ConsumeBytes(val)
			err = f.bytes(v)
		case protowire.VarintType:
			v, _ := protowire.ConsumeVarint(val)
			err = f.varint(v)
		}
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", num, err)
		}
	}
	return unknown, nil
}

func stringField(p *string) fieldDecoder {
	return fieldDecoder{
		typ: protowire.BytesType,
		bytes: func(v []byte) error {
			*p = string(v)
			return nil
		},
	}
}

func repeatedStringField(p *[]string) fieldDecoder {
	return fieldDecoder{
		typ: protowire.BytesType,
		bytes: func(v []byte) error {
			*p = append(*p, string(v))
			return nil
		},
	}
}

func boolField(p *bool) fieldDecoder {
	return fieldDecoder{
		typ: protowire.VarintType,
		varint: func(v uint64) error {
			*p = protowire.DecodeBool(v)
			return nil
		},
	}
}

func enumField[E ~int32](p *E) fieldDecoder {
	return fieldDecoder{
		typ: protowire.VarintType,
		varint: func(v uint64) error {
			*p = E(int32(v))
			return nil
		},
	}
}

func messageField(decode func(v []byte) error) fieldDecoder {
	return fieldDecoder{typ: protowire.BytesType, bytes: decode}
}

// stringMapField decodes one entry of a map<string, string> field.
func stringMapField(p *map[string]string) fieldDecoder {
	return messageField(func(v []byte) error {
		var key, value string
		if _, err := decodeFields(v, fields{
			1: stringField(&key),
			2: stringField(&value),
		}); err != nil {
			return err
		}
		if *p == nil {
			*p = map[string]string{}
		}
		(*p)[key] = value
		return nil
	})
}

func timestampField(p *time.Time) fieldDecoder {
	return messageField(func(v []byte) error {
		ts := new(timestamppb.Timestamp)
		if err := proto.Unmarshal(v, ts); err != nil {
			return err
		}
		*p = ts.AsTime()
		return nil
	})
}

func durationField(p *time.Duration) fieldDecoder {
	return messageField(func(v []byte) error {
		d := new(durationpb.Duration)
		if err := proto.Unmarshal(v, d); err != nil {
			return err
		}
		*p = d.AsDuration()
		return nil
	})
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendRepeatedString(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendEnum[E ~int32](b []byte, num protowire.Number, v E) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

// appendStringMap writes a map<string, string> field with entries sorted by key.
func appendStringMap(b []byte, num protowire.Number, m map[string]string) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var entry []byte
		entry = appendString(entry, 1, k)
		entry = appendString(entry, 2, m[k])
		b = appendMessage(b, num, entry)
	}
	return b
}

var deterministic = proto.MarshalOptions{Deterministic: true}

func appendTimestamp(b []byte, num protowire.Number, t time.Time) ([]byte, error) {
	if t.IsZero() {
		return b, nil
	}
	m, err := deterministic.Marshal(timestamppb.New(t))
	if err != nil {
		return nil, err
	}
	return appendMessage(b, num, m), nil
}

func appendDuration(b []byte, num protowire.Number, d time.Duration) ([]byte, error) {
	if d == 0 {
		return b, nil
	}
	m, err := deterministic.Marshal(durationpb.New(d))
	if err != nil {
		return nil, err
	}
	return appendMessage(b, num, m), nil
}

// message is implemented by every type of this package which has a wire form.
type message interface {
	Marshal() ([]byte, error)
}

func appendSubmessage(b []byte, num protowire.Number, m message) ([]byte, error) {
	bs, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	return appendMessage(b, num, bs), nil
}

// equal reports whether a and b have the same wire form.
//
// Encoding is deterministic, so this is equivalent to field-wise comparison
// (including fields unknown to this package).
func equal(a, b message) bool {
	ab, err := a.Marshal()
	if err != nil {
		return false
	}
	bb, err := b.Marshal()
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
