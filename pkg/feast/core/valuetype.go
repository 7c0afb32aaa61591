package core

import (
	"fmt"
	"strconv"
)

// ValueType is the type of values of an entity join key or a feature.
//
// Numbering follows feast's ValueType.Enum.
type ValueType int32

const (
	ValueType_INVALID             ValueType = 0
	ValueType_BYTES               ValueType = 1
	ValueType_STRING              ValueType = 2
	ValueType_INT32               ValueType = 3
	ValueType_INT64               ValueType = 4
	ValueType_DOUBLE              ValueType = 5
	ValueType_FLOAT               ValueType = 6
	ValueType_BOOL                ValueType = 7
	ValueType_UNIX_TIMESTAMP      ValueType = 8
	ValueType_BYTES_LIST          ValueType = 11
	ValueType_STRING_LIST         ValueType = 12
	ValueType_INT32_LIST          ValueType = 13
	ValueType_INT64_LIST          ValueType = 14
	ValueType_DOUBLE_LIST         ValueType = 15
	ValueType_FLOAT_LIST          ValueType = 16
	ValueType_BOOL_LIST           ValueType = 17
	ValueType_UNIX_TIMESTAMP_LIST ValueType = 18
	ValueType_NULL                ValueType = 19
)

var valueTypeNames = map[ValueType]string{
	ValueType_INVALID:             "INVALID",
	ValueType_BYTES:               "BYTES",
	ValueType_STRING:              "STRING",
	ValueType_INT32:               "INT32",
	ValueType_INT64:               "INT64",
	ValueType_DOUBLE:              "DOUBLE",
	ValueType_FLOAT:               "FLOAT",
	ValueType_BOOL:                "BOOL",
	ValueType_UNIX_TIMESTAMP:      "UNIX_TIMESTAMP",
	ValueType_BYTES_LIST:          "BYTES_LIST",
	ValueType_STRING_LIST:         "STRING_LIST",
	ValueType_INT32_LIST:          "INT32_LIST",
	ValueType_INT64_LIST:          "INT64_LIST",
	ValueType_DOUBLE_LIST:         "DOUBLE_LIST",
	ValueType_FLOAT_LIST:          "FLOAT_LIST",
	ValueType_BOOL_LIST:           "BOOL_LIST",
	ValueType_UNIX_TIMESTAMP_LIST: "UNIX_TIMESTAMP_LIST",
	ValueType_NULL:                "NULL",
}

var valueTypeValues = func() map[string]ValueType {
	m := make(map[string]ValueType, len(valueTypeNames))
	for k, v := range valueTypeNames {
		m[v] = k
	}
	// feast's python SDK spells INVALID as UNKNOWN.
	m["UNKNOWN"] = ValueType_INVALID
	return m
}()

func (v ValueType) String() string {
	if n, ok := valueTypeNames[v]; ok {
		return n
	}
	return strconv.Itoa(int(v))
}

func (v ValueType) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *ValueType) UnmarshalText(text []byte) error {
	if vt, ok := valueTypeValues[string(text)]; ok {
		*v = vt
		return nil
	}
	if n, err := strconv.ParseInt(string(text), 10, 32); err == nil {
		*v = ValueType(n)
		return nil
	}
	return fmt.Errorf("unknown value type: %q", string(text))
}

// SourceType is the kind of a DataSource. Numbering follows feast's DataSource.SourceType.
type SourceType int32

const (
	SourceType_INVALID         SourceType = 0
	SourceType_BATCH_FILE      SourceType = 1
	SourceType_BATCH_BIGQUERY  SourceType = 2
	SourceType_STREAM_KAFKA    SourceType = 3
	SourceType_STREAM_KINESIS  SourceType = 4
	SourceType_BATCH_REDSHIFT  SourceType = 5
	SourceType_CUSTOM_SOURCE   SourceType = 6
	SourceType_REQUEST_SOURCE  SourceType = 7
	SourceType_BATCH_SNOWFLAKE SourceType = 8
	SourceType_PUSH_SOURCE     SourceType = 9
	SourceType_BATCH_TRINO     SourceType = 10
	SourceType_BATCH_SPARK     SourceType = 11
	SourceType_BATCH_ATHENA    SourceType = 12
)

var sourceTypeNames = map[SourceType]string{
	SourceType_INVALID:         "INVALID",
	SourceType_BATCH_FILE:      "BATCH_FILE",
	SourceType_BATCH_BIGQUERY:  "BATCH_BIGQUERY",
	SourceType_STREAM_KAFKA:    "STREAM_KAFKA",
	SourceType_STREAM_KINESIS:  "STREAM_KINESIS",
	SourceType_BATCH_REDSHIFT:  "BATCH_REDSHIFT",
	SourceType_CUSTOM_SOURCE:   "CUSTOM_SOURCE",
	SourceType_REQUEST_SOURCE:  "REQUEST_SOURCE",
	SourceType_BATCH_SNOWFLAKE: "BATCH_SNOWFLAKE",
	SourceType_PUSH_SOURCE:     "PUSH_SOURCE",
	SourceType_BATCH_TRINO:     "BATCH_TRINO",
	SourceType_BATCH_SPARK:     "BATCH_SPARK",
	SourceType_BATCH_ATHENA:    "BATCH_ATHENA",
}

func (s SourceType) String() string {
	if n, ok := sourceTypeNames[s]; ok {
		return n
	}
	return strconv.Itoa(int(s))
}

func (s SourceType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SourceType) UnmarshalText(text []byte) error {
	for k, v := range sourceTypeNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	if n, err := strconv.ParseInt(string(text), 10, 32); err == nil {
		*s = SourceType(n)
		return nil
	}
	return fmt.Errorf("unknown source type: %q", string(text))
}
