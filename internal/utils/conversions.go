package utils

import (
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodeResponse serializes a response map into one msgpack frame.
func EncodeResponse(response map[string]interface{}) ([]byte, error) {
	return msgpack.Marshal(response)
}

// MapToStruct converts a request or response map into a protobuf Struct for
// the gRPC transport. Integers of any width become numbers and string slices
// become lists.
func MapToStruct(m map[string]interface{}) (*structpb.Struct, error) {
	return structpb.NewStruct(normalizeMap(m))
}

// StructToMap converts a protobuf Struct back into a map. Protobuf carries
// every number as a double, so integral values are returned as int64.
func StructToMap(s *structpb.Struct) map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}
	out := s.AsMap()
	for k, v := range out {
		out[k] = integralNumbers(v)
	}
	return out
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	case map[string]interface{}:
		return normalizeMap(v)
	default:
		return v
	}
}

func integralNumbers(v interface{}) interface{} {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
		return v
	case []interface{}:
		for i, e := range v {
			v[i] = integralNumbers(e)
		}
		return v
	case map[string]interface{}:
		for k, e := range v {
			v[k] = integralNumbers(e)
		}
		return v
	default:
		return v
	}
}
