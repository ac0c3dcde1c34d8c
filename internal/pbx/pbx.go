// Package pbx carries StaffKeeper payloads over gRPC without generated
// stubs: every message is a google.protobuf.Struct holding the same JSON
// document the HTTP API uses. List results travel under the "items" key.
package pbx

import (
	"encoding/json"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "staffkeeper.v1.StaffKeeper"

// Method short names, as registered in the service descriptor.
const (
	Login              = "Login"
	Register           = "Register"
	Ping               = "Ping"
	ListEmployees      = "ListEmployees"
	GetEmployee        = "GetEmployee"
	CreateEmployee     = "CreateEmployee"
	UpdateEmployee     = "UpdateEmployee"
	DeleteEmployee     = "DeleteEmployee"
	EmployeesByManager = "EmployeesByManager"
	EmployeesByCompany = "EmployeesByCompany"
)

const itemsKey = "items"

// FullMethod returns the wire method name for a short name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// Encode converts v to a Struct. Slices are wrapped under "items"; params
// are added as string fields and override same-named fields of v.
func Encode(v any, params map[string]string) (*structpb.Struct, error) {
	m := map[string]any{}

	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		if isSlice(v) {
			var items []any
			if err := json.Unmarshal(b, &items); err != nil {
				return nil, fmt.Errorf("encode payload: %w", err)
			}
			m[itemsKey] = items
		} else if string(b) != "null" {
			if err := json.Unmarshal(b, &m); err != nil {
				return nil, fmt.Errorf("encode payload: payload must be a JSON object: %w", err)
			}
		}
	}

	for k, val := range params {
		m[k] = val
	}

	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return s, nil
}

// Decode fills out from s. A slice target is read from the "items" key.
func Decode(s *structpb.Struct, out any) error {
	if out == nil {
		return nil
	}
	if s == nil {
		s = &structpb.Struct{}
	}

	var b []byte
	var err error
	if isSlice(out) {
		items, ok := s.GetFields()[itemsKey]
		if !ok {
			b = []byte("[]")
		} else {
			b, err = protojson.Marshal(items)
		}
	} else {
		b, err = protojson.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// String returns the string form of field key, accepting string or number values.
func String(s *structpb.Struct, key string) string {
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return fmt.Sprintf("%d", int64(k.NumberValue))
	default:
		return ""
	}
}

func isSlice(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Slice
}
