package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a runtime value supplied by the caller. The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps f.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ArrayValue wraps items.
func ArrayValue(items ...Value) Value { return Value{kind: KindArray, list: items} }

// ObjectValue wraps fields.
func ObjectValue(fields map[string]Value) Value { return Value{kind: KindObject, obj: fields} }

// ValueOf converts a dynamically typed Go value into a Value. Integers and
// floats of every width become numbers, slices and arrays become arrays, maps
// keyed by strings become objects, time.Time becomes its RFC 3339 string and
// anything else is stringified with fmt.
func ValueOf(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return StringValue(v)
	case []byte:
		return StringValue(string(v))
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case float32:
		return NumberValue(float64(v))
	case int:
		return NumberValue(float64(v))
	case int8:
		return NumberValue(float64(v))
	case int16:
		return NumberValue(float64(v))
	case int32:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case uint:
		return NumberValue(float64(v))
	case uint8:
		return NumberValue(float64(v))
	case uint16:
		return NumberValue(float64(v))
	case uint32:
		return NumberValue(float64(v))
	case uint64:
		return NumberValue(float64(v))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return NumberValue(f)
		}
		return StringValue(v.String())
	case time.Time:
		return StringValue(v.Format(time.RFC3339Nano))
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = ValueOf(item)
		}
		return ArrayValue(items...)
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for key, item := range v {
			fields[key] = ValueOf(item)
		}
		return ObjectValue(fields)
	case fmt.Stringer:
		return StringValue(v.String())
	}
	return valueOfReflect(reflect.ValueOf(raw))
}

func valueOfReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ArrayValue()
		}
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = ValueOf(rv.Index(i).Interface())
		}
		return ArrayValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = ValueOf(iter.Value().Interface())
		}
		return ObjectValue(fields)
	case reflect.String:
		return StringValue(rv.String())
	case reflect.Bool:
		return BoolValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberValue(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NumberValue(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NumberValue(rv.Float())
	}
	return StringValue(fmt.Sprint(rv.Interface()))
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload and whether v holds a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Items returns the array elements, or nil when v is not an array.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.list
}

// Field returns an object field.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	field, ok := v.obj[name]
	return field, ok
}

// Keys returns the object field names in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for key := range v.obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Number coerces v into a finite float64. Only numbers and strings holding a
// decimal number (surrounding whitespace ignored) are coercible; empty
// strings, booleans, arrays, objects and null are not.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) {
			return 0, false
		}
		return v.num, true
	case KindString:
		trimmed := strings.TrimSpace(v.str)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// String returns the canonical text form of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindArray:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindObject:
		data, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(data)
	}
	return ""
}

// Interface converts v back into plain Go values (string, float64, bool,
// []any, map[string]any or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for key, item := range v.obj {
			out[key] = item.Interface()
		}
		return out
	}
	return nil
}

// FormatNumber renders f in its shortest decimal form without exponent.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Values is the runtime value map for one render call.
type Values map[string]Value

// NewValues converts a caller supplied map into Values.
func NewValues(raw map[string]any) Values {
	out := make(Values, len(raw))
	for key, value := range raw {
		out[key] = ValueOf(value)
	}
	return out
}

// Lookup resolves name, preferring an exact key match and otherwise walking
// dotted segments through nested objects.
func (vs Values) Lookup(name string) (Value, bool) {
	name = strings.TrimSpace(name)
	if name == "" || len(vs) == 0 {
		return Value{}, false
	}
	if v, ok := vs[name]; ok {
		return v, true
	}

	parts := strings.Split(name, ".")
	current, ok := vs[parts[0]]
	if !ok {
		return Value{}, false
	}
	for _, part := range parts[1:] {
		current, ok = current.Field(strings.TrimSpace(part))
		if !ok {
			return Value{}, false
		}
	}
	return current, true
}
