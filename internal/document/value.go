// Package document defines the tagged value tree every output is converted to
// before serialization, and the JSON encoding of that tree.
//
// A Value is one of null, number, integer, string, boolean, list or ordered
// object. Non-finite floats collapse to null at construction, so an encoded
// document can never contain NaN or Infinity tokens.
package document

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindInt
	KindString
	KindBool
	KindList
	KindObject
)

// Value is an immutable JSON-shaped value. The zero Value is null.
type Value struct {
	kind   Kind
	num    float64
	i      int64
	str    string
	b      bool
	items  []Value
	fields []Field
}

// Field is one key of an object, kept in insertion order.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Float returns a number, or null when f is NaN or infinite.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, num: f}
}

// OptFloat returns null for a nil pointer, otherwise Float(*f).
func OptFloat(f *float64) Value {
	if f == nil {
		return Null()
	}
	return Float(*f)
}

// Int returns an integer value.
func Int(n int) Value { return Value{kind: KindInt, i: int64(n)} }

// OptInt returns null for a nil pointer, otherwise Int(*n).
func OptInt(n *int) Value {
	if n == nil {
		return Null()
	}
	return Int(*n)
}

// String returns a string value. The empty string is kept as is.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Label returns a string value, or null for the empty string. Missing text
// fields are carried as "" throughout the pipeline.
func Label(s string) Value {
	if s == "" {
		return Null()
	}
	return String(s)
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns an ordered sequence. A nil slice encodes as [].
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Floats converts a float slice into a list, nulling non-finite entries.
func Floats(fs []float64) Value {
	items := make([]Value, len(fs))
	for i, f := range fs {
		items[i] = Float(f)
	}
	return List(items...)
}

// Object returns an object whose keys encode in the given order.
func Object(fields ...Field) Value {
	return Value{kind: KindObject, fields: fields}
}

// F is shorthand for a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the numeric content of a number or integer value.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Str returns the content of a string value.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Items returns the elements of a list value.
func (v Value) Items() []Value { return v.items }

// Fields returns the fields of an object value.
func (v Value) Fields() []Field { return v.fields }

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Null(), false
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) write(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindNumber:
		buf.Write(strconv.AppendFloat(nil, v.num, 'g', -1, 64))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindString:
		return writeString(buf, v.str)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// writeString quotes s without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
