// Package report holds the aggregated, ordered result of one analysis run.
// Sections carry tagged values so renderers can switch on the shape
// instead of inspecting types at runtime.
package report

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind tags the shape held by a Value.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindList
	KindMapping
)

// Value is one of: text, number, list of strings, or an ordered mapping.
type Value struct {
	kind    Kind
	text    string
	number  int
	list    []string
	entries []Entry
}

// Entry is a key/value pair inside a mapping Value.
type Entry struct {
	Key   string
	Value Value
}

// Text creates a text Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number creates a numeric Value.
func Number(n int) Value { return Value{kind: KindNumber, number: n} }

// List creates a list Value. A nil slice becomes an empty list.
func List(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Mapping creates an ordered mapping Value.
func Mapping(entries ...Entry) Value {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Value{kind: KindMapping, entries: cp}
}

// E is shorthand for building an Entry.
func E(key string, v Value) Entry { return Entry{Key: key, Value: v} }

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

// Number returns the numeric payload (zero unless KindNumber).
func (v Value) Number() int { return v.number }

// List returns a copy of the list payload.
func (v Value) List() []string {
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// Entries returns a copy of the mapping payload.
func (v Value) Entries() []Entry {
	cp := make([]Entry, len(v.entries))
	copy(cp, v.entries)
	return cp
}

// String renders scalars as plain text. Lists and mappings render as JSON.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.Itoa(v.number)
	default:
		data, _ := json.Marshal(v)
		return string(data)
	}
}

// MarshalJSON encodes mappings as JSON objects with their order preserved.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.number)
	case KindList:
		return json.Marshal(v.list)
	case KindMapping:
		return marshalOrdered(len(v.entries), func(i int) (string, Value) {
			return v.entries[i].Key, v.entries[i].Value
		})
	}
	return []byte("null"), nil
}

// marshalOrdered writes a JSON object whose keys keep insertion order.
func marshalOrdered(n int, at func(i int) (string, Value)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		key, val := at(i)
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := val.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
