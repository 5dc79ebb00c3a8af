package frontmatter

import (
	"fmt"
	"sort"
)

// Kind discriminates the shape held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return "unknown"
}

// Value is a tagged variant for metadata fields outside the typed envelope.
// Supported shapes: scalar strings, integers, booleans, sequences of scalars,
// and mappings whose entries are scalars or sequences of scalars. Anything
// deeper or differently shaped is rejected at decode time with
// ErrUnsupportedFieldShape instead of being coerced.
type Value struct {
	kind    Kind
	str     string
	num     int
	flag    bool
	seq     []Value
	entries map[string]Value
}

// String constructs a scalar string value.
func String(v string) Value {
	return Value{kind: KindString, str: v}
}

// Int constructs an integer value.
func Int(v int) Value {
	return Value{kind: KindInt, num: v}
}

// Bool constructs a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, flag: v}
}

// Sequence constructs a sequence value from the supplied items.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, seq: append([]Value(nil), items...)}
}

// Mapping constructs a mapping value from the supplied entries.
func Mapping(entries map[string]Value) Value {
	copied := make(map[string]Value, len(entries))
	for key, item := range entries {
		copied[key] = item
	}
	return Value{kind: KindMapping, entries: copied}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the scalar string held by the value.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsInt returns the integer held by the value.
func (v Value) AsInt() (int, bool) {
	return v.num, v.kind == KindInt
}

// AsBool returns the boolean held by the value.
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

// AsSequence returns the items held by a sequence value.
func (v Value) AsSequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return append([]Value(nil), v.seq...), true
}

// AsMapping returns the entries held by a mapping value.
func (v Value) AsMapping() (map[string]Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	copied := make(map[string]Value, len(v.entries))
	for key, item := range v.entries {
		copied[key] = item
	}
	return copied, true
}

// Interface converts the value back into plain Go data for re-encoding.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	case KindSequence:
		out := make([]any, 0, len(v.seq))
		for _, item := range v.seq {
			out = append(out, item.Interface())
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.entries))
		for key, item := range v.entries {
			out[key] = item.Interface()
		}
		return out
	}
	return nil
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindBool:
		return v.flag == other.flag
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for key, item := range v.entries {
			match, ok := other.entries[key]
			if !ok || !item.Equal(match) {
				return false
			}
		}
		return true
	}
	return false
}

// fromAny converts decoded YAML data into a Value, enforcing the supported
// shapes. path names the offending field in errors; depth 0 is a top-level
// field, mappings only appear at depth 0 and sequences never nest.
func fromAny(path string, input any, depth int) (Value, error) {
	switch typed := input.(type) {
	case string:
		return String(typed), nil
	case int:
		return Int(typed), nil
	case int64:
		return Int(int(typed)), nil
	case bool:
		return Bool(typed), nil
	case []any:
		if depth > 1 {
			return Value{}, &UnsupportedFieldShapeError{Field: path, Shape: "nested sequence"}
		}
		items := make([]Value, 0, len(typed))
		for i, raw := range typed {
			item, err := fromAny(fmt.Sprintf("%s[%d]", path, i), raw, depth+2)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Sequence(items...), nil
	case map[string]any:
		return mappingFromEntries(path, depth, sortedEntries(typed))
	case map[any]any:
		entries := make(map[string]any, len(typed))
		for rawKey, rawValue := range typed {
			key, ok := rawKey.(string)
			if !ok {
				return Value{}, &UnsupportedFieldShapeError{Field: path, Shape: fmt.Sprintf("non-string key %T", rawKey)}
			}
			entries[key] = rawValue
		}
		return mappingFromEntries(path, depth, sortedEntries(entries))
	default:
		return Value{}, &UnsupportedFieldShapeError{Field: path, Shape: fmt.Sprintf("%T", input)}
	}
}

type rawEntry struct {
	key   string
	value any
}

func sortedEntries(input map[string]any) []rawEntry {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]rawEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, rawEntry{key: key, value: input[key]})
	}
	return entries
}

func mappingFromEntries(path string, depth int, raw []rawEntry) (Value, error) {
	if depth > 0 {
		return Value{}, &UnsupportedFieldShapeError{Field: path, Shape: "nested mapping"}
	}

	entries := make(map[string]Value, len(raw))
	for _, entry := range raw {
		item, err := fromAny(path+"."+entry.key, entry.value, depth+1)
		if err != nil {
			return Value{}, err
		}
		entries[entry.key] = item
	}
	return Value{kind: KindMapping, entries: entries}, nil
}
