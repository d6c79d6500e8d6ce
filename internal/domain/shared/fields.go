package shared

import (
	"fmt"
	"strings"
	"unicode"
)

// FieldKind is the value type of an entity attribute
type FieldKind int

// Field kinds
const (
	KindString FieldKind = iota + 1
	KindInt
	KindDecimal
	KindTime
	KindUUID
	KindBool
)

// String returns the kind name
func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindDecimal:
		return "decimal"
	case KindTime:
		return "time"
	case KindUUID:
		return "uuid"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Supports reports whether op can be applied to a field of this kind
func (k FieldKind) Supports(op Operator) bool {
	switch op {
	case OpEqual, OpNotEqual:
		return k >= KindString && k <= KindBool
	case OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		return k == KindInt || k == KindDecimal || k == KindTime
	case OpContains, OpStartsWith, OpEndsWith:
		return k == KindString
	default:
		return false
	}
}

// Field describes one filterable and sortable entity attribute
type Field struct {
	Name       string // property name, e.g. "StartDate"
	JSONName   string // wire name, e.g. "startDate"
	Column     string // column name, e.g. "start_date"
	Kind       FieldKind
	Searchable bool
}

// NewField creates a field whose wire and column names follow the entity conventions
// (camelCase JSON, snake_case columns).
func NewField(name string, kind FieldKind) Field {
	return Field{
		Name:     name,
		JSONName: lowerFirst(name),
		Column:   snakeCase(name),
		Kind:     kind,
	}
}

// Text creates a string field
func Text(name string) Field { return NewField(name, KindString) }

// Int creates an integer field
func Int(name string) Field { return NewField(name, KindInt) }

// Decimal creates a decimal field
func Decimal(name string) Field { return NewField(name, KindDecimal) }

// Time creates a date/time field
func Time(name string) Field { return NewField(name, KindTime) }

// UUID creates an identifier field
func UUID(name string) Field { return NewField(name, KindUUID) }

// Bool creates a boolean field
func Bool(name string) Field { return NewField(name, KindBool) }

// Search marks the field as part of the free-text search set
func (f Field) Search() Field {
	f.Searchable = true
	return f
}

// FieldSet is the static attribute map of an entity
type FieldSet struct {
	fields []Field
	index  map[string]int
}

// NewFieldSet builds a field set, rejecting duplicate names and searchable non-string fields.
func NewFieldSet(fields ...Field) (FieldSet, error) {
	set := FieldSet{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)*2),
	}
	for _, f := range fields {
		if f.Name == "" || f.Column == "" || f.JSONName == "" {
			return FieldSet{}, fmt.Errorf("field %q: name, json name and column are required", f.Name)
		}
		if f.Kind < KindString || f.Kind > KindBool {
			return FieldSet{}, fmt.Errorf("field %q: unknown kind", f.Name)
		}
		if f.Searchable && f.Kind != KindString {
			return FieldSet{}, fmt.Errorf("field %q: only string fields can be searchable", f.Name)
		}
		pos := len(set.fields)
		for _, key := range []string{f.Name, f.JSONName, f.Column} {
			key = strings.ToLower(key)
			if existing, ok := set.index[key]; ok && existing != pos {
				return FieldSet{}, fmt.Errorf("field %q: name %q already used by %q", f.Name, key, set.fields[existing].Name)
			}
			set.index[key] = pos
		}
		set.fields = append(set.fields, f)
	}
	return set, nil
}

// Lookup resolves a property name case-insensitively by name, JSON name or column
func (s FieldSet) Lookup(name string) (Field, bool) {
	pos, ok := s.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Field{}, false
	}
	return s.fields[pos], true
}

// Fields returns all fields in declaration order
func (s FieldSet) Fields() []Field {
	return s.fields
}

// Searchable returns the fields matched by the free-text search
func (s FieldSet) Searchable() []Field {
	var out []Field
	for _, f := range s.fields {
		if f.Searchable {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of fields
func (s FieldSet) Len() int {
	return len(s.fields)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func snakeCase(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) {
			prevLower := i > 0 && (unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1]))
			nextLower := i > 0 && i+1 < len(r) && unicode.IsUpper(r[i-1]) && unicode.IsLower(r[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(c))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
