package tmpl

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ValueKind identifies the variant of a [Value].
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// String returns a lowercase name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a node of the argument context. The set of implementations is
// closed: [Null], [Bool], [Number], [String], [Object] and [Array].
type Value interface {
	ValueKind() ValueKind
	value()
}

// Null is the absent value. It resolves to the empty string.
type Null struct{}

// Bool is a boolean leaf. True resolves to "true"; false is undefined.
type Bool bool

// String is a text leaf.
type String string

// Object maps unique keys to values.
type Object map[string]Value

// Array is an ordered sequence of values addressed by decimal index.
type Array []Value

// Number is a numeric leaf that remembers whether it was written as an
// integer so its text form matches the source.
type Number struct {
	i     int64
	f     float64
	float bool
}

// Int returns an integer [Number].
func Int(i int64) Number { return Number{i: i} }

// Float returns a floating-point [Number].
func Float(f float64) Number { return Number{f: f, float: true} }

// IsFloat reports whether n holds a floating-point value.
func (n Number) IsFloat() bool { return n.float }

// Int64 returns n as an integer, truncating a float.
func (n Number) Int64() int64 {
	if n.float {
		return int64(n.f)
	}

	return n.i
}

// Float64 returns n as a float.
func (n Number) Float64() float64 {
	if n.float {
		return n.f
	}

	return float64(n.i)
}

// String returns the decimal text of n. Integral floats keep a ".0" suffix.
func (n Number) String() string {
	if !n.float {
		return strconv.FormatInt(n.i, 10)
	}

	s := strconv.FormatFloat(n.f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}

	return s
}

func (Null) ValueKind() ValueKind   { return KindNull }
func (Bool) ValueKind() ValueKind   { return KindBool }
func (Number) ValueKind() ValueKind { return KindNumber }
func (String) ValueKind() ValueKind { return KindString }
func (Object) ValueKind() ValueKind { return KindObject }
func (Array) ValueKind() ValueKind  { return KindArray }

func (Null) value()   {}
func (Bool) value()   {}
func (Number) value() {}
func (String) value() {}
func (Object) value() {}
func (Array) value()  {}

// Keys returns the keys of o in sorted order.
func (o Object) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

// Clone returns a deep copy of v. Scalars are returned as-is.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Object:
		out := make(Object, len(v))
		for k, e := range v {
			out[k] = Clone(e)
		}

		return out

	case Array:
		out := make(Array, len(v))
		for i, e := range v {
			out[i] = Clone(e)
		}

		return out

	case nil:
		return Null{}

	default:
		return v
	}
}

// Merge overlays src onto dst and returns the result. Objects are merged
// key by key, recursively; any other src replaces dst. dst is modified in
// place when both are objects.
func Merge(dst, src Value) Value {
	d, ok := dst.(Object)
	if !ok || d == nil {
		return src
	}

	s, ok := src.(Object)
	if !ok {
		return src
	}

	for k, v := range s {
		d[k] = Merge(d[k], v)
	}

	return d
}

// Equal reports whether a and b are deeply equal. A nil Value equals [Null].
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}

	if b == nil {
		b = Null{}
	}

	switch a := a.(type) {
	case Object:
		b, ok := b.(Object)
		if !ok || len(a) != len(b) {
			return false
		}

		for k, av := range a {
			bv, ok := b[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}

		return true

	case Array:
		b, ok := b.(Array)

		return ok && slices.EqualFunc(a, b, Equal)

	default:
		return a == b
	}
}
