package tmpl

import "slices"

// SetArgument sets the leaf at path to the string *value, creating
// intermediate objects as needed. A nil value deletes the leaf instead and
// prunes ancestor objects left empty, never the root. It reports whether
// the context changed.
func (t *Template) SetArgument(path Path, value *string) bool {
	if value == nil {
		return t.SetValue(path, nil)
	}

	return t.SetValue(path, String(*value))
}

// SetValue is like [Template.SetArgument] with an arbitrary leaf value.
// A nil v deletes the leaf.
//
// Missing keys and scalar intermediates become objects. An array is indexed
// by a decimal segment, and the index one past the end appends; any other
// segment leaves an array unchanged.
func (t *Template) SetValue(path Path, v Value) bool {
	if len(path) == 0 {
		return false
	}

	if v == nil {
		root, changed := remove(t.ctx, path)
		t.ctx = root

		return changed
	}

	obj, ok := t.ctx.(Object)
	if !ok || obj == nil {
		obj = Object{}
	}

	root, changed := assign(obj, path, v)
	t.ctx = root

	return changed
}

// assign stores v at path below node and returns the updated node.
func assign(node Value, path Path, v Value) (Value, bool) {
	if len(path) == 0 {
		return v, !Equal(node, v)
	}

	seg, rest := path[0], path[1:]

	switch n := node.(type) {
	case Object:
		if n == nil {
			break
		}

		cur, exists := n[seg]

		e, changed := assign(cur, rest, v)
		if exists && !changed {
			return n, false
		}

		n[seg] = e

		return n, true

	case Array:
		i, ok := parseIndex(seg)
		if !ok || i > len(n) {
			return n, false
		}

		if i == len(n) {
			e, _ := assign(nil, rest, v)

			return append(n, e), true
		}

		e, changed := assign(n[i], rest, v)
		n[i] = e

		return n, changed
	}

	e, _ := assign(nil, rest, v)

	return Object{seg: e}, true
}

// remove deletes the value at path below node and returns the updated node.
// Objects on the path left empty are removed from their parent, including
// array elements, which shifts the indices of later elements.
func remove(node Value, path Path) (Value, bool) {
	seg, rest := path[0], path[1:]

	switch n := node.(type) {
	case Object:
		cur, ok := n[seg]
		if !ok {
			return n, false
		}

		if len(rest) == 0 {
			delete(n, seg)

			return n, true
		}

		e, changed := remove(cur, rest)
		if !changed {
			return n, false
		}

		if o, ok := e.(Object); ok && len(o) == 0 {
			delete(n, seg)
		} else {
			n[seg] = e
		}

		return n, true

	case Array:
		i, ok := parseIndex(seg)
		if !ok || i >= len(n) {
			return n, false
		}

		if len(rest) == 0 {
			return slices.Delete(n, i, i+1), true
		}

		e, changed := remove(n[i], rest)
		if !changed {
			return n, false
		}

		if o, ok := e.(Object); ok && len(o) == 0 {
			return slices.Delete(n, i, i+1), true
		}

		n[i] = e

		return n, true
	}

	return node, false
}
