package tmpl

// redirects is a persistent alias table. Each foreach frame extends it with
// [redirects.with]; outer frames keep their own view.
type redirects struct {
	name  string
	path  Path
	outer *redirects
}

// lookup returns the path bound to name by the innermost binding.
func (r *redirects) lookup(name string) (Path, bool) {
	for ; r != nil; r = r.outer {
		if r.name == name {
			return r.path, true
		}
	}

	return nil, false
}

// with returns a table binding name to path that shadows any outer binding.
func (r *redirects) with(name string, path Path) *redirects {
	return &redirects{name: name, path: path, outer: r}
}

// len returns the number of bindings, shadowed ones included.
func (r *redirects) len() (n int) {
	for ; r != nil; r = r.outer {
		n++
	}

	return n
}

// expand substitutes aliases at the head of path until none applies.
// It reports false if the path is empty, an alias expands to nothing, or
// a head segment recurs during substitution.
func (r *redirects) expand(path Path) (Path, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var seen map[string]struct{}

	for {
		target, ok := r.lookup(path[0])
		if !ok {
			return path, true
		}

		if _, cycle := seen[path[0]]; cycle {
			return nil, false
		}

		if seen == nil {
			seen = make(map[string]struct{})
		}

		seen[path[0]] = struct{}{}
		path = target.Join(path[1:]...)

		if len(path) == 0 {
			return nil, false
		}
	}
}

// child returns the member of a container addressed by seg.
func child(node Value, seg string) (Value, bool) {
	switch v := node.(type) {
	case Object:
		e, ok := v[seg]

		return e, ok

	case Array:
		i, ok := parseIndex(seg)
		if !ok || i >= len(v) {
			return nil, false
		}

		return v[i], true
	}

	return nil, false
}

// Lookup returns the value addressed by path within root without rendering
// it. Unlike [Template.GetArgument] it neither expands aliases nor stops at
// scalars: every segment must name a member of an object or array.
func Lookup(root Value, path Path) (Value, bool) {
	return descend(root, path)
}

// descend returns the node addressed by path. It reports false unless every
// segment is consumed by a container.
func descend(root Value, path Path) (Value, bool) {
	node := root

	for _, seg := range path {
		e, ok := child(node, seg)
		if !ok {
			return nil, false
		}

		node = e
	}

	return node, true
}

// resolve walks root along path and renders the value found there.
// Scalars met before the end of the path end the walk.
func resolve(root Value, path Path) (string, bool) {
	if len(path) == 0 {
		return "", false
	}

	node := root

	for _, seg := range path {
		switch node.(type) {
		case Object, Array:
			e, ok := child(node, seg)
			if !ok {
				return "", false
			}

			node = e

		default:
			return render(node)
		}
	}

	return render(node)
}

// render returns the text of a leaf value. False is undefined; containers
// are defined but have no text.
func render(v Value) (string, bool) {
	switch v := v.(type) {
	case Bool:
		if v {
			return "true", true
		}

		return "", false

	case String:
		return string(v), true

	case Number:
		return v.String(), true

	default:
		return "", true
	}
}

// parseIndex parses a non-negative decimal array index.
func parseIndex(seg string) (int, bool) {
	if seg == "" || len(seg) > 18 {
		return 0, false
	}

	n := 0

	for _, c := range []byte(seg) {
		if c < '0' || c > '9' {
			return 0, false
		}

		n = n*10 + int(c-'0')
	}

	return n, true
}
