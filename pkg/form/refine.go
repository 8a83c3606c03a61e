package form

import (
	"sort"
	"strconv"
	"strings"
)

// MaxListIndex is the largest bracket index that becomes a slice position.
// Larger or non-numeric indexes are kept as map keys.
const MaxListIndex = 10000

type segment struct {
	key   string
	index string
	list  bool
	pos   int
	slot  bool // index is a usable slice position
}

// parseName splits "my.key[2].prop" into its segments. Only the first bracket
// group of a segment is considered; "a[]" is the plain key "a".
func parseName(name string) []segment {
	parts := strings.Split(name, ".")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		seg := segment{key: part}
		if open := strings.IndexByte(part, '['); open >= 0 {
			seg.key = part[:open]
			rest := part[open+1:]
			if end := strings.IndexByte(rest, ']'); end >= 0 {
				seg.index = rest[:end]
				seg.list = seg.index != ""
			}
		}
		if seg.list {
			if n, err := strconv.Atoi(seg.index); err == nil && n >= 0 && n <= MaxListIndex {
				seg.pos, seg.slot = n, true
			}
		}
		segs = append(segs, seg)
	}
	return segs
}

// Refine converts the groups of d into a nested structure, in group order:
//
//	my.key.prop    => {"my": {"key": {"prop": v}}}
//	my.key[2].prop => {"my": {"key": [nil, nil, {"prop": v}]}}
//
// Groups without a value are omitted.
func Refine(d *Data) map[string]any {
	out := make(map[string]any)
	for _, g := range d.Groups() {
		if g.Set {
			setPath(out, parseName(g.Name), g.Value)
		}
	}
	return out
}

// RefineMap is Refine for a plain name to value map. Keys are applied in
// lexical order so the result is deterministic.
func RefineMap(values map[string]any) map[string]any {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, k := range keys {
		setPath(out, parseName(k), values[k])
	}
	return out
}

func setPath(obj map[string]any, segs []segment, value any) {
	for i, seg := range segs {
		last := i == len(segs)-1

		if !seg.list {
			if last {
				obj[seg.key] = value
				return
			}
			obj = childMap(obj, seg.key)
			continue
		}

		if list, ok := listAt(obj, seg); ok {
			if last {
				list[seg.pos] = value
				return
			}
			next, isMap := list[seg.pos].(map[string]any)
			if !isMap {
				next = make(map[string]any)
				list[seg.pos] = next
			}
			obj = next
			continue
		}

		m := indexMap(obj, seg.key)
		if last {
			m[seg.index] = value
			return
		}
		obj = childMap(m, seg.index)
	}
}

// childMap returns obj[key] as a map. A slice is promoted with its positions
// kept; any other value is replaced.
func childMap(obj map[string]any, key string) map[string]any {
	switch cur := obj[key].(type) {
	case map[string]any:
		return cur
	case []any:
		return indexMap(obj, key)
	}
	m := make(map[string]any)
	obj[key] = m
	return m
}

// listAt returns the slice stored at obj[seg.key], grown to hold seg.pos. It
// fails when the index is not a slot or the container was already promoted to
// a map.
func listAt(obj map[string]any, seg segment) ([]any, bool) {
	if !seg.slot {
		return nil, false
	}
	if _, isMap := obj[seg.key].(map[string]any); isMap {
		return nil, false
	}
	list, _ := obj[seg.key].([]any)
	if len(list) <= seg.pos {
		grown := make([]any, seg.pos+1)
		copy(grown, list)
		list = grown
	}
	obj[seg.key] = list
	return list, true
}

// indexMap returns obj[key] as a map keyed by index, promoting an existing
// slice so previously stored positions survive.
func indexMap(obj map[string]any, key string) map[string]any {
	switch cur := obj[key].(type) {
	case map[string]any:
		return cur
	case []any:
		m := make(map[string]any, len(cur))
		for i, v := range cur {
			if v != nil {
				m[strconv.Itoa(i)] = v
			}
		}
		obj[key] = m
		return m
	default:
		m := make(map[string]any)
		obj[key] = m
		return m
	}
}
