package urltree

import (
	"sort"
	"strings"
)

// Serialize reconstructs the canonical route URL string for a tree. It is a
// total function over structurally valid trees: segment order and parameter
// insertion order are preserved, the primary outlet is emitted before named
// outlets, and named outlets are ordered lexicographically.
func Serialize(t *Tree) string {
	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(serializeSegmentGroup(t.Root, true))
	b.WriteString(serializeQueryParams(t.QueryParams))
	if t.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(EncodeFragment(*t.Fragment))
	}
	return b.String()
}

func serializeSegmentGroup(g *SegmentGroup, root bool) string {
	if !g.HasChildren() {
		return serializePaths(g)
	}

	if root {
		primary := ""
		if child, ok := g.Children[PrimaryOutlet]; ok {
			primary = serializeSegmentGroup(child, false)
		}
		var entries []string
		for _, name := range namedOutlets(g) {
			entries = append(entries, name+":"+serializeSegmentGroup(g.Children[name], false))
		}
		if len(entries) > 0 {
			return primary + "(" + strings.Join(entries, "//") + ")"
		}
		return primary
	}

	// A lone primary child continues the path without parentheses.
	if g.NumberOfChildren() == 1 {
		if child, ok := g.Children[PrimaryOutlet]; ok {
			return serializePaths(g) + "/" + serializeSegmentGroup(child, false)
		}
	}

	var entries []string
	if child, ok := g.Children[PrimaryOutlet]; ok {
		entries = append(entries, serializeSegmentGroup(child, false))
	}
	for _, name := range namedOutlets(g) {
		entries = append(entries, name+":"+serializeSegmentGroup(g.Children[name], false))
	}
	return serializePaths(g) + "/(" + strings.Join(entries, "//") + ")"
}

// namedOutlets returns the group's non-primary outlet names in lexicographic
// order, pinning a deterministic serialization over the unordered child map.
func namedOutlets(g *SegmentGroup) []string {
	names := make([]string, 0, len(g.Children))
	for name := range g.Children {
		if name != PrimaryOutlet {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func serializePaths(g *SegmentGroup) string {
	parts := make([]string, len(g.Segments))
	for i, s := range g.Segments {
		parts[i] = serializeSegment(s)
	}
	return strings.Join(parts, "/")
}

func serializeSegment(s *Segment) string {
	var b strings.Builder
	b.WriteString(EncodeSegment(s.Path))
	for _, key := range s.Parameters.Keys() {
		value, _ := s.Parameters.Get(key)
		b.WriteByte(';')
		b.WriteString(EncodeSegment(key))
		b.WriteByte('=')
		b.WriteString(EncodeSegment(value))
	}
	return b.String()
}

// serializeQueryParams emits the `?`-prefixed query block, one `key=value`
// pair per value with the key repeated for multi-value parameters, or ""
// when there are no parameters.
func serializeQueryParams(q *QueryParams) string {
	if q.Len() == 0 {
		return ""
	}
	var pairs []string
	for _, key := range q.Keys() {
		encodedKey := EncodeQuery(key)
		for _, value := range q.Get(key) {
			pairs = append(pairs, encodedKey+"="+EncodeQuery(value))
		}
	}
	return "?" + strings.Join(pairs, "&")
}
