package urltree

import "sort"

// ContainsTree reports whether container addresses at least everything
// containee does.
//
// In exact mode both trees must have equal query parameters and structurally
// equal segment-group trees (paths and matrix parameters at every level,
// identical outlet sets, child order irrelevant). In subset mode the
// containee's query parameters must all be present with equal values in the
// container, and the containee's segments must extend the container's along
// its primary outlet; matrix parameters are ignored.
//
// Fragments are not considered in either mode.
func ContainsTree(container, containee *Tree, exact bool) bool {
	if exact {
		return equalQueryParams(container.QueryParams, containee.QueryParams) &&
			equalSegmentGroups(container.Root, containee.Root)
	}
	return containsQueryParams(container.QueryParams, containee.QueryParams) &&
		containsSegmentGroup(container.Root, containee.Root)
}

// EqualTrees reports exact structural equality of two trees. Equivalent to
// ContainsTree(a, b, true).
func EqualTrees(a, b *Tree) bool {
	return ContainsTree(a, b, true)
}

// EqualSegments reports whether two segment runs have the same paths and the
// same matrix parameters at every position. EqualSegments implies EqualPath.
func EqualSegments(a, b []*Segment) bool {
	if !EqualPath(a, b) {
		return false
	}
	for i := range a {
		if !a[i].Parameters.Equal(b[i].Parameters) {
			return false
		}
	}
	return true
}

// EqualPath reports whether two segment runs have the same paths, ignoring
// matrix parameters.
func EqualPath(a, b []*Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path {
			return false
		}
	}
	return true
}

func equalSegmentGroups(container, containee *SegmentGroup) bool {
	if !EqualSegments(container.Segments, containee.Segments) {
		return false
	}
	if container.NumberOfChildren() != containee.NumberOfChildren() {
		return false
	}
	for outlet, child := range containee.Children {
		other, ok := container.Children[outlet]
		if !ok || !equalSegmentGroups(other, child) {
			return false
		}
	}
	return true
}

func equalQueryParams(container, containee *QueryParams) bool {
	if container.Len() != containee.Len() {
		return false
	}
	for _, key := range containee.Keys() {
		if !container.Has(key) || !equalValueLists(container.Get(key), containee.Get(key)) {
			return false
		}
	}
	return true
}

func containsQueryParams(container, containee *QueryParams) bool {
	if containee.Len() > container.Len() {
		return false
	}
	for _, key := range containee.Keys() {
		if !container.Has(key) || !equalValueLists(container.Get(key), containee.Get(key)) {
			return false
		}
	}
	return true
}

// equalValueLists compares query values order-insensitively: multi-value
// parameters are equal when they hold the same multiset of values.
func equalValueLists(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) < 2 {
		return len(a) == 0 || a[0] == b[0]
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func containsSegmentGroup(container, containee *SegmentGroup) bool {
	return containsSegmentGroupHelper(container, containee, containee.Segments)
}

// containsSegmentGroupHelper aligns containee's segment run (paths) against
// container. When the container is shorter it always descends through the
// container's primary outlet, regardless of which outlet the remaining
// segments logically belong to; this asymmetry is part of the containment
// contract.
func containsSegmentGroupHelper(container, containee *SegmentGroup, paths []*Segment) bool {
	switch {
	case len(container.Segments) > len(paths):
		// The containee's run is a prefix of the container's own segments;
		// it may not address anything below that cut point.
		if !EqualPath(container.Segments[:len(paths)], paths) {
			return false
		}
		return !containee.HasChildren()

	case len(container.Segments) == len(paths):
		if !EqualPath(container.Segments, paths) {
			return false
		}
		for outlet, child := range containee.Children {
			other, ok := container.Children[outlet]
			if !ok || !containsSegmentGroup(other, child) {
				return false
			}
		}
		return true

	default:
		if !EqualPath(container.Segments, paths[:len(container.Segments)]) {
			return false
		}
		primary, ok := container.Children[PrimaryOutlet]
		if !ok {
			return false
		}
		return containsSegmentGroupHelper(primary, containee, paths[len(container.Segments):])
	}
}
