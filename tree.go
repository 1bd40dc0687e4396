package urltree

import "sync"

// PrimaryOutlet is the reserved name of the unnamed/default outlet. Whenever
// outlet enumeration order affects output, the primary outlet comes first.
const PrimaryOutlet = "primary"

// Tree is the structured form of a route URL: a root segment group, the
// query parameters, and an optional fragment.
//
// A Tree is constructed once, by Parse or by NewTree, and is read-only
// afterwards. Subtrees may be shared between trees; sharing is aliasing, so
// deriving a new tree always means building fresh groups and segments.
type Tree struct {
	// Root never carries path segments of its own; it only holds children.
	Root *SegmentGroup

	// QueryParams holds the query block in insertion order.
	QueryParams *QueryParams

	// Fragment is nil when the URL had no `#`. A present-but-empty fragment
	// is distinct from an absent one and serializes as a bare `#`.
	Fragment *string

	paramMapOnce sync.Once
	paramMap     *ParamMap
}

// NewTree builds a tree from its parts. A nil root or query parameter set is
// replaced by an empty one.
func NewTree(root *SegmentGroup, queryParams *QueryParams, fragment *string) *Tree {
	if root == nil {
		root = NewSegmentGroup(nil, nil)
	}
	if queryParams == nil {
		queryParams = NewQueryParams()
	}
	return &Tree{Root: root, QueryParams: queryParams, Fragment: fragment}
}

// EmptyTree returns a tree with an empty root group, no query parameters,
// and no fragment. It serializes to "/".
func EmptyTree() *Tree {
	return NewTree(nil, nil, nil)
}

// QueryParamMap returns a read-only view over the query parameters. The view
// is built on first use and cached for the lifetime of the tree.
func (t *Tree) QueryParamMap() *ParamMap {
	t.paramMapOnce.Do(func() {
		t.paramMap = newParamMap(t.QueryParams.Keys(), t.QueryParams.values)
	})
	return t.paramMap
}

// String returns the canonical serialization of the tree.
func (t *Tree) String() string {
	return Serialize(t)
}

// SegmentGroup is one named-outlet node of the tree: an ordered run of
// segments plus a mapping from outlet name to child group. Outlet names are
// unique within one group's children.
type SegmentGroup struct {
	// Segments in parse order; order is serialization-significant.
	Segments []*Segment

	// Children maps outlet name to child group.
	Children map[string]*SegmentGroup

	// parent is a non-owning back-reference set at construction, used only
	// for upward lookup.
	parent *SegmentGroup
}

// NewSegmentGroup builds a group from its segments and children, recording
// the group as each child's parent. Nil slices/maps are replaced by empty
// ones.
func NewSegmentGroup(segments []*Segment, children map[string]*SegmentGroup) *SegmentGroup {
	if segments == nil {
		segments = []*Segment{}
	}
	if children == nil {
		children = map[string]*SegmentGroup{}
	}
	g := &SegmentGroup{Segments: segments, Children: children}
	for _, child := range children {
		child.parent = g
	}
	return g
}

// Parent returns the group this group is a child of, or nil for the root.
func (g *SegmentGroup) Parent() *SegmentGroup {
	return g.parent
}

// HasChildren reports whether the group has any child outlets.
func (g *SegmentGroup) HasChildren() bool {
	return len(g.Children) > 0
}

// NumberOfChildren returns the number of child outlets.
func (g *SegmentGroup) NumberOfChildren() int {
	return len(g.Children)
}

// String returns the serialized form of the group's own segments, without
// any children.
func (g *SegmentGroup) String() string {
	return serializePaths(g)
}

// Segment is a single path component plus its matrix parameters.
type Segment struct {
	// Path is the decoded path name.
	Path string

	// Parameters holds the matrix parameters in insertion order.
	Parameters *Params

	paramMapOnce sync.Once
	paramMap     *ParamMap
}

// NewSegment builds a segment. A nil parameter set is replaced by an empty
// one.
func NewSegment(path string, parameters *Params) *Segment {
	if parameters == nil {
		parameters = NewParams()
	}
	return &Segment{Path: path, Parameters: parameters}
}

// ParameterMap returns a read-only view over the matrix parameters, built on
// first use and cached for the lifetime of the segment.
func (s *Segment) ParameterMap() *ParamMap {
	s.paramMapOnce.Do(func() {
		values := make(map[string][]string, s.Parameters.Len())
		for k, v := range s.Parameters.values {
			values[k] = []string{v}
		}
		s.paramMap = newParamMap(s.Parameters.Keys(), values)
	})
	return s.paramMap
}

// String returns the serialized form of the segment, path plus matrix
// parameters.
func (s *Segment) String() string {
	return serializeSegment(s)
}
