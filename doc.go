// Package urltree converts between textual route URLs and structured,
// multi-outlet route trees.
//
// A route URL is not a full URL: it has no scheme, host, or port. It is the
// path-and-beyond portion a router reasons about, extended with matrix
// parameters on individual segments and parenthesized auxiliary outlets:
//
//	route-url    := "/"? children ("?" query)? ("#" fragment)?
//	children     := "" | segment-run ("/(" outlet-group)? ("(" outlet-group)?
//	segment-run  := segment ("/" segment)*       ; stops before "//" or "/("
//	segment      := path-chars (";" key ("=" value)?)*
//	outlet-group := "(" outlet-member ("//" outlet-member)* ")"
//	outlet-member:= (outlet-name ":")? children
//	query        := pair ("&" pair)*
//
// Parse turns such a string into a Tree; Serialize turns a Tree back into its
// canonical string form. Trees can be compared for structural equality and
// asymmetric containment independent of serialization order.
//
// # Structure
//
// A Tree holds a root SegmentGroup, ordered query parameters, and an optional
// fragment. A SegmentGroup is an ordered run of Segments plus a mapping from
// outlet name to child group; the unnamed outlet uses the PrimaryOutlet
// sentinel. A Segment is one path component plus its matrix parameters.
//
//	tree, err := urltree.Parse("/team/33/(user/victor//support:help)?debug=true")
//	if err != nil { ... }
//	team := tree.Root.Children[urltree.PrimaryOutlet]
//	// team.Segments → [team 33]
//	// team.Children["support"].Segments → [help]
//	fmt.Println(tree) // canonical serialization
//
// Trees are built once (by Parse or by hand from NewTree, NewSegmentGroup,
// NewSegment) and must be treated as immutable afterwards. Deriving a new
// tree means constructing fresh groups and segments, never mutating nodes
// that may be shared with another tree.
//
// # Reserved characters
//
// The characters `/ ( ) ? ; = # &` are structural and are percent-encoded
// when they appear literally in a value. Each syntactic context has its own
// safe set; see EncodeSegment, EncodeQuery, and EncodeFragment.
package urltree
