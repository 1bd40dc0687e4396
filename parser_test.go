package urltree

import (
	"errors"
	"testing"
)

// mustParse parses url or fails the test.
func mustParse(t *testing.T, url string) *Tree {
	t.Helper()
	tree, err := Parse(url)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", url, err)
	}
	return tree
}

// primaryChild returns the primary-outlet child of g or fails the test.
func primaryChild(t *testing.T, g *SegmentGroup) *SegmentGroup {
	t.Helper()
	child, ok := g.Children[PrimaryOutlet]
	if !ok {
		t.Fatalf("group has no primary child (outlets: %v)", outletNames(g))
	}
	return child
}

func outletNames(g *SegmentGroup) []string {
	names := make([]string, 0, len(g.Children))
	for name := range g.Children {
		names = append(names, name)
	}
	return names
}

// paths extracts the segment paths of a group.
func paths(g *SegmentGroup) []string {
	ps := make([]string, len(g.Segments))
	for i, s := range g.Segments {
		ps[i] = s.Path
	}
	return ps
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseEmptyURL(t *testing.T) {
	for _, url := range []string{"", "/"} {
		tree := mustParse(t, url)
		if len(tree.Root.Segments) != 0 {
			t.Errorf("Parse(%q): root has segments %v, want none", url, paths(tree.Root))
		}
		if tree.Root.HasChildren() {
			t.Errorf("Parse(%q): root has children %v, want none", url, outletNames(tree.Root))
		}
		if tree.QueryParams.Len() != 0 {
			t.Errorf("Parse(%q): query params = %v, want none", url, tree.QueryParams.Map())
		}
		if tree.Fragment != nil {
			t.Errorf("Parse(%q): fragment = %q, want absent", url, *tree.Fragment)
		}
	}
}

func TestParseSimplePaths(t *testing.T) {
	tests := []struct {
		url  string
		want []string
	}{
		{"/one", []string{"one"}},
		{"one", []string{"one"}},
		{"/one/two/three", []string{"one", "two", "three"}},
		{"/one/two?q=1", []string{"one", "two"}},
		{"/one#frag", []string{"one"}},
	}

	for _, tt := range tests {
		tree := mustParse(t, tt.url)
		got := paths(primaryChild(t, tree.Root))
		if !equalStrings(got, tt.want) {
			t.Errorf("Parse(%q): segments = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestParseMatrixParams(t *testing.T) {
	tree := mustParse(t, "/team;id=33")
	seg := primaryChild(t, tree.Root).Segments[0]
	if seg.Path != "team" {
		t.Errorf("path = %q, want %q", seg.Path, "team")
	}
	if got, _ := seg.Parameters.Get("id"); got != "33" {
		t.Errorf("parameters[id] = %q, want %q", got, "33")
	}

	// Repeated keys overwrite but keep their first-seen position; a missing
	// value defaults to the empty string.
	tree = mustParse(t, "/one;a=1;b=2;a=3;flag")
	seg = primaryChild(t, tree.Root).Segments[0]
	if got, _ := seg.Parameters.Get("a"); got != "3" {
		t.Errorf("parameters[a] = %q, want %q (last occurrence wins)", got, "3")
	}
	if got, _ := seg.Parameters.Get("flag"); got != "" {
		t.Errorf("parameters[flag] = %q, want empty string", got)
	}
	if got := seg.Parameters.Keys(); !equalStrings(got, []string{"a", "b", "flag"}) {
		t.Errorf("parameter keys = %v, want [a b flag]", got)
	}
}

func TestParseAuxiliaryOutlets(t *testing.T) {
	tree := mustParse(t, "/team/33/(user/victor//support:help)?debug=true#frag")

	team := primaryChild(t, tree.Root)
	if got := paths(team); !equalStrings(got, []string{"team", "33"}) {
		t.Fatalf("primary segments = %v, want [team 33]", got)
	}

	user := primaryChild(t, team)
	if got := paths(user); !equalStrings(got, []string{"user", "victor"}) {
		t.Errorf("nested primary segments = %v, want [user victor]", got)
	}

	support, ok := team.Children["support"]
	if !ok {
		t.Fatalf("missing support outlet (outlets: %v)", outletNames(team))
	}
	if got := paths(support); !equalStrings(got, []string{"help"}) {
		t.Errorf("support segments = %v, want [help]", got)
	}

	if got := tree.QueryParams.Get("debug"); !equalStrings(got, []string{"true"}) {
		t.Errorf("queryParams[debug] = %v, want [true]", got)
	}
	if tree.Fragment == nil || *tree.Fragment != "frag" {
		t.Errorf("fragment = %v, want %q", tree.Fragment, "frag")
	}
}

func TestParseOutletAfterSegment(t *testing.T) {
	tree := mustParse(t, "/inbox/33(popup:compose)")

	inbox := primaryChild(t, tree.Root)
	if got := paths(inbox); !equalStrings(got, []string{"inbox", "33"}) {
		t.Fatalf("primary segments = %v, want [inbox 33]", got)
	}

	// A bare parenthesis group after a segment run attaches its outlets as
	// siblings of the primary group, one level up.
	popup, ok := tree.Root.Children["popup"]
	if !ok {
		t.Fatalf("missing popup outlet (outlets: %v)", outletNames(tree.Root))
	}
	if inbox.HasChildren() {
		t.Errorf("primary group has children %v, want none", outletNames(inbox))
	}
	if got := paths(popup); !equalStrings(got, []string{"compose"}) {
		t.Errorf("popup segments = %v, want [compose]", got)
	}
}

func TestParseRootOutletGroup(t *testing.T) {
	// At the root, a bare parenthesis group does not allow an implicit
	// primary member: a member without a name resolves to the empty outlet.
	tree := mustParse(t, "/(left:menu//right:panel)")
	root := tree.Root
	if len(root.Children) != 2 {
		t.Fatalf("root outlets = %v, want [left right]", outletNames(root))
	}
	if got := paths(root.Children["left"]); !equalStrings(got, []string{"menu"}) {
		t.Errorf("left segments = %v, want [menu]", got)
	}
	if got := paths(root.Children["right"]); !equalStrings(got, []string{"panel"}) {
		t.Errorf("right segments = %v, want [panel]", got)
	}
}

func TestParseNestedGroupMember(t *testing.T) {
	// A member whose children are a single primary group collapses to that
	// group directly, with no empty wrapper level.
	tree := mustParse(t, "/a/(b/c//side:d)")
	a := primaryChild(t, tree.Root)
	bc := primaryChild(t, a)
	if len(bc.Segments) != 2 || bc.Segments[0].Path != "b" || bc.Segments[1].Path != "c" {
		t.Errorf("collapsed member segments = %v, want [b c]", paths(bc))
	}
}

func TestParseQueryParams(t *testing.T) {
	tests := []struct {
		url  string
		key  string
		want []string
	}{
		{"/one?a=1", "a", []string{"1"}},
		{"/one?a=1&a=2", "a", []string{"1", "2"}},
		{"/one?a=1&a=2&a=3", "a", []string{"1", "2", "3"}},
		{"/one?flag", "flag", []string{""}},
		{"/one?flag=", "flag", []string{""}},
		{"/one?q=a+b", "q", []string{"a b"}},
		{"/one?q=a%26b", "q", []string{"a&b"}},
	}

	for _, tt := range tests {
		tree := mustParse(t, tt.url)
		if got := tree.QueryParams.Get(tt.key); !equalStrings(got, tt.want) {
			t.Errorf("Parse(%q): queryParams[%s] = %v, want %v", tt.url, tt.key, got, tt.want)
		}
	}
}

func TestParseFragment(t *testing.T) {
	tests := []struct {
		url  string
		want *string
	}{
		{"/one", nil},
		{"/one#frag", strPtr("frag")},
		{"/one#", strPtr("")},
		{"/one#one%20two", strPtr("one two")},
		{"/#f", strPtr("f")},
	}

	for _, tt := range tests {
		tree := mustParse(t, tt.url)
		switch {
		case tt.want == nil && tree.Fragment != nil:
			t.Errorf("Parse(%q): fragment = %q, want absent", tt.url, *tree.Fragment)
		case tt.want != nil && tree.Fragment == nil:
			t.Errorf("Parse(%q): fragment absent, want %q", tt.url, *tt.want)
		case tt.want != nil && tree.Fragment != nil && *tree.Fragment != *tt.want:
			t.Errorf("Parse(%q): fragment = %q, want %q", tt.url, *tree.Fragment, *tt.want)
		}
	}
}

func TestParseDecodesSegments(t *testing.T) {
	tree := mustParse(t, "/one/%28foo%29;k%2Fv=a%3Db")
	group := primaryChild(t, tree.Root)
	if got := group.Segments[1].Path; got != "(foo)" {
		t.Errorf("decoded path = %q, want %q", got, "(foo)")
	}
	if got, _ := group.Segments[1].Parameters.Get("k/v"); got != "a=b" {
		t.Errorf("decoded matrix value = %q, want %q", got, "a=b")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		url  string
		want error
	}{
		{";x=1", ErrEmptySegment},
		{"/;x=1", ErrEmptySegment},
		{"/one/;open=true", ErrEmptySegment},
		{"/(a", ErrUnexpectedToken},
		{"/x/(a;b=1", ErrUnterminatedGroup},
		{"/x/(a//b:c", ErrUnexpectedToken},
		{"/a%2", ErrInvalidEscape},
		{"/a%GG", ErrInvalidEscape},
		{"/one?a=%zz", ErrInvalidEscape},
		{"/one#%", ErrInvalidEscape},
	}

	for _, tt := range tests {
		_, err := Parse(tt.url)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error %v", tt.url, tt.want)
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.url, err, tt.want)
		}
	}
}

func strPtr(s string) *string {
	return &s
}
