package urltree

import "testing"

func TestContainsTreeReflexive(t *testing.T) {
	urls := []string{
		"/",
		"/one",
		"/one;a=1/two",
		"/inbox/33(popup:compose)",
		"/team/33/(user/victor//support:help)?debug=true",
		"/one?a=1&a=2&b=x",
	}

	for _, url := range urls {
		tree := mustParse(t, url)
		if !ContainsTree(tree, tree, false) {
			t.Errorf("ContainsTree(%q, itself, exact=false) = false, want true", url)
		}
		if !ContainsTree(tree, tree, true) {
			t.Errorf("ContainsTree(%q, itself, exact=true) = false, want true", url)
		}
	}
}

func TestContainsTreeSubsetPaths(t *testing.T) {
	tests := []struct {
		container string
		containee string
		want      bool
	}{
		{"/one/two", "/one", true},
		{"/one", "/one/two", false},
		{"/one/two/three", "/one/two", true},
		{"/one/two", "/one/three", false},
		{"/one/two", "/", true},
		{"/", "/one", false},
		// Matrix params are ignored by containment.
		{"/one;a=1/two", "/one", true},
		{"/one/two", "/one;a=1", true},
	}

	for _, tt := range tests {
		container := mustParse(t, tt.container)
		containee := mustParse(t, tt.containee)
		if got := ContainsTree(container, containee, false); got != tt.want {
			t.Errorf("ContainsTree(%q, %q, exact=false) = %v, want %v",
				tt.container, tt.containee, got, tt.want)
		}
	}
}

func TestContainsTreeOutlets(t *testing.T) {
	tests := []struct {
		container string
		containee string
		want      bool
	}{
		{"/team/33/(user/victor//support:help)", "/team/33/(user/victor)", true},
		{"/team/33/(user/victor)", "/team/33/(user/victor//support:help)", false},
		{"/team/33/(user/victor//support:help)", "/team/33", true},
		{"/inbox/33(popup:compose)", "/inbox/33", true},
		{"/inbox/33", "/inbox/33(popup:compose)", false},
	}

	for _, tt := range tests {
		container := mustParse(t, tt.container)
		containee := mustParse(t, tt.containee)
		if got := ContainsTree(container, containee, false); got != tt.want {
			t.Errorf("ContainsTree(%q, %q, exact=false) = %v, want %v",
				tt.container, tt.containee, got, tt.want)
		}
	}
}

func TestContainsTreeQueryParams(t *testing.T) {
	tests := []struct {
		container string
		containee string
		want      bool
	}{
		{"/one?a=1&b=2", "/one?a=1", true},
		{"/one?a=1", "/one?a=1&b=2", false},
		{"/one?a=1", "/one?a=2", false},
		{"/one?a=1&a=2", "/one?a=1&a=2", true},
		// Multi-value parameters compare order-insensitively.
		{"/one?a=2&a=1", "/one?a=1&a=2", true},
		{"/one?a=1&a=2", "/one?a=1", false},
		{"/one?a=1", "/one", true},
	}

	for _, tt := range tests {
		container := mustParse(t, tt.container)
		containee := mustParse(t, tt.containee)
		if got := ContainsTree(container, containee, false); got != tt.want {
			t.Errorf("ContainsTree(%q, %q, exact=false) = %v, want %v",
				tt.container, tt.containee, got, tt.want)
		}
	}
}

func TestContainsTreeExact(t *testing.T) {
	tests := []struct {
		container string
		containee string
		want      bool
	}{
		{"/one/two", "/one/two", true},
		{"/one/two", "/one", false},
		{"/one", "/one/two", false},
		// Exact mode compares matrix parameters.
		{"/one;a=1", "/one;a=1", true},
		{"/one;a=1", "/one;a=2", false},
		{"/one;a=1", "/one", false},
		// Matrix param order is not significant.
		{"/one;a=1;b=2", "/one;b=2;a=1", true},
		// Exact mode requires identical outlet sets.
		{"/inbox/33(popup:compose)", "/inbox/33", false},
		{"/inbox/33(popup:compose)", "/inbox/33(popup:compose)", true},
		// Query params must match exactly.
		{"/one?a=1&b=2", "/one?a=1", false},
		{"/one?b=2&a=1", "/one?a=1&b=2", true},
	}

	for _, tt := range tests {
		container := mustParse(t, tt.container)
		containee := mustParse(t, tt.containee)
		if got := ContainsTree(container, containee, true); got != tt.want {
			t.Errorf("ContainsTree(%q, %q, exact=true) = %v, want %v",
				tt.container, tt.containee, got, tt.want)
		}
	}
}

func TestEmptyTreeContainment(t *testing.T) {
	empty := EmptyTree()

	tests := []struct {
		containee string
		want      bool
	}{
		{"/", true},
		{"", true},
		{"/one", false},
		{"/?a=1", false},
		{"/#frag", true}, // fragments do not participate in containment
	}

	for _, tt := range tests {
		containee := mustParse(t, tt.containee)
		if got := ContainsTree(empty, containee, false); got != tt.want {
			t.Errorf("ContainsTree(empty, %q, exact=false) = %v, want %v", tt.containee, got, tt.want)
		}
	}
}

func TestEqualSegmentsAndPath(t *testing.T) {
	segs := func(url string) []*Segment {
		return primaryChild(t, mustParse(t, url).Root).Segments
	}

	a := segs("/one;x=1/two")
	b := segs("/one;x=1/two")
	c := segs("/one;x=2/two")
	d := segs("/one/three")

	if !EqualSegments(a, b) {
		t.Error("EqualSegments(a, b) = false, want true")
	}
	if EqualSegments(a, c) {
		t.Error("EqualSegments(a, c) = true, want false (params differ)")
	}
	// EqualSegments implies EqualPath, but not the other way round.
	if !EqualPath(a, c) {
		t.Error("EqualPath(a, c) = false, want true (paths match)")
	}
	if EqualPath(a, d) {
		t.Error("EqualPath(a, d) = true, want false")
	}
	if EqualSegments(a, d) {
		t.Error("EqualSegments(a, d) = true, want false")
	}
}

func TestEqualTreesIgnoresSerializationOrder(t *testing.T) {
	a := mustParse(t, "/a(x:1//y:2)?p=1&q=2")
	b := mustParse(t, "/a(y:2//x:1)?q=2&p=1")
	if !EqualTrees(a, b) {
		t.Error("EqualTrees = false for trees differing only in outlet/query order")
	}
}
