package urltree

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Parse errors. All parse failures are fatal; there is no partial tree.
var (
	// ErrUnexpectedToken reports a required literal or token boundary that
	// was not found at the cursor.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnterminatedGroup reports an outlet group whose `)` was never found.
	ErrUnterminatedGroup = errors.New("unterminated outlet group")

	// ErrEmptySegment reports a `;` where a segment path was required: an
	// empty path cannot carry matrix parameters.
	ErrEmptySegment = errors.New("empty path segment cannot have matrix parameters")
)

// Token classes. Each matches the longest run up to the next structural
// character for its context.
var (
	segmentRe         = regexp.MustCompile(`^[^/()?;=#]+`)
	queryParamKeyRe   = regexp.MustCompile(`^[^=?&#]+`)
	queryParamValueRe = regexp.MustCompile(`^[^?&#]+`)
)

// Parse converts a route URL string into a Tree. The grammar is resolved
// left to right with single-token lookahead; input after the fragment (or
// after an unconsumable structural character outside a group) is ignored,
// matching the grammar's "own contiguous leading portion" rule.
func Parse(rawURL string) (*Tree, error) {
	p := &parser{url: rawURL, remaining: rawURL}

	root, err := p.parseRootSegment()
	if err != nil {
		return nil, err
	}
	queryParams, err := p.parseQueryParams()
	if err != nil {
		return nil, err
	}
	fragment, err := p.parseFragment()
	if err != nil {
		return nil, err
	}

	return NewTree(root, queryParams, fragment), nil
}

// parser consumes the remaining unparsed suffix of the URL, advancing
// strictly left to right with no backtracking. The entry points must run in
// order: parseRootSegment, parseQueryParams, parseFragment.
type parser struct {
	url       string
	remaining string
}

func (p *parser) parseRootSegment() (*SegmentGroup, error) {
	p.consumeOptional("/")
	if p.remaining == "" || p.peekStartsWith("?") || p.peekStartsWith("#") {
		return NewSegmentGroup(nil, nil), nil
	}

	// The root never owns segments itself; everything lives in children.
	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	return NewSegmentGroup(nil, children), nil
}

func (p *parser) parseChildren() (map[string]*SegmentGroup, error) {
	if p.remaining == "" {
		return map[string]*SegmentGroup{}, nil
	}

	p.consumeOptional("/")

	var segments []*Segment
	if !p.peekStartsWith("(") {
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	// `//` and `/(` are reserved for outlet groups; a segment run stops
	// before them.
	for p.peekStartsWith("/") && !p.peekStartsWith("//") && !p.peekStartsWith("/(") {
		if err := p.capture("/"); err != nil {
			return nil, err
		}
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	children := map[string]*SegmentGroup{}
	if p.peekStartsWith("/(") {
		if err := p.capture("/"); err != nil {
			return nil, err
		}
		var err error
		children, err = p.parseParens(true)
		if err != nil {
			return nil, err
		}
	}

	res := map[string]*SegmentGroup{}
	if p.peekStartsWith("(") {
		var err error
		res, err = p.parseParens(false)
		if err != nil {
			return nil, err
		}
	}

	if len(segments) > 0 || len(children) > 0 {
		res[PrimaryOutlet] = NewSegmentGroup(segments, children)
	}
	return res, nil
}

func (p *parser) parseSegment() (*Segment, error) {
	path := matchToken(segmentRe, p.remaining)
	if path == "" && p.peekStartsWith(";") {
		return nil, fmt.Errorf("cannot parse url %q: %w", p.url, ErrEmptySegment)
	}
	if err := p.capture(path); err != nil {
		return nil, err
	}

	decoded, err := Decode(path)
	if err != nil {
		return nil, fmt.Errorf("cannot parse url %q: %w", p.url, err)
	}

	params, err := p.parseMatrixParams()
	if err != nil {
		return nil, err
	}
	return NewSegment(decoded, params), nil
}

func (p *parser) parseMatrixParams() (*Params, error) {
	params := NewParams()
	for p.consumeOptional(";") {
		if err := p.parseParam(params); err != nil {
			return nil, err
		}
	}
	return params, nil
}

// parseParam parses one `key[=value]` matrix pair. A repeated key overwrites
// the prior value.
func (p *parser) parseParam(params *Params) error {
	key := matchToken(segmentRe, p.remaining)
	if key == "" {
		return nil
	}
	if err := p.capture(key); err != nil {
		return err
	}

	value := ""
	if p.consumeOptional("=") {
		if v := matchToken(segmentRe, p.remaining); v != "" {
			value = v
			if err := p.capture(v); err != nil {
				return err
			}
		}
	}

	decodedKey, err := Decode(key)
	if err != nil {
		return fmt.Errorf("cannot parse url %q: %w", p.url, err)
	}
	decodedValue, err := Decode(value)
	if err != nil {
		return fmt.Errorf("cannot parse url %q: %w", p.url, err)
	}
	params.Set(decodedKey, decodedValue)
	return nil
}

// parseParens parses one parenthesized outlet group. When allowPrimary is
// true (the `/(` form), a member without an explicit `name:` prefix belongs
// to the primary outlet; otherwise it resolves to the empty outlet name.
func (p *parser) parseParens(allowPrimary bool) (map[string]*SegmentGroup, error) {
	groups := map[string]*SegmentGroup{}
	if err := p.capture("("); err != nil {
		return nil, err
	}

	for !p.consumeOptional(")") {
		if p.remaining == "" {
			return nil, fmt.Errorf("cannot parse url %q: %w", p.url, ErrUnterminatedGroup)
		}

		path := matchToken(segmentRe, p.remaining)

		// The member token must end on a structural character; anything
		// else means an unescaped character or an unclosed group.
		var next byte
		if len(p.remaining) > len(path) {
			next = p.remaining[len(path)]
		}
		if next != '/' && next != ')' && next != ';' {
			return nil, fmt.Errorf("cannot parse url %q: %w", p.url, ErrUnexpectedToken)
		}

		outlet := ""
		if idx := strings.Index(path, ":"); idx > -1 {
			outlet = path[:idx]
			if err := p.capture(outlet); err != nil {
				return nil, err
			}
			if err := p.capture(":"); err != nil {
				return nil, err
			}
		} else if allowPrimary {
			outlet = PrimaryOutlet
		}

		children, err := p.parseChildren()
		if err != nil {
			return nil, err
		}

		// A member whose children are exactly one primary group collapses
		// to that group, dropping the redundant wrapper level.
		if len(children) == 1 {
			if primary, ok := children[PrimaryOutlet]; ok {
				groups[outlet] = primary
			} else {
				groups[outlet] = NewSegmentGroup(nil, children)
			}
		} else {
			groups[outlet] = NewSegmentGroup(nil, children)
		}

		p.consumeOptional("//")
	}

	return groups, nil
}

func (p *parser) parseQueryParams() (*QueryParams, error) {
	params := NewQueryParams()
	if p.consumeOptional("?") {
		for {
			if err := p.parseQueryParam(params); err != nil {
				return nil, err
			}
			if !p.consumeOptional("&") {
				break
			}
		}
	}
	return params, nil
}

// parseQueryParam parses one `key[=value]` query pair. An empty key ends the
// query block. Repeated keys accumulate values in first-seen order.
func (p *parser) parseQueryParam(params *QueryParams) error {
	key := matchToken(queryParamKeyRe, p.remaining)
	if key == "" {
		return nil
	}
	if err := p.capture(key); err != nil {
		return err
	}

	value := ""
	if p.consumeOptional("=") {
		if v := matchToken(queryParamValueRe, p.remaining); v != "" {
			value = v
			if err := p.capture(v); err != nil {
				return err
			}
		}
	}

	decodedKey, err := DecodeQuery(key)
	if err != nil {
		return fmt.Errorf("cannot parse url %q: %w", p.url, err)
	}
	decodedValue, err := DecodeQuery(value)
	if err != nil {
		return fmt.Errorf("cannot parse url %q: %w", p.url, err)
	}
	params.Add(decodedKey, decodedValue)
	return nil
}

func (p *parser) parseFragment() (*string, error) {
	if !p.consumeOptional("#") {
		return nil, nil
	}
	fragment, err := Decode(p.remaining)
	if err != nil {
		return nil, fmt.Errorf("cannot parse url %q: %w", p.url, err)
	}
	p.remaining = ""
	return &fragment, nil
}

// peekStartsWith reports whether the remaining input starts with s, without
// consuming anything.
func (p *parser) peekStartsWith(s string) bool {
	return strings.HasPrefix(p.remaining, s)
}

// consumeOptional consumes s if it is the next input, reporting whether it
// did.
func (p *parser) consumeOptional(s string) bool {
	if p.peekStartsWith(s) {
		p.remaining = p.remaining[len(s):]
		return true
	}
	return false
}

// capture consumes s, which must be the next input.
func (p *parser) capture(s string) error {
	if !p.peekStartsWith(s) {
		return fmt.Errorf("cannot parse url %q: %w: expected %q", p.url, ErrUnexpectedToken, s)
	}
	p.remaining = p.remaining[len(s):]
	return nil
}

// matchToken returns the longest prefix of s matched by re, or "".
func matchToken(re *regexp.Regexp, s string) string {
	return re.FindString(s)
}
