package urltree

// Params is an insertion-ordered map of matrix parameter keys to values.
// Setting an existing key overwrites the value but keeps the key's original
// position, so serialization stays deterministic while last-write-wins
// semantics hold for repeated keys.
//
// The zero value is not usable; create instances with NewParams.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns an empty ordered parameter map.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores value under key. A repeated key keeps its first-seen position.
func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Len returns the number of keys.
func (p *Params) Len() int {
	return len(p.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (p *Params) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Map returns a plain map copy of the parameters. Insertion order is lost.
func (p *Params) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// Equal reports whether p and other hold the same keys and values.
// Insertion order is not significant for equality.
func (p *Params) Equal(other *Params) bool {
	if p.Len() != other.Len() {
		return false
	}
	for k, v := range p.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// QueryParams is an insertion-ordered multimap of query parameter keys to
// values. The first occurrence of a key fixes its position; repeated
// occurrences append to its value list in first-seen order.
//
// The zero value is not usable; create instances with NewQueryParams.
type QueryParams struct {
	keys   []string
	values map[string][]string
}

// NewQueryParams returns an empty ordered query parameter multimap.
func NewQueryParams() *QueryParams {
	return &QueryParams{values: make(map[string][]string)}
}

// Add appends value to the list stored under key.
func (q *QueryParams) Add(key, value string) {
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = append(q.values[key], value)
}

// Get returns the values stored under key in first-seen order.
// The returned slice is shared; callers must not modify it.
func (q *QueryParams) Get(key string) []string {
	return q.values[key]
}

// Has reports whether key is present.
func (q *QueryParams) Has(key string) bool {
	_, ok := q.values[key]
	return ok
}

// Len returns the number of distinct keys.
func (q *QueryParams) Len() int {
	return len(q.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (q *QueryParams) Keys() []string {
	keys := make([]string, len(q.keys))
	copy(keys, q.keys)
	return keys
}

// Map returns a plain map copy of the parameters. Insertion order is lost.
func (q *QueryParams) Map() map[string][]string {
	m := make(map[string][]string, len(q.values))
	for k, v := range q.values {
		vals := make([]string, len(v))
		copy(vals, v)
		m[k] = vals
	}
	return m
}

// ParamMap is a read-only, multi-value-aware view over a parameter set.
// Trees and segments expose one lazily and cache it; see Tree.QueryParamMap
// and Segment.ParameterMap.
type ParamMap struct {
	keys   []string
	values map[string][]string
}

func newParamMap(keys []string, values map[string][]string) *ParamMap {
	return &ParamMap{keys: keys, values: values}
}

// Has reports whether name is present.
func (m *ParamMap) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Get returns the first value stored under name, or "" when absent.
func (m *ParamMap) Get(name string) string {
	if vals := m.values[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// GetAll returns all values stored under name in first-seen order.
func (m *ParamMap) GetAll(name string) []string {
	return m.values[name]
}

// Keys returns the parameter names in insertion order.
func (m *ParamMap) Keys() []string {
	return m.keys
}
