package omnibar

// Query is the immutable input to one dispatch cycle: the raw text the
// user has typed plus an optional opaque settings mapping supplied by
// the host. Plugins receive the same Query value and must not mutate
// it; the unexported fields make that contract structural.
type Query struct {
	text     string
	settings map[string]any
}

// QueryOption configures a Query at construction time.
type QueryOption func(*Query)

// WithSetting attaches an opaque host setting to the query.
func WithSetting(key string, value any) QueryOption {
	return func(q *Query) {
		if q.settings == nil {
			q.settings = make(map[string]any)
		}
		q.settings[key] = value
	}
}

// NewQuery creates a Query for one dispatch cycle.
func NewQuery(text string, opts ...QueryOption) *Query {
	q := &Query{text: text}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Text returns the raw user input.
func (q *Query) Text() string { return q.text }

// Setting returns the host setting stored under key, if any.
func (q *Query) Setting(key string) (any, bool) {
	v, ok := q.settings[key]
	return v, ok
}
