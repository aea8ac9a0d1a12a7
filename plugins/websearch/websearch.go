// Package websearch provides a web search fallback plugin. It admits
// every non-empty query and offers one low-scored result per configured
// provider, so something useful is always on the list when nothing
// else matches. Selecting a result opens the provider URL in the
// default browser.
package websearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/browser"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// PluginID is the identity the search plugin registers under.
const PluginID = "websearch"

const payloadURL = "url"

// Provider describes one search engine. URL must contain exactly one
// %s verb, replaced with the escaped query text.
type Provider struct {
	Name string
	URL  string
}

// DefaultProviders returns the built-in provider set.
func DefaultProviders() []Provider {
	return []Provider{
		{Name: "DuckDuckGo", URL: "https://duckduckgo.com/?q=%s"},
		{Name: "Wikipedia", URL: "https://en.wikipedia.org/wiki/Special:Search?search=%s"},
	}
}

// Search is the web search fallback plugin.
type Search struct {
	providers []Provider
	openURL   func(rawURL string) error
}

var _ plugin.Plugin = (*Search)(nil)

// Option configures a Search.
type Option func(*Search)

// WithProviders replaces the default provider set.
func WithProviders(providers ...Provider) Option {
	return func(s *Search) { s.providers = providers }
}

// WithOpener replaces the browser launcher. Intended for tests.
func WithOpener(open func(rawURL string) error) Option {
	return func(s *Search) { s.openURL = open }
}

// New creates a Search with the default providers and browser opener.
func New(opts ...Option) *Search {
	s := &Search{
		providers: DefaultProviders(),
		openURL:   browser.OpenURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record returns a registry record for the search plugin, enabled.
func Record(opts ...Option) *plugin.Record {
	return &plugin.Record{
		ID:          PluginID,
		DisplayName: "Web Search",
		Description: "Searches the web for the query",
		Enabled:     true,
		Plugin:      New(opts...),
	}
}

// Admits accepts any query with visible text.
func (s *Search) Admits(q *omnibar.Query) bool {
	return strings.TrimSpace(q.Text()) != ""
}

// Match offers one result per provider. The score is deliberately low:
// these are fallbacks and must rank below any specific plugin's hit.
func (s *Search) Match(_ context.Context, q *omnibar.Query) ([]omnibar.Result, error) {
	text := strings.TrimSpace(q.Text())
	if text == "" {
		return nil, omnibar.ErrNotApplicable
	}

	results := make([]omnibar.Result, 0, len(s.providers))
	for _, p := range s.providers {
		target := fmt.Sprintf(p.URL, url.QueryEscape(text))
		results = append(results, omnibar.Result{
			ID:       fmt.Sprintf("%s:%s:%s", PluginID, strings.ToLower(p.Name), text),
			Kind:     "web-search",
			Title:    fmt.Sprintf("Search %s for %q", p.Name, text),
			Subtitle: target,
			Icon:     "globe",
			Score:    10,
			Payload:  map[string]any{payloadURL: target},
		})
	}
	return results, nil
}

// Execute opens the provider URL in the default browser.
func (s *Search) Execute(_ context.Context, r omnibar.Result) error {
	target, ok := r.Payload[payloadURL].(string)
	if !ok {
		return fmt.Errorf("websearch: result %s has no %s payload", r.ID, payloadURL)
	}
	if err := s.openURL(target); err != nil {
		return fmt.Errorf("websearch: open browser: %w", err)
	}
	return nil
}
