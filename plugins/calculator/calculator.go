// Package calculator provides an inline calculator plugin. It admits
// queries that look like arithmetic, evaluates them with
// expr-lang/expr, and copies the computed value to the clipboard on
// selection.
package calculator

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/expr-lang/expr"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// PluginID is the identity the calculator registers under.
const PluginID = "calculator"

// payloadValue is the payload key carrying the formatted result value.
const payloadValue = "value"

// Calculator evaluates arithmetic expressions typed into the bar.
type Calculator struct{}

var _ plugin.Plugin = (*Calculator)(nil)

// New creates a Calculator.
func New() *Calculator { return &Calculator{} }

// Record returns a registry record for the calculator, enabled.
func Record() *plugin.Record {
	return &plugin.Record{
		ID:          PluginID,
		DisplayName: "Calculator",
		Description: "Evaluates arithmetic expressions inline",
		Enabled:     true,
		Plugin:      New(),
	}
}

// Admits reports whether the query plausibly is arithmetic: it must
// start with a digit, a parenthesis, or a sign, and contain at least
// one operator or decimal structure worth evaluating. The real parse
// happens in Match; this is only a cheap gate.
func (c *Calculator) Admits(q *omnibar.Query) bool {
	text := strings.TrimSpace(q.Text())
	if text == "" {
		return false
	}
	first := text[0]
	if !(first >= '0' && first <= '9') && first != '(' && first != '-' && first != '.' {
		return false
	}
	return strings.ContainsAny(text, "+-*/%^.")
}

// Match evaluates the expression. A query that fails to parse or does
// not produce a number is not applicable rather than a fault: users
// type partial expressions on every keystroke.
func (c *Calculator) Match(_ context.Context, q *omnibar.Query) ([]omnibar.Result, error) {
	text := strings.TrimSpace(q.Text())

	program, err := expr.Compile(text)
	if err != nil {
		return nil, omnibar.ErrNotApplicable
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return nil, omnibar.ErrNotApplicable
	}

	value, ok := formatNumber(out)
	if !ok {
		return nil, omnibar.ErrNotApplicable
	}

	return []omnibar.Result{{
		ID:       PluginID + ":" + text,
		Kind:     "calculation",
		Title:    value,
		Subtitle: text + " = " + value,
		Icon:     "calculator",
		Score:    95,
		Payload:  map[string]any{payloadValue: value},
	}}, nil
}

// Execute copies the computed value to the system clipboard.
func (c *Calculator) Execute(_ context.Context, r omnibar.Result) error {
	value, ok := r.Payload[payloadValue].(string)
	if !ok {
		return fmt.Errorf("calculator: result %s has no %s payload", r.ID, payloadValue)
	}
	if err := clipboard.WriteAll(value); err != nil {
		return fmt.Errorf("calculator: copy to clipboard: %w", err)
	}
	return nil
}

// formatNumber renders a numeric evaluation output without trailing
// float noise. Non-numeric outputs (strings, bools) are rejected.
func formatNumber(out any) (string, bool) {
	switch v := out.(type) {
	case int:
		return fmt.Sprintf("%d", v), true
	case int64:
		return fmt.Sprintf("%d", v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return fmt.Sprintf("%d", int64(v)), true
		}
		return fmt.Sprintf("%g", v), true
	default:
		return "", false
	}
}
