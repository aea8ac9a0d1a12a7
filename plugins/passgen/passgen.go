// Package passgen provides a password generator plugin. Queries of the
// form "pw" or "pw 32" produce a fresh random password; selecting the
// result copies it to the clipboard.
package passgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugin"
)

// PluginID is the identity the generator registers under.
const PluginID = "passgen"

const (
	// DefaultLength is used when the query gives no length.
	DefaultLength = 24

	// MinLength and MaxLength bound the requested length.
	MinLength = 8
	MaxLength = 128

	payloadPassword = "password"

	charset = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!@#$%^&*()-_=+[]{};:,.<>?"
)

// Generator produces random passwords from crypto/rand.
type Generator struct{}

var _ plugin.Plugin = (*Generator)(nil)

// New creates a Generator.
func New() *Generator { return &Generator{} }

// Record returns a registry record for the generator, enabled.
func Record() *plugin.Record {
	return &plugin.Record{
		ID:          PluginID,
		DisplayName: "Password Generator",
		Description: "Generates random passwords",
		Enabled:     true,
		Plugin:      New(),
	}
}

// Admits accepts "pw" and "password", optionally followed by a length.
func (g *Generator) Admits(q *omnibar.Query) bool {
	keyword, _, _ := strings.Cut(strings.TrimSpace(q.Text()), " ")
	return keyword == "pw" || keyword == "password"
}

// Match generates one password of the requested length. An out-of-range
// or unparseable length is not applicable: the user is mid-edit.
func (g *Generator) Match(_ context.Context, q *omnibar.Query) ([]omnibar.Result, error) {
	_, arg, hasArg := strings.Cut(strings.TrimSpace(q.Text()), " ")

	length := DefaultLength
	if hasArg {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < MinLength || n > MaxLength {
			return nil, omnibar.ErrNotApplicable
		}
		length = n
	}

	password, err := generate(length)
	if err != nil {
		return nil, fmt.Errorf("passgen: %w", err)
	}

	return []omnibar.Result{{
		ID:       fmt.Sprintf("%s:%d", PluginID, length),
		Kind:     "password",
		Title:    password,
		Subtitle: fmt.Sprintf("%d characters, ~%.0f bits of entropy", length, entropyBits(length)),
		Icon:     "key",
		Score:    90,
		Payload:  map[string]any{payloadPassword: password},
	}}, nil
}

// Execute copies the generated password to the system clipboard.
func (g *Generator) Execute(_ context.Context, r omnibar.Result) error {
	password, ok := r.Payload[payloadPassword].(string)
	if !ok {
		return fmt.Errorf("passgen: result %s has no %s payload", r.ID, payloadPassword)
	}
	if err := clipboard.WriteAll(password); err != nil {
		return fmt.Errorf("passgen: copy to clipboard: %w", err)
	}
	return nil
}

// generate draws each character uniformly from the charset using
// crypto/rand. Modulo bias is avoided by rand.Int.
func generate(length int) (string, error) {
	max := big.NewInt(int64(len(charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}

func entropyBits(length int) float64 {
	return float64(length) * math.Log2(float64(len(charset)))
}
