package passgen_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlaunchr/omnibar"
	"github.com/voltlaunchr/omnibar/plugins/passgen"
)

func TestAdmits(t *testing.T) {
	g := passgen.New()

	tests := []struct {
		query string
		want  bool
	}{
		{"pw", true},
		{"password", true},
		{"pw 32", true},
		{"password 16", true},
		{"  pw  ", true},
		{"pwd", false},
		{"1+1", false},
		{"", false},
		{"firefox", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Admits(omnibar.NewQuery(tt.query)), "query %q", tt.query)
	}
}

func TestMatch_DefaultLength(t *testing.T) {
	g := passgen.New()

	results, err := g.Match(context.Background(), omnibar.NewQuery("pw"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Len(t, r.Title, passgen.DefaultLength)
	assert.Equal(t, r.Title, r.Payload["password"])
	assert.Contains(t, r.Subtitle, "bits of entropy")
	assert.Equal(t, "password", r.Kind)
}

func TestMatch_ExplicitLength(t *testing.T) {
	g := passgen.New()

	results, err := g.Match(context.Background(), omnibar.NewQuery("pw 32"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Title, 32)
}

func TestMatch_InvalidLengthNotApplicable(t *testing.T) {
	g := passgen.New()
	ctx := context.Background()

	for _, q := range []string{"pw abc", "pw 4", "pw 1000", "pw -1"} {
		_, err := g.Match(ctx, omnibar.NewQuery(q))
		assert.ErrorIs(t, err, omnibar.ErrNotApplicable, "query %q", q)
	}
}

func TestMatch_PasswordsAreFresh(t *testing.T) {
	g := passgen.New()
	ctx := context.Background()

	seen := make(map[string]bool)
	for range 10 {
		results, err := g.Match(ctx, omnibar.NewQuery("pw"))
		require.NoError(t, err)
		require.Len(t, results, 1)
		pw := results[0].Title
		assert.False(t, seen[pw], "password repeated: %s", pw)
		seen[pw] = true
	}
}

func TestMatch_CharsetOnly(t *testing.T) {
	g := passgen.New()

	results, err := g.Match(context.Background(), omnibar.NewQuery("pw 64"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+[]{};:,.<>?"
	for _, ch := range results[0].Title {
		assert.True(t, strings.ContainsRune(charset, ch), "unexpected character %q", ch)
	}
}

func TestExecute_MissingPayload(t *testing.T) {
	g := passgen.New()

	err := g.Execute(context.Background(), omnibar.Result{ID: "passgen:24"})
	require.Error(t, err)
}

func TestRecord(t *testing.T) {
	rec := passgen.Record()
	assert.Equal(t, passgen.PluginID, rec.ID)
	assert.True(t, rec.Enabled)
	require.NotNil(t, rec.Plugin)
}
