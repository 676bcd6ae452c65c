package texts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundleFile(t *testing.T, dir, lang, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, lang+".json"), []byte(content), 0o644))
}

func TestLoadReadsLanguageFile(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, "en", `{"welcome": "Welcome, {fullname}!", "already_registered": "You already registered."}`)

	bundle, err := Load(dir, "en")
	require.NoError(t, err)

	assert.Equal(t, "en", bundle.Lang())
	assert.Equal(t, "You already registered.", bundle.Get("already_registered"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "de")
	require.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, "en", `not json`)

	_, err := Load(dir, "en")
	require.Error(t, err)
}

func TestRenderReplacesNamedPlaceholders(t *testing.T) {
	bundle := NewBundle("en", map[string]string{
		"welcome": "Welcome, {fullname}! You are now registered.",
	})

	got := bundle.Render("welcome", map[string]string{"fullname": "Matvey Markin"})
	assert.Equal(t, "Welcome, Matvey Markin! You are now registered.", got)
}

func TestGetMissingKeyEchoesKey(t *testing.T) {
	bundle := NewBundle("en", map[string]string{})

	assert.Equal(t, "nope", bundle.Get("nope"))
	assert.Equal(t, "nope", bundle.Render("nope", map[string]string{"x": "y"}))
}
