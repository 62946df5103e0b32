package gitutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIgnored_CreatesFile(t *testing.T) {
	dir := t.TempDir()

	added, err := EnsureIgnored(dir, []string{"docs/generated", ".shirokuma-docs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/generated/", ".shirokuma-docs/"}, added)

	content := readIgnore(t, dir)
	assert.Contains(t, content, ignoreMarker)
	assert.Contains(t, content, "docs/generated/")
	assert.Contains(t, content, ".shirokuma-docs/")
}

func TestEnsureIgnored_RespectsExistingPatterns(t *testing.T) {
	dir := t.TempDir()
	existing := "node_modules/\ndocs/generated/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(existing), 0644))

	added, err := EnsureIgnored(dir, []string{"docs/generated", ".shirokuma-docs"})
	require.NoError(t, err)
	assert.Equal(t, []string{".shirokuma-docs/"}, added)

	content := readIgnore(t, dir)
	// The pre-existing entry must not be duplicated.
	assert.Equal(t, 1, strings.Count(content, "docs/generated/"))
	assert.True(t, strings.HasPrefix(content, existing))
}

func TestEnsureIgnored_WildcardCoversPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("docs/*\n"), 0644))

	added, err := EnsureIgnored(dir, []string{"docs/generated"})
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestEnsureIgnored_NothingWanted(t *testing.T) {
	dir := t.TempDir()

	added, err := EnsureIgnored(dir, []string{"", "  "})
	require.NoError(t, err)
	assert.Empty(t, added)

	_, err = os.Stat(filepath.Join(dir, ".gitignore"))
	assert.True(t, os.IsNotExist(err), "no .gitignore should be created when nothing is missing")
}

func readIgnore(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	return string(data)
}
