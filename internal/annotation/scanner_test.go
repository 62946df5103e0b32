package annotation

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirokuma-tools/shirokuma-docs/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "screens/home.tsx", `/**
 * Home screen.
 * @screen HomeScreen
 * @route /
 */
export function HomeScreen() {}
`)
	writeFile(t, root, "schema/user.ts", `export const UserSchema = z.object({
  id: z.string(),
});
`)
	writeFile(t, root, "top.ts", `/**
 * @component TopBar
 */
`)
	// Files that must be ignored.
	writeFile(t, root, "node_modules/lib/index.ts", "/**\n * @screen Bogus\n */")
	writeFile(t, root, "notes.txt", "/**\n * @screen AlsoBogus\n */")

	scanner, err := NewScanner(config.DocsConfig{
		Include:    []string{"**/*.ts", "**/*.tsx"},
		MaxWorkers: 4,
	}, testLogger())
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, result.Blocks, 2)
	// Sorted by file: schema/... has no blocks, screens/home.tsx then top.ts.
	assert.Equal(t, "screens/home.tsx", result.Blocks[0].File)
	assert.Equal(t, "top.ts", result.Blocks[1].File)

	require.Len(t, result.Tables, 1)
	assert.Equal(t, "User", result.Tables[0].Name)
}

func TestScanner_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "gen/api.ts", "/**\n * @component Generated\n */")
	writeFile(t, root, "src/real.ts", "/**\n * @component Real\n */")

	scanner, err := NewScanner(config.DocsConfig{
		Include:    []string{"**/*.ts"},
		Exclude:    []string{"gen/**"},
		MaxWorkers: 2,
	}, testLogger())
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, result.Blocks, 1)
	name, _ := result.Blocks[0].First("component")
	assert.Equal(t, "Real", name)
}

func TestNewScanner_BadPattern(t *testing.T) {
	_, err := NewScanner(config.DocsConfig{Include: []string{"[unclosed"}}, testLogger())
	assert.Error(t, err)
}
