package testcatalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestExtractCases(t *testing.T) {
	source := []byte(`describe("login", () => {
  it("TC-101 accepts a valid password", () => {});
  it("rejects an empty password", () => {});
});

describe("logout", () => {
  test("TC-110 clears the session", () => {});
});
`)

	cases := extractCases("login.test.ts", source)
	require.Len(t, cases, 3)

	assert.Equal(t, "TC-101", cases[0].ID)
	assert.Equal(t, "accepts a valid password", cases[0].Title)
	assert.Equal(t, "login", cases[0].Suite)
	assert.Equal(t, 2, cases[0].Line)

	assert.Equal(t, "", cases[1].ID)
	assert.Equal(t, "rejects an empty password", cases[1].Title)
	assert.Equal(t, "login", cases[1].Suite)

	assert.Equal(t, "TC-110", cases[2].ID)
	assert.Equal(t, "logout", cases[2].Suite)
}

func TestExtractCases_IDSeparators(t *testing.T) {
	source := []byte(`it("TC-1: escapes html", () => {});
it("TC-2 - trims whitespace", () => {});
it("TC-3 plain separator", () => {});
`)

	cases := extractCases("render.test.ts", source)
	require.Len(t, cases, 3)

	assert.Equal(t, "TC-1", cases[0].ID)
	assert.Equal(t, "escapes html", cases[0].Title)
	assert.Equal(t, "TC-2", cases[1].ID)
	assert.Equal(t, "trims whitespace", cases[1].Title)
	assert.Equal(t, "TC-3", cases[2].ID)
	assert.Equal(t, "plain separator", cases[2].Title)
}

func TestExtractCases_TestcaseTags(t *testing.T) {
	source := []byte(`/**
 * @testcase TC-201 exports respect filters
 */
it("TC-201 exports respect filters", () => {});

/**
 * @testcase TC-202 manual-only scenario
 */
`)

	cases := extractCases("export.test.ts", source)

	ids := map[string]int{}
	for _, c := range cases {
		ids[c.ID]++
	}
	// TC-201 appears once even though both the tag and the it() carry it.
	assert.Equal(t, 1, ids["TC-201"])
	assert.Equal(t, 1, ids["TC-202"])
}

func TestScan(t *testing.T) {
	root := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}

	write("auth/login.test.ts", `it("TC-1 works", () => {});`)
	write("auth/helper.ts", `it("not a test file", () => {});`)
	write("node_modules/pkg/x.test.ts", `it("ignored", () => {});`)

	catalog, err := Scan(root, testLogger(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.Files)
	require.Len(t, catalog.Cases, 1)
	assert.Equal(t, "auth/login.test.ts", catalog.Cases[0].File)
	assert.Equal(t, "TC-1", catalog.Cases[0].ID)
}

func TestCatalog_CasesByFile(t *testing.T) {
	c := &Catalog{Cases: []Case{
		{File: "a.test.ts", Title: "one"},
		{File: "a.test.ts", Title: "two"},
		{File: "b.test.ts", Title: "three"},
	}}

	grouped := c.CasesByFile()
	assert.Len(t, grouped["a.test.ts"], 2)
	assert.Len(t, grouped["b.test.ts"], 1)
}
