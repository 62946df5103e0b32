package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJSON(&buf, map[string]any{"number": 42, "title": "Add docs"})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "\"number\": 42")
	assert.Contains(t, out, "\"title\": \"Add docs\"")
}

func TestPrintJSON_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJSON(&buf, func() {})
	assert.Error(t, err)
}
