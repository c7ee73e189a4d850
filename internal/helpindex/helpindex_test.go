package helpindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHeader(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "help_urls.h")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtract_LiteralTargets(t *testing.T) {
	header := writeHeader(t, `
HELP_URL("comma", "language-reference-guide/symbols/comma")
HELP_URL("index", "language-reference-guide/index")
`)

	files, err := Extract(header, "/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/repo/language-reference-guide/docs/symbols/comma.md",
		"/repo/language-reference-guide/docs/index.md",
	}, files)
}

func TestExtract_MacroAndConcatenation(t *testing.T) {
	header := writeHeader(t, `
#define LRG "language-reference-guide"
#define SYMBOLS "language-reference-guide/symbols"

HELP_URL("plain-macro", LRG)
HELP_URL("concat", SYMBOLS"/comma")
`)

	files, err := Extract(header, "/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/repo/language-reference-guide/docs.md",
		"/repo/language-reference-guide/docs/symbols/comma.md",
	}, files)
}

func TestExtract_CommentedEntriesIgnored(t *testing.T) {
	header := writeHeader(t, `
HELP_URL("live", "guide/live")
// HELP_URL("dead", "guide/dead")
/*
HELP_URL("blocked", "guide/blocked")
*/
`)

	files, err := Extract(header, "/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{"/repo/guide/docs/live.md"}, files)
}

func TestExtract_EscapedQuoteInKey(t *testing.T) {
	header := writeHeader(t, `HELP_URL("key-with-\"quote", "guide/target")`)

	files, err := Extract(header, "/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{"/repo/guide/docs/target.md"}, files)
}

func TestExtract_MissingHeaderFails(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "absent.h"), "/repo")
	require.Error(t, err)
}

func TestStripComments(t *testing.T) {
	in := "keep1\n// gone\nkeep2 /* mid */ keep3\n/* multi\nline */keep4\n"
	out := StripComments(in)
	assert.Contains(t, out, "keep1")
	assert.Contains(t, out, "keep2")
	assert.Contains(t, out, "keep3")
	assert.Contains(t, out, "keep4")
	assert.NotContains(t, out, "gone")
	assert.NotContains(t, out, "mid")
	assert.NotContains(t, out, "multi")
	// Line comments keep their newline so line structure survives.
	assert.Contains(t, out, "keep1\n\nkeep2")
}
