package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTSV drops the given lines into a temp file and returns its path.
func writeTSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "block.tsv")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600)
	require.NoError(t, err, "failed to set up test file")
	return path
}

func TestRun_ValidInput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeTSV(t,
		"#metadataBlock\tname\tdataverseAlias\tdisplayName\tblockURI",
		"\tcitation\t\tCitation Metadata\thttps://dataverse.org/schema/citation",
		"#datasetField\tname\ttitle\tdescription\twatermark\tfieldType\tdisplayOrder\tdisplayFormat"+
			"\tadvancedSearchField\tallowControlledVocabulary\tallowmultiples\tfacetable"+
			"\tdisplayoncreate\trequired\tparent\tmetadatablock_id\ttermURI",
		"\ttitle\tTitle\tThe main title of the Dataset\t\ttext\t0\t\tTRUE\tFALSE\tFALSE\tFALSE\tTRUE\tTRUE\t\tcitation\thttp://purl.org/dc/terms/title",
	)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{path})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), `metadata block "citation" with 1 fields is valid`)
}

func TestRun_InvalidInput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The required flag carries a lowercase boolean, which the dialect rejects.
	path := writeTSV(t,
		"#metadataBlock\tname\tdataverseAlias\tdisplayName\tblockURI",
		"\tcitation\t\tCitation Metadata\thttps://dataverse.org/schema/citation",
		"#datasetField\tname\ttitle\tdescription\twatermark\tfieldType\tdisplayOrder\tdisplayFormat"+
			"\tadvancedSearchField\tallowControlledVocabulary\tallowmultiples\tfacetable"+
			"\tdisplayoncreate\trequired\tparent\tmetadatablock_id\ttermURI",
		"\ttitle\tTitle\t\t\ttext\t0\t\tTRUE\tFALSE\tFALSE\tFALSE\tTRUE\ttrue\t\tcitation\t",
	)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{path})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed validation")
	require.Contains(t, out.String(), path+":4:14: error:")
}

func TestRun_MissingInputFile(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "nope.tsv")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open input")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
