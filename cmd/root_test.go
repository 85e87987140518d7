package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args against a fresh command tree and
// returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeMovieCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	f, err := os.Create(path)
	require.NoError(t, err, "creating fixture")
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows), "writing fixture")
	require.NoError(t, f.Close(), "closing fixture")
	return path
}

func fixtureCSV(t *testing.T) string {
	t.Helper()
	good := []string{"7.5", "1234", "120", "R", "None", "Mild", "None", "None", "None", "Action, Drama", "2001", "Film", "0"}
	return writeMovieCSV(t, [][]string{
		{"Rate", "Votes", "Duration", "Certificate", "Nudity", "Violence",
			"Profanity", "Alcohol", "Frightening", "Genre", "Date", "Type", "Episodes"},
		good,
		{"6.2", "890", "95", "PG", "None", "None", "None", "None", "None", "Drama", "1999", "Film", "0"},
		{"No Rate", "50", "88", "R", "None", "None", "None", "None", "None", "Drama", "2005", "Film", "0"},
		{"8.1", "9000", "45", "TV-MA", "Mild", "Mild", "Mild", "Mild", "Mild", "Drama", "2010", "Series", "24"},
		good,
		{"5.5", "300", "", "PG", "None", "None", "None", "None", "None", "Action", "1995", "Film", "0"},
	})
}

func TestCleanCommand(t *testing.T) {
	data := fixtureCSV(t)
	cleaned := filepath.Join(t.TempDir(), "cleaned.csv")

	out, err := execute(t, "clean", "--data", data, "--out", cleaned)
	require.NoError(t, err)
	assert.Contains(t, out, "cleaned 6 -> 2 rows", "audit line missing from output")
	assert.Contains(t, out, "duplicate 1", "duplicate count missing from output")

	f, err := os.Open(cleaned)
	require.NoError(t, err, "opening cleaned CSV")
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "parsing cleaned CSV")
	require.Len(t, rows, 3, "want header + 2 rows")
	assert.Equal(t, "Rate", rows[0][0], "cleaned header starts with Rate")
	assert.Len(t, rows[0], 11, "Type and Episodes dropped")
	assert.Equal(t, "7.5", rows[1][0], "first cleaned Rate")
}

func TestCleanCommandWithoutExport(t *testing.T) {
	data := fixtureCSV(t)

	out, err := execute(t, "clean", "--data", data)
	require.NoError(t, err)
	assert.NotContains(t, out, "written to", "no --out given but output mentions an export")
}

func TestCleanCommandMissingFile(t *testing.T) {
	_, err := execute(t, "clean", "--data", filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err, "expected error for a missing input file")
}

func TestRunCommandRejectsEmptyData(t *testing.T) {
	_, err := execute(t, "run", "--data", "")
	require.Error(t, err, "expected validation error for an empty data path")
}

func TestRunCommandMissingConfigFile(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "expected error for a missing config file")
}

func TestRootListsSubcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "clean")
}
