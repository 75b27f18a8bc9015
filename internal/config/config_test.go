package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/dirtree/internal/utils"
)

// writeMemoryFile creates a file on the in-memory filesystem, failing the test on error.
func writeMemoryFile(testingHandle *testing.T, fileSystem afero.Fs, filePath string, content string) {
	testingHandle.Helper()
	require.NoError(testingHandle, afero.WriteFile(fileSystem, filePath, []byte(content), 0o644))
}

// TestLoadIgnorePatternsStripsCommentsAndBlankLines verifies comment and blank-line removal.
func TestLoadIgnorePatternsStripsCommentsAndBlankLines(testingHandle *testing.T) {
	fileSystem := afero.NewMemMapFs()
	ignorePath := filepath.Join("/project", utils.GitIgnoreFileName)
	writeMemoryFile(testingHandle, fileSystem, ignorePath, "# comment\n\n*.log\nbuild\n")

	patterns, loadError := LoadIgnorePatterns(fileSystem, ignorePath)
	require.NoError(testingHandle, loadError)
	require.Equal(testingHandle, []string{"*.log", "build"}, patterns)
}

func TestLoadIgnorePatternsTrimsAndPreservesOrder(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "surrounding whitespace", content: "  dist  \n\tnode_modules\t\n", expected: []string{"dist", "node_modules"}},
		{name: "indented comment", content: "   # indented comment\nvendor\n", expected: []string{"vendor"}},
		{name: "whitespace only lines", content: "   \n\t\n", expected: nil},
		{name: "duplicates kept in order", content: "b\na\nb\n", expected: []string{"b", "a", "b"}},
		{name: "windows line endings", content: "*.tmp\r\nout\r\n", expected: []string{"*.tmp", "out"}},
		{name: "no trailing newline", content: "coverage", expected: []string{"coverage"}},
		{name: "hash inside pattern", content: "a#b\n", expected: []string{"a#b"}},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(t *testing.T) {
			fileSystem := afero.NewMemMapFs()
			writeMemoryFile(t, fileSystem, "/.gitignore", testCase.content)
			patterns, loadError := LoadIgnorePatterns(fileSystem, "/.gitignore")
			require.NoError(t, loadError)
			require.Equal(t, testCase.expected, patterns)
		})
	}
}

// TestLoadIgnorePatternsMissingFile verifies that an absent file means no filtering.
func TestLoadIgnorePatternsMissingFile(testingHandle *testing.T) {
	patterns, loadError := LoadIgnorePatterns(afero.NewMemMapFs(), "/absent/.gitignore")
	require.NoError(testingHandle, loadError)
	require.Empty(testingHandle, patterns)
}

func TestLoadIgnorePatternsDirectoryPathFails(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	_, loadError := LoadIgnorePatterns(afero.NewOsFs(), rootDirectory)
	require.Error(testingHandle, loadError)
}

func TestLoadIgnorePatternsDefaultsToOperatingSystemFilesystem(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignorePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	writeMemoryFile(testingHandle, afero.NewOsFs(), ignorePath, "src\n")

	patterns, loadError := LoadIgnorePatterns(nil, ignorePath)
	require.NoError(testingHandle, loadError)
	require.Equal(testingHandle, []string{"src"}, patterns)
}
