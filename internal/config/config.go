// Package config loads ignore-pattern files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

const (
	// commentPrefix marks a line in an ignore file that carries no pattern.
	commentPrefix = "#"

	errorOpenIgnoreFileFormat = "opening ignore file %s: %w"
	errorReadIgnoreFileFormat = "reading ignore file %s: %w"
)

// LoadIgnorePatterns reads an ignore file and returns its glob patterns in file order.
// Lines are trimmed; blank lines and lines starting with '#' are dropped.
// A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnorePatterns(fileSystem afero.Fs, ignoreFilePath string) ([]string, error) {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	fileHandle, openFileError := fileSystem.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorOpenIgnoreFileFormat, ignoreFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadIgnoreFileFormat, ignoreFilePath, scanError)
	}
	return ignorePatterns, nil
}
