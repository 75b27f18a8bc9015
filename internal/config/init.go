package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/dirtree/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	// DefaultConfigurationTemplate reproduces the built-in defaults of the tree command.
	DefaultConfigurationTemplate = `tree:
  format: raw
  depth: 2
  ignore_file: .gitignore
  use_gitignore: true
  exclude: []
  clipboard: false
`

	configurationFileMode      os.FileMode = 0o600
	configurationDirectoryMode os.FileMode = 0o755
)

// InitOptions controls how configuration initialization behaves.
// Empty WorkingDirectory and HomeDirectory fall back to the process values.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
	HomeDirectory    string
	FileSystem       afero.Fs
}

// InitializeConfiguration writes the default configuration to the requested target
// and returns the written path. An existing file is only replaced when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	fileSystem := options.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}

	destinationDirectory, resolveErr := resolveInitDirectory(options)
	if resolveErr != nil {
		return "", resolveErr
	}
	if err := fileSystem.MkdirAll(destinationDirectory, configurationDirectoryMode); err != nil {
		return "", fmt.Errorf("create configuration directory %s: %w", destinationDirectory, err)
	}
	destinationPath := filepath.Join(destinationDirectory, utils.ConfigFileName)

	exists, existsErr := afero.Exists(fileSystem, destinationPath)
	if existsErr != nil {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, existsErr)
	}
	if exists && !options.Force {
		return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
	}

	if err := afero.WriteFile(fileSystem, destinationPath, []byte(DefaultConfigurationTemplate), configurationFileMode); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}
	return destinationPath, nil
}

func resolveInitDirectory(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		if options.WorkingDirectory != "" {
			return options.WorkingDirectory, nil
		}
		current, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory for configuration: %w", err)
		}
		return current, nil
	case InitTargetGlobal:
		homeDirectory := options.HomeDirectory
		if homeDirectory == "" {
			resolved, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory for configuration: %w", err)
			}
			homeDirectory = resolved
		}
		return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
