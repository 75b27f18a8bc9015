package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/dirtree/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: "/work", Target: InitTargetLocal, FileSystem: fileSystem})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/work", utils.ConfigFileName), path)

	content, readErr := afero.ReadFile(fileSystem, path)
	require.NoError(t, readErr)
	require.Equal(t, DefaultConfigurationTemplate, string(content))
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, HomeDirectory: "/home/user", FileSystem: fileSystem})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/home/user", utils.GlobalConfigDirectoryName, utils.ConfigFileName), path)

	exists, existsErr := afero.Exists(fileSystem, path)
	require.NoError(t, existsErr)
	require.True(t, exists)
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	path := filepath.Join("/work", utils.ConfigFileName)
	require.NoError(t, afero.WriteFile(fileSystem, path, []byte("existing"), 0o600))

	_, err := InitializeConfiguration(InitOptions{WorkingDirectory: "/work", FileSystem: fileSystem})
	require.Error(t, err)

	content, readErr := afero.ReadFile(fileSystem, path)
	require.NoError(t, readErr)
	require.Equal(t, "existing", string(content))

	_, err = InitializeConfiguration(InitOptions{WorkingDirectory: "/work", Force: true, FileSystem: fileSystem})
	require.NoError(t, err)
	content, readErr = afero.ReadFile(fileSystem, path)
	require.NoError(t, readErr)
	require.Equal(t, DefaultConfigurationTemplate, string(content))
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	_, err := InitializeConfiguration(InitOptions{Target: "elsewhere", FileSystem: afero.NewMemMapFs()})
	require.Error(t, err)
}

func TestDefaultConfigurationTemplateLoads(t *testing.T) {
	workingDirectory := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	_, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory})
	require.NoError(t, err)

	loaded, loadErr := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	require.NoError(t, loadErr)
	require.Equal(t, "raw", loaded.Tree.Format)
	require.NotNil(t, loaded.Tree.Depth)
	require.Equal(t, 2, *loaded.Tree.Depth)
	require.Equal(t, utils.GitIgnoreFileName, loaded.Tree.IgnoreFile)
	require.NotNil(t, loaded.Tree.UseGitignore)
	require.True(t, *loaded.Tree.UseGitignore)
	require.NotNil(t, loaded.Tree.Clipboard)
	require.False(t, *loaded.Tree.Clipboard)
}
