// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/services/stream"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	depthFlagName        = "depth"
	ignoreFileFlagName   = "ignore-file"
	noGitignoreFlagName  = "no-gitignore"
	exclusionFlagName    = "exclude"
	exclusionShorthand   = "e"
	formatFlagName       = "format"
	copyFlagName         = "copy"
	configFlagName       = "config"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "dirtree version: {{.Version}}\n"
	rootUse              = "dirtree [path]"
	rootShortDescription = "print an indented directory tree"
	rootLongDescription  = `dirtree prints the directory tree under a path (the working directory by default).
Entries whose name matches a pattern from the ignore file are pruned together with everything beneath them.
Recursion stops at --depth; use --depth -1 for an unlimited walk.`
	rootUsageExample = `  # Current directory, two levels below the root, filtered by .gitignore
  dirtree

  # Whole tree without filtering
  dirtree --depth -1 --no-gitignore

  # JSON document for another directory, skipping vendor
  dirtree ./service --format json -e vendor`
	initUse              = "init"
	initShortDescription = "write a default configuration file"

	// DefaultMaxDepth is the depth ceiling used when neither a flag nor configuration sets one.
	DefaultMaxDepth = 2

	depthFlagDescription       = "deepest level to print (-1 for unlimited)"
	ignoreFileFlagDescription  = "ignore-pattern file, relative to the tree root unless absolute"
	noGitignoreFlagDescription = "do not filter entries with the ignore file"
	exclusionFlagDescription   = "additional glob pattern to ignore (repeatable)"
	formatFlagDescription      = "output format: raw, json, or xml"
	copyFlagDescription        = "also copy the rendered output to the clipboard"
	configFlagDescription      = "path to a configuration file"
	globalFlagDescription      = "write the configuration under the home directory"
	forceFlagDescription       = "overwrite an existing configuration file"

	invalidFormatMessage        = "invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorLoadIgnoreFormat       = "loading ignore patterns for %s: %w"
	errorRenderFormat           = "rendering output: %w"
	clipboardCopyErrorFormat    = "copy output to clipboard: %w"
	configurationWrittenFormat  = "Configuration written to %s\n"
)

// Dependencies holds the process-level collaborators of the command tree.
// Zero values are replaced with the process defaults.
type Dependencies struct {
	Logger           *zap.Logger
	Stdout           io.Writer
	Stderr           io.Writer
	Clipboard        clipboard.Copier
	FileSystem       afero.Fs
	WorkingDirectory string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	result := dependencies
	if result.Logger == nil {
		result.Logger = zap.NewNop()
	}
	if result.Stdout == nil {
		result.Stdout = os.Stdout
	}
	if result.Stderr == nil {
		result.Stderr = os.Stderr
	}
	if result.Clipboard == nil {
		result.Clipboard = clipboard.NewService()
	}
	if result.FileSystem == nil {
		result.FileSystem = afero.NewOsFs()
	}
	return result
}

// Execute runs the dirtree application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	return rootCommand.Execute()
}

// treeFlags stores the values bound to the root command flags.
type treeFlags struct {
	maxDepth          int
	ignoreFile        string
	disableGitignore  bool
	exclusionPatterns []string
	format            string
	copyOutput        bool
	configPath        string
}

// treeSettings is the effective configuration after applying flags over configuration files.
type treeSettings struct {
	MaxDepth     int
	IgnoreFile   string
	UseGitignore bool
	Exclude      []string
	Format       string
	Copy         bool
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	resolved := dependencies.withDefaults()
	var flags treeFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Version:      utils.GetApplicationVersion(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryErr := resolveWorkingDirectory(resolved.WorkingDirectory)
			if workingDirectoryErr != nil {
				return workingDirectoryErr
			}
			applicationConfiguration, configErr := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: flags.configPath,
			})
			if configErr != nil {
				return configErr
			}
			settings := resolveTreeSettings(command, flags, applicationConfiguration.Tree)

			targetPath := workingDirectory
			if len(arguments) == 1 {
				targetPath = arguments[0]
				if !filepath.IsAbs(targetPath) {
					targetPath = filepath.Join(workingDirectory, targetPath)
				}
			}
			return runTree(command.Context(), resolved, settings, targetPath)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.SetOut(resolved.Stdout)
	rootCommand.SetErr(resolved.Stderr)

	flagSet := rootCommand.Flags()
	flagSet.IntVar(&flags.maxDepth, depthFlagName, DefaultMaxDepth, depthFlagDescription)
	flagSet.StringVar(&flags.ignoreFile, ignoreFileFlagName, utils.GitIgnoreFileName, ignoreFileFlagDescription)
	flagSet.BoolVar(&flags.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	flagSet.StringArrayVarP(&flags.exclusionPatterns, exclusionFlagName, exclusionShorthand, nil, exclusionFlagDescription)
	flagSet.StringVar(&flags.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	flagSet.BoolVar(&flags.copyOutput, copyFlagName, false, copyFlagDescription)
	rootCommand.PersistentFlags().StringVar(&flags.configPath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(createInitCommand(resolved))
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryErr := resolveWorkingDirectory(dependencies.WorkingDirectory)
			if workingDirectoryErr != nil {
				return workingDirectoryErr
			}
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			destinationPath, initErr := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
			})
			if initErr != nil {
				return initErr
			}
			_, writeErr := fmt.Fprintf(dependencies.Stdout, configurationWrittenFormat, destinationPath)
			return writeErr
		},
	}
	initCommand.Flags().BoolVar(&globalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func resolveWorkingDirectory(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	return workingDirectory, nil
}

// resolveTreeSettings applies explicitly set flags over configuration values over flag defaults.
func resolveTreeSettings(command *cobra.Command, flags treeFlags, configuration config.TreeConfiguration) treeSettings {
	settings := treeSettings{
		MaxDepth:     flags.maxDepth,
		IgnoreFile:   flags.ignoreFile,
		UseGitignore: !flags.disableGitignore,
		Format:       flags.format,
		Copy:         flags.copyOutput,
	}
	flagSet := command.Flags()
	if !flagSet.Changed(depthFlagName) && configuration.Depth != nil {
		settings.MaxDepth = *configuration.Depth
	}
	if !flagSet.Changed(ignoreFileFlagName) && configuration.IgnoreFile != "" {
		settings.IgnoreFile = configuration.IgnoreFile
	}
	if !flagSet.Changed(noGitignoreFlagName) && configuration.UseGitignore != nil {
		settings.UseGitignore = *configuration.UseGitignore
	}
	if !flagSet.Changed(formatFlagName) && configuration.Format != "" {
		settings.Format = configuration.Format
	}
	if !flagSet.Changed(copyFlagName) && configuration.Clipboard != nil {
		settings.Copy = *configuration.Clipboard
	}
	settings.Exclude = utils.AppendPatterns(configuration.Exclude, flags.exclusionPatterns)
	settings.Format = strings.ToLower(strings.TrimSpace(settings.Format))
	if settings.MaxDepth < 0 {
		settings.MaxDepth = commands.UnlimitedDepth
	}
	return settings
}

// loadTreePatterns reads the ignore file for the root and appends the extra exclusion patterns.
func loadTreePatterns(fileSystem afero.Fs, rootPath string, settings treeSettings) ([]string, error) {
	var patterns []string
	if settings.UseGitignore && settings.IgnoreFile != "" {
		ignoreFilePath := settings.IgnoreFile
		if !filepath.IsAbs(ignoreFilePath) {
			ignoreFilePath = filepath.Join(rootPath, ignoreFilePath)
		}
		loadedPatterns, loadErr := config.LoadIgnorePatterns(fileSystem, ignoreFilePath)
		if loadErr != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFormat, rootPath, loadErr)
		}
		patterns = loadedPatterns
	}
	return utils.AppendPatterns(patterns, settings.Exclude), nil
}

// runTree renders the tree under targetPath with the effective settings.
func runTree(ctx context.Context, dependencies Dependencies, settings treeSettings, targetPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	absoluteRoot, absoluteErr := filepath.Abs(targetPath)
	if absoluteErr != nil {
		return fmt.Errorf(errorAbsolutePathFormat, targetPath, absoluteErr)
	}
	absoluteRoot = filepath.Clean(absoluteRoot)

	ignorePatterns, patternErr := loadTreePatterns(dependencies.FileSystem, absoluteRoot, settings)
	if patternErr != nil {
		return patternErr
	}
	for _, malformedPattern := range utils.MalformedPatterns(ignorePatterns) {
		dependencies.Logger.Warn(utils.MalformedPatternWarningMessage, zap.String("pattern", malformedPattern))
	}

	outputWriter := dependencies.Stdout
	var clipboardBuffer *bytes.Buffer
	if settings.Copy {
		clipboardBuffer = &bytes.Buffer{}
		outputWriter = io.MultiWriter(outputWriter, clipboardBuffer)
	}

	renderer, rendererErr := output.NewStreamRenderer(settings.Format, outputWriter, dependencies.Stderr)
	if rendererErr != nil {
		return fmt.Errorf(invalidFormatMessage, settings.Format)
	}

	producer := func(streamCtx context.Context, events chan<- stream.Event) error {
		options := stream.TreeOptions{
			Root:           absoluteRoot,
			MaxDepth:       settings.MaxDepth,
			IgnorePatterns: ignorePatterns,
			FileSystem:     dependencies.FileSystem,
		}
		return stream.StreamTree(streamCtx, options, events)
	}
	if err := dispatchStream(ctx, producer, renderer.Handle); err != nil {
		return err
	}
	if err := renderer.Flush(); err != nil {
		return fmt.Errorf(errorRenderFormat, err)
	}

	if clipboardBuffer != nil {
		if copyErr := dependencies.Clipboard.Copy(clipboardBuffer.String()); copyErr != nil {
			if errors.Is(copyErr, clipboard.ErrUnsupported) {
				dependencies.Logger.Warn(copyErr.Error())
				return nil
			}
			return fmt.Errorf(clipboardCopyErrorFormat, copyErr)
		}
	}
	return nil
}

func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
