// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ilnav/internal/config"
	"github.com/temirov/ilnav/internal/launch"
	"github.com/temirov/ilnav/internal/locator"
	"github.com/temirov/ilnav/internal/registry"
	"github.com/temirov/ilnav/internal/selection"
	"github.com/temirov/ilnav/internal/services/clipboard"
	"github.com/temirov/ilnav/internal/utils"
)

const (
	configFlagName       = "config"
	dryRunFlagName       = "dry-run"
	copyFlagName         = "copy"
	versionFlagName      = "version"
	versionTemplate      = "ilnav version: %s\n"
	rootUse              = "ilnav"
	rootShortDescription = "open assemblies and code elements in ILSpy"
	rootLongDescription  = `ilnav opens referenced assemblies, project build outputs and C# code elements in ILSpy.
Referenced assemblies are looked up in the assembly registry by name, version and public key token.
Code positions are resolved to the enclosing method, event, property or type so ILSpy opens on it.
Use --dry-run to print the ILSpy command line instead of starting it and --copy to copy it to the clipboard.`
	configFlagDescription  = "configuration file replacing the local .ilnav.yaml"
	dryRunFlagDescription  = "print the viewer command line without starting the viewer"
	copyFlagDescription    = "copy the viewer command line to the clipboard"
	versionFlagDescription = "display application version"

	clipboardCopyFailedMessage = "command line not copied to clipboard"
	commandLineSeparator       = "\n"
)

// errVersionDisplayed stops command execution once the version has been printed.
var errVersionDisplayed = errors.New("version displayed")

// dependencies carries the collaborators commands are built from; zero fields use system defaults.
type dependencies struct {
	logger  *zap.Logger
	starter launch.Starter
	copier  clipboard.Copier
	locator locator.Locator
}

// globalOptions stores persistent flag values shared by all subcommands.
type globalOptions struct {
	configurationPath string
	dryRun            *toggleFlag
	copyCommandLine   *toggleFlag
	showVersion       bool
}

// Execute runs the ilnav application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(dependencies{logger: logger, copier: clipboard.NewService()})
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return runRootCommand(rootCommand)
}

func runRootCommand(rootCommand *cobra.Command) error {
	executionError := rootCommand.Execute()
	if errors.Is(executionError, errVersionDisplayed) {
		return nil
	}
	return executionError
}

// createRootCommand builds the root Cobra command.
func createRootCommand(runtime dependencies) *cobra.Command {
	if runtime.logger == nil {
		runtime.logger = zap.NewNop()
	}
	options := &globalOptions{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return errVersionDisplayed
			}
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&options.configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	options.dryRun = registerToggleFlag(rootCommand.PersistentFlags(), dryRunFlagName, dryRunFlagDescription)
	options.copyCommandLine = registerToggleFlag(rootCommand.PersistentFlags(), copyFlagName, copyFlagDescription)

	rootCommand.AddCommand(
		createOpenCommand(options, runtime),
		createReferenceCommand(options, runtime),
		createProjectCommand(options, runtime),
		createCodeCommand(options, runtime),
		createBatchCommand(options, runtime),
		createRegistryCommand(options, runtime),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// session holds the collaborators assembled for one command invocation.
type session struct {
	configuration config.ApplicationConfiguration
	resolver      *registry.Resolver
	launcher      *launch.Launcher
	processor     *selection.Processor
	copier        clipboard.Copier
	output        io.Writer
	logger        *zap.Logger
}

// openSession loads configuration, applies command line overrides and wires the pipeline.
func openSession(command *cobra.Command, options *globalOptions, runtime dependencies) (*session, error) {
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: options.configurationPath})
	if loadError != nil {
		return nil, loadError
	}
	configuration = configuration.Merge(config.ApplicationConfiguration{
		Viewer: config.ViewerConfiguration{
			DryRun: options.dryRun.Override(),
			Copy:   options.copyCommandLine.Override(),
		},
	})

	resolver := registry.NewResolver(nil, configuration.RegistryRoots(), configuration.RegistryArchitectures())
	launcher := launch.NewLauncher(launch.Options{
		ViewerPath: configuration.ViewerPath(),
		DryRun:     configuration.DryRun(),
		Starter:    runtime.starter,
		Logger:     runtime.logger,
	})
	codeLocator := runtime.locator
	if codeLocator == nil {
		codeLocator = locator.NewLocator()
	}
	return &session{
		configuration: configuration,
		resolver:      resolver,
		launcher:      launcher,
		processor:     selection.NewProcessor(resolver, codeLocator, launcher, runtime.logger),
		copier:        runtime.copier,
		output:        command.OutOrStdout(),
		logger:        runtime.logger,
	}, nil
}

// process launches items and reports their command lines.
func (activeSession *session) process(ctx context.Context, items []selection.Item) error {
	results, processError := activeSession.processor.Process(ctx, items)
	outcomes := make([]launch.Outcome, 0, len(results))
	for _, result := range results {
		outcomes = append(outcomes, result.Outcome)
	}
	activeSession.report(outcomes)
	return processError
}

// openViewer starts the viewer without an assembly.
func (activeSession *session) openViewer(ctx context.Context) error {
	outcome, launchError := activeSession.launcher.OpenViewer(ctx)
	activeSession.report([]launch.Outcome{outcome})
	return launchError
}

// report prints dry-run invocations and copies started invocations when requested.
func (activeSession *session) report(outcomes []launch.Outcome) {
	invocations := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.State != launch.StateStarted {
			continue
		}
		invocation := launch.Invocation(activeSession.launcher.ViewerPath(), outcome.CommandLine)
		if outcome.DryRun {
			fmt.Fprintln(activeSession.output, invocation)
		}
		invocations = append(invocations, invocation)
	}
	if !activeSession.configuration.CopyCommandLine() || len(invocations) == 0 || activeSession.copier == nil {
		return
	}
	if copyError := activeSession.copier.Copy(strings.Join(invocations, commandLineSeparator)); copyError != nil {
		activeSession.logger.Warn(clipboardCopyFailedMessage, zap.Error(copyError))
	}
}
