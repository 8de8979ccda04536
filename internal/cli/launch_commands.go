package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/temirov/ilnav/internal/locator"
	"github.com/temirov/ilnav/internal/selection"
)

const (
	openUse              = "open"
	openShortDescription = "start ILSpy without an assembly"
	openLongDescription  = `Start ILSpy with no arguments.`

	referenceUse              = "reference <name> <version> [public-key-token]"
	referenceAlias            = "ref"
	referenceShortDescription = "open a referenced assembly (" + referenceAlias + ")"
	referenceLongDescription  = `Open a referenced assembly in ILSpy.
The assembly registry is searched by exact name and version. A public key token restricts the search
to signed assemblies with that token; without one only unsigned assemblies match.
When the registry has no match the --path fallback is opened instead.`
	referenceUsageExample = `  # Open a signed framework assembly
  ilnav reference System.Xml 4.0.0.0 b77a5c561934e089

  # Fall back to the path reported by the build when the registry has no match
  ilnav reference Acme.Core 1.2.0.0 --path ./packages/Acme.Core/lib/Acme.Core.dll`

	projectUse              = "project <project-root> <output-directory> <output-file-name>"
	projectAlias            = "proj"
	projectShortDescription = "open a project's build output (" + projectAlias + ")"
	projectLongDescription  = `Open the assembly a project builds.
The output directory is resolved against the project root unless it is absolute.`
	projectUsageExample = `  # Open the debug build of a project
  ilnav project ./src/Acme.Core bin/Debug Acme.Core.dll`

	codeUse              = "code <document>"
	codeShortDescription = "open the code element at a position in a C# document"
	codeLongDescription  = `Open the project's build output in ILSpy positioned on the method, event, property or type
enclosing a position in a C# document. Give the position as a byte --offset or as 1-based --line and --column.
When no named element encloses the position the assembly opens without navigation.`
	codeUsageExample = `  # Navigate to the member at line 42, column 9
  ilnav code src/Acme.Core/Widget.cs --line 42 --column 9 \
    --project-root src/Acme.Core --output-directory bin/Debug --output-file-name Acme.Core.dll`

	batchUse              = "batch <selection.yaml|->"
	batchShortDescription = "open every item of a selection document"
	batchLongDescription  = `Open every item of a YAML selection document in order. Use - to read the document from standard input.
A missing assembly is reported and the remaining items still open.`
	batchUsageExample = `  # Open a selection handed over by an editor
  ilnav batch selection.yaml`

	fallbackPathFlagName         = "path"
	fallbackPathFlagDescription  = "assembly path used when the registry has no match"
	offsetFlagName               = "offset"
	offsetFlagDescription        = "byte offset of the position in the document"
	lineFlagName                 = "line"
	lineFlagDescription          = "1-based line of the position"
	columnFlagName               = "column"
	columnFlagDescription        = "1-based column of the position"
	projectRootFlagName          = "project-root"
	projectRootFlagDescription   = "project directory"
	outputDirectoryFlagName      = "output-directory"
	outputDirectoryDescription   = "build output directory, relative to the project root unless absolute"
	outputFileNameFlagName       = "output-file-name"
	outputFileNameDescription    = "file name of the built assembly"
	standardInputArgument        = "-"
	unsetOffset                  = -1
	missingPositionMessage       = "either --offset or --line with --column is required"
	conflictingPositionMessage   = "--offset cannot be combined with --line or --column"
	openSelectionErrorFormat     = "open selection %s: %w"
	readCodeDocumentErrorFormat  = "read document %s: %w"
	resolvePositionErrorFormat   = "resolve position %d:%d in %s: %w"
	emptySelectionWarningMessage = "selection contains no items"
)

var errMissingPosition = errors.New(missingPositionMessage)

func createOpenCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   openUse,
		Short: openShortDescription,
		Long:  openLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			activeSession, sessionError := openSession(command, options, runtime)
			if sessionError != nil {
				return sessionError
			}
			return activeSession.openViewer(command.Context())
		},
	}
}

func createReferenceCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	var fallbackPath string

	referenceCommand := &cobra.Command{
		Use:     referenceUse,
		Aliases: []string{referenceAlias},
		Short:   referenceShortDescription,
		Long:    referenceLongDescription,
		Example: referenceUsageExample,
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(command *cobra.Command, arguments []string) error {
			item := selection.ReferenceItem{
				Name:         arguments[0],
				Version:      arguments[1],
				FallbackPath: fallbackPath,
			}
			if len(arguments) == 3 {
				item.PublicKeyToken = arguments[2]
			}
			activeSession, sessionError := openSession(command, options, runtime)
			if sessionError != nil {
				return sessionError
			}
			return activeSession.process(command.Context(), []selection.Item{item})
		},
	}
	referenceCommand.Flags().StringVar(&fallbackPath, fallbackPathFlagName, "", fallbackPathFlagDescription)
	return referenceCommand
}

func createProjectCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     projectUse,
		Aliases: []string{projectAlias},
		Short:   projectShortDescription,
		Long:    projectLongDescription,
		Example: projectUsageExample,
		Args:    cobra.ExactArgs(3),
		RunE: func(command *cobra.Command, arguments []string) error {
			item := selection.ProjectOutputItem{
				ProjectRoot:     arguments[0],
				OutputDirectory: arguments[1],
				OutputFileName:  arguments[2],
			}
			activeSession, sessionError := openSession(command, options, runtime)
			if sessionError != nil {
				return sessionError
			}
			return activeSession.process(command.Context(), []selection.Item{item})
		},
	}
}

// positionOptions stores how a code position was given.
type positionOptions struct {
	offset int
	line   int
	column int
}

// resolve converts the position flags into a byte offset within documentPath.
func (options positionOptions) resolve(documentPath string) (int, error) {
	lineGiven := options.line > 0 || options.column > 0
	if options.offset != unsetOffset {
		if lineGiven {
			return 0, errors.New(conflictingPositionMessage)
		}
		return options.offset, nil
	}
	if options.line <= 0 || options.column <= 0 {
		return 0, errMissingPosition
	}
	document, readError := locator.ReadDocument(documentPath)
	if readError != nil {
		return 0, fmt.Errorf(readCodeDocumentErrorFormat, documentPath, readError)
	}
	offset, positionError := locator.OffsetForPosition(document.Source, options.line, options.column)
	if positionError != nil {
		return 0, fmt.Errorf(resolvePositionErrorFormat, options.line, options.column, documentPath, positionError)
	}
	return offset, nil
}

func createCodeCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	position := positionOptions{offset: unsetOffset}
	var project selection.ProjectOutputItem

	codeCommand := &cobra.Command{
		Use:     codeUse,
		Short:   codeShortDescription,
		Long:    codeLongDescription,
		Example: codeUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			documentPath := arguments[0]
			offset, positionError := position.resolve(documentPath)
			if positionError != nil {
				return positionError
			}
			activeSession, sessionError := openSession(command, options, runtime)
			if sessionError != nil {
				return sessionError
			}
			item := selection.CodeItem{DocumentPath: documentPath, Offset: offset, Project: project}
			return activeSession.process(command.Context(), []selection.Item{item})
		},
	}
	codeCommand.Flags().IntVar(&position.offset, offsetFlagName, unsetOffset, offsetFlagDescription)
	codeCommand.Flags().IntVar(&position.line, lineFlagName, 0, lineFlagDescription)
	codeCommand.Flags().IntVar(&position.column, columnFlagName, 0, columnFlagDescription)
	codeCommand.Flags().StringVar(&project.ProjectRoot, projectRootFlagName, "", projectRootFlagDescription)
	codeCommand.Flags().StringVar(&project.OutputDirectory, outputDirectoryFlagName, "", outputDirectoryDescription)
	codeCommand.Flags().StringVar(&project.OutputFileName, outputFileNameFlagName, "", outputFileNameDescription)
	if markError := codeCommand.MarkFlagRequired(outputFileNameFlagName); markError != nil {
		panic(markError)
	}
	return codeCommand
}

func createBatchCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     batchUse,
		Short:   batchShortDescription,
		Long:    batchLongDescription,
		Example: batchUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			items, loadError := loadSelection(command, arguments[0])
			if loadError != nil {
				return loadError
			}
			activeSession, sessionError := openSession(command, options, runtime)
			if sessionError != nil {
				return sessionError
			}
			if len(items) == 0 {
				activeSession.logger.Warn(emptySelectionWarningMessage)
				return nil
			}
			return activeSession.process(command.Context(), items)
		},
	}
}

func loadSelection(command *cobra.Command, source string) ([]selection.Item, error) {
	var reader io.Reader = command.InOrStdin()
	if source != standardInputArgument {
		file, openError := os.Open(source)
		if openError != nil {
			return nil, fmt.Errorf(openSelectionErrorFormat, source, openError)
		}
		defer file.Close()
		reader = file
	}
	return selection.LoadSelection(reader)
}
