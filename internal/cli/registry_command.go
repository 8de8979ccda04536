package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ilnav/internal/output"
	"github.com/temirov/ilnav/internal/registry"
	"github.com/temirov/ilnav/internal/types"
)

const (
	registryUse              = "registry"
	registryAlias            = "reg"
	registryShortDescription = "query the assembly registry (" + registryAlias + ")"
	registryLongDescription  = `Query the assembly registry roots ilnav searches for referenced assemblies.`

	registryFindUse              = "find <name> <version> [public-key-token]"
	registryFindShortDescription = "print the registry path of an assembly"
	registryFindUsageExample     = `  # Locate a signed assembly
  ilnav registry find System.Xml 4.0.0.0 b77a5c561934e089`

	registryListUse              = "list [pattern]"
	registryListShortDescription = "list registered assemblies whose name matches a glob pattern"
	registryListUsageExample     = `  # List every System assembly as YAML
  ilnav registry list 'System.*' --format yaml`

	formatFlagName        = "format"
	formatFlagDescription = "output format: raw, json, xml or yaml"

	invalidFormatMessage        = "Invalid format value '%s'"
	assemblyNotRegisteredFormat = "assembly %s not found in registry roots %s"
	similarNamesFormat          = "%w; similar names: %s"
	rootListSeparator           = ", "
	maximumSuggestions          = 3
)

func createRegistryCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	registryCommand := &cobra.Command{
		Use:     registryUse,
		Aliases: []string{registryAlias},
		Short:   registryShortDescription,
		Long:    registryLongDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	registryCommand.AddCommand(
		createRegistryFindCommand(options, runtime),
		createRegistryListCommand(options, runtime),
	)
	return registryCommand
}

func createRegistryFindCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     registryFindUse,
		Short:   registryFindShortDescription,
		Example: registryFindUsageExample,
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(command *cobra.Command, arguments []string) error {
			var publicKeyToken string
			if len(arguments) == 3 {
				publicKeyToken = arguments[2]
			}
			identity, identityError := registry.NewAssemblyIdentity(arguments[0], arguments[1], publicKeyToken)
			if identityError != nil {
				return identityError
			}
			activeSession, sessionError := openSession(command, options, runtime)
			if sessionError != nil {
				return sessionError
			}
			path, found, findError := activeSession.resolver.Find(command.Context(), identity)
			if findError != nil {
				return findError
			}
			if !found {
				notRegisteredError := fmt.Errorf(assemblyNotRegisteredFormat, identity, strings.Join(activeSession.resolver.Roots(), rootListSeparator))
				suggestions, suggestError := activeSession.resolver.Suggest(command.Context(), identity.Name, maximumSuggestions)
				if suggestError != nil || len(suggestions) == 0 {
					return notRegisteredError
				}
				return fmt.Errorf(similarNamesFormat, notRegisteredError, strings.Join(suggestions, rootListSeparator))
			}
			fmt.Fprintln(command.OutOrStdout(), path)
			return nil
		},
	}
}

func createRegistryListCommand(options *globalOptions, runtime dependencies) *cobra.Command {
	outputFormat := types.FormatRaw

	listCommand := &cobra.Command{
		Use:     registryListUse,
		Short:   registryListShortDescription,
		Example: registryListUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			outputFormatLower := strings.ToLower(outputFormat)
			if !types.IsSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormat)
			}
			var pattern string
			if len(arguments) == 1 {
				pattern = arguments[0]
			}
			activeSession, sessionError := openSession(command, options, runtime)
			if sessionError != nil {
				return sessionError
			}
			entries, listError := activeSession.resolver.List(command.Context(), pattern)
			if listError != nil {
				return listError
			}
			return output.RenderRegistryEntries(command.OutOrStdout(), entries, outputFormatLower)
		},
	}
	listCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	return listCommand
}
