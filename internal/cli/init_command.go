package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/ilnav/internal/config"
)

const (
	initUse               = "init"
	initShortDescription  = "write a default configuration file"
	initLongDescription   = `Write the default configuration to .ilnav.yaml in the working directory, or to ~/.ilnav/config.yaml with --global.`
	globalFlagName        = "global"
	globalFlagDescription = "write the global configuration instead of the local one"
	forceFlagName         = "force"
	forceFlagDescription  = "overwrite an existing configuration file"
	initializedFormat     = "configuration written to %s\n"
)

func createInitCommand() *cobra.Command {
	var globalTarget bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			path, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: overwrite})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initializedFormat, path)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&globalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&overwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}
