package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName           = "bool"
	toggleFlagImplicitLiteral    = "true"
	toggleFlagAcceptedLiterals   = "true, false, yes, no, on, off, 1, 0"
	toggleFlagInvalidValueFormat = "invalid boolean value %q for --%s; accepted values: %s"
	argumentTerminator           = "--"
	longFlagPrefix               = "--"
	shortFlagPrefix              = "-"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// toggleFlag is a boolean flag that remembers whether it was given at all,
// so an absent flag leaves the configured value in place.
type toggleFlag struct {
	name  string
	value *bool
}

func (flag *toggleFlag) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagImplicitLiteral
	}
	parsed, known := toggleLiterals[normalized]
	if !known {
		return fmt.Errorf(toggleFlagInvalidValueFormat, input, flag.name, toggleFlagAcceptedLiterals)
	}
	flag.value = &parsed
	return nil
}

func (flag *toggleFlag) String() string {
	if flag == nil || flag.value == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.value)
}

func (flag *toggleFlag) Type() string {
	return toggleFlagTypeName
}

// Override returns the value given on the command line, or nil when the flag was absent.
func (flag *toggleFlag) Override() *bool {
	if flag == nil || flag.value == nil {
		return nil
	}
	value := *flag.value
	return &value
}

func registerToggleFlag(flagSet *pflag.FlagSet, name string, usage string) *toggleFlag {
	flag := &toggleFlag{name: name}
	flagSet.Var(flag, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(false)
		lookup.NoOptDefVal = toggleFlagImplicitLiteral
	}
	return flag
}

// normalizeToggleArguments rewrites "--flag value" into "--flag=value" for boolean flags
// followed by a recognised literal; pflag would otherwise treat the literal as a positional argument.
func normalizeToggleArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		currentArgument := arguments[argumentIndex]
		if currentArgument == argumentTerminator {
			normalized = append(normalized, arguments[argumentIndex:]...)
			break
		}
		if strings.HasPrefix(currentArgument, longFlagPrefix) && !strings.Contains(currentArgument, "=") && argumentIndex+1 < len(arguments) {
			flagName := strings.TrimPrefix(currentArgument, longFlagPrefix)
			nextArgument := arguments[argumentIndex+1]
			if _, isBoolean := booleanFlags[flagName]; isBoolean && !strings.HasPrefix(nextArgument, shortFlagPrefix) {
				if _, isLiteral := toggleLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; isLiteral {
					normalized = append(normalized, currentArgument+"="+nextArgument)
					argumentIndex++
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flagSet *pflag.FlagSet) {
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag.Value != nil && flag.Value.Type() == toggleFlagTypeName {
				target[flag.Name] = struct{}{}
			}
		})
	}
	visit(command.PersistentFlags())
	visit(command.Flags())
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
