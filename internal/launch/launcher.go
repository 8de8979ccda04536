// Package launch validates resolved assemblies and starts the viewer as a detached process.
package launch

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/temirov/ilnav/internal/argv"
	"github.com/temirov/ilnav/internal/utils"
)

const (
	// missingAssemblyMessageFormat is shown to the user when the assembly is absent at launch time.
	missingAssemblyMessageFormat = "Could not find assembly '%s', please ensure the project and all references were built correctly!"
	missingArtifactFormat        = "%w: %s"
	launchFaultFormat            = "%w: start %s: %w"
	argumentSeparator            = " "
	launchingMessage             = "launching viewer"
	dryRunMessage                = "dry run, viewer not started"
	missingAssemblyLogMessage    = "assembly missing"
	existenceCheckFailedMessage  = "assembly existence check failed"
	directoryAssemblyMessage     = "assembly path is a directory"
)

var (
	// ErrMissingArtifact marks a request whose assembly does not exist at launch time.
	ErrMissingArtifact = errors.New("launch: assembly not found")
	// ErrLaunchFault marks a viewer process that could not be started.
	ErrLaunchFault = errors.New("launch: viewer failed to start")
)

// State is a step of a single launch request.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateLaunching
	StateFailed
	StateStarted
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateLaunching:
		return "launching"
	case StateFailed:
		return "failed"
	case StateStarted:
		return "started"
	default:
		return fmt.Sprintf("state(%d)", int(state))
	}
}

// Terminal reports whether no further transition follows the state.
func (state State) Terminal() bool {
	return state == StateFailed || state == StateStarted
}

// Request asks for an assembly to be opened, optionally at a navigation target.
type Request struct {
	AssemblyPath     string
	NavigationTarget string
}

// Outcome reports how a request ended.
type Outcome struct {
	State       State
	CommandLine string
	DryRun      bool
	// Failure holds ErrMissingArtifact or ErrLaunchFault details when State is StateFailed.
	Failure error
}

// Notifier shows a single-button informational message to the user.
type Notifier interface {
	Notify(title string, message string)
}

// Starter creates a detached viewer process with an encoded command line.
type Starter interface {
	Start(executable string, commandLine string) error
}

// Options configures a Launcher.
type Options struct {
	ViewerPath string
	DryRun     bool
	FileSystem afs.Service
	Notifier   Notifier
	Starter    Starter
	Logger     *zap.Logger
}

// Launcher turns launch requests into viewer processes.
type Launcher struct {
	viewerPath string
	dryRun     bool
	fileSystem afs.Service
	notifier   Notifier
	starter    Starter
	logger     *zap.Logger
}

// NewLauncher constructs a Launcher, filling unset options with process-backed defaults.
func NewLauncher(options Options) *Launcher {
	launcher := &Launcher{
		viewerPath: options.ViewerPath,
		dryRun:     options.DryRun,
		fileSystem: options.FileSystem,
		notifier:   options.Notifier,
		starter:    options.Starter,
		logger:     options.Logger,
	}
	if launcher.fileSystem == nil {
		launcher.fileSystem = afs.New()
	}
	if launcher.logger == nil {
		launcher.logger = zap.NewNop()
	}
	if launcher.notifier == nil {
		launcher.notifier = NewLoggerNotifier(launcher.logger)
	}
	if launcher.starter == nil {
		launcher.starter = ProcessStarter{}
	}
	return launcher
}

// CommandLine encodes the viewer arguments for request.
func CommandLine(request Request) string {
	commandLine := argv.Encode([]string{request.AssemblyPath})
	if request.NavigationTarget != "" {
		commandLine += argumentSeparator + argv.Encode([]string{request.NavigationTarget})
	}
	return commandLine
}

// Invocation prefixes commandLine with the encoded viewer executable, as a shell would see it.
func Invocation(viewerPath string, commandLine string) string {
	invocation := argv.Encode([]string{viewerPath})
	if commandLine != "" {
		invocation += argumentSeparator + commandLine
	}
	return invocation
}

// ViewerPath returns the executable the launcher starts.
func (launcher *Launcher) ViewerPath() string {
	return launcher.viewerPath
}

// Launch validates the assembly path and starts the viewer on it.
// A missing assembly is reported to the user and returned as a failed outcome with a nil error;
// only a viewer that cannot be started yields an error.
func (launcher *Launcher) Launch(ctx context.Context, request Request) (Outcome, error) {
	if request.AssemblyPath == "" || !launcher.assemblyFileExists(ctx, request.AssemblyPath) {
		launcher.logger.Debug(missingAssemblyLogMessage, zap.String("path", request.AssemblyPath))
		launcher.notifier.Notify(utils.ApplicationName, fmt.Sprintf(missingAssemblyMessageFormat, request.AssemblyPath))
		return Outcome{
			State:   StateFailed,
			Failure: fmt.Errorf(missingArtifactFormat, ErrMissingArtifact, request.AssemblyPath),
		}, nil
	}

	return launcher.start(CommandLine(request), zap.String("path", request.AssemblyPath), zap.String("target", request.NavigationTarget))
}

// assemblyFileExists reports whether path names an existing file; directories do not count.
func (launcher *Launcher) assemblyFileExists(ctx context.Context, path string) bool {
	assemblyURL := utils.LocalURL(path)
	exists, existsError := launcher.fileSystem.Exists(ctx, assemblyURL)
	if existsError != nil {
		launcher.logger.Debug(existenceCheckFailedMessage, zap.String("path", path), zap.Error(existsError))
		return false
	}
	if !exists {
		return false
	}
	object, objectError := launcher.fileSystem.Object(ctx, assemblyURL)
	if objectError != nil {
		launcher.logger.Debug(existenceCheckFailedMessage, zap.String("path", path), zap.Error(objectError))
		return false
	}
	if object.IsDir() {
		launcher.logger.Debug(directoryAssemblyMessage, zap.String("path", path))
		return false
	}
	return true
}

// OpenViewer starts the viewer without arguments.
func (launcher *Launcher) OpenViewer(ctx context.Context) (Outcome, error) {
	return launcher.start("")
}

func (launcher *Launcher) start(commandLine string, fields ...zap.Field) (Outcome, error) {
	fields = append(fields, zap.String("viewer", launcher.viewerPath), zap.String("command_line", commandLine))
	if launcher.dryRun {
		launcher.logger.Info(dryRunMessage, fields...)
		return Outcome{State: StateStarted, CommandLine: commandLine, DryRun: true}, nil
	}
	launcher.logger.Info(launchingMessage, fields...)
	if startError := launcher.starter.Start(launcher.viewerPath, commandLine); startError != nil {
		launchFault := fmt.Errorf(launchFaultFormat, ErrLaunchFault, launcher.viewerPath, startError)
		return Outcome{State: StateFailed, CommandLine: commandLine, Failure: launchFault}, launchFault
	}
	return Outcome{State: StateStarted, CommandLine: commandLine}, nil
}
