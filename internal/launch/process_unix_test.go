//go:build unix

package launch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const argumentRecorderScript = `#!/bin/sh
directory=$(dirname "$0")
printf '%s\n' "$@" > "$directory/arguments.tmp"
mv "$directory/arguments.tmp" "$directory/arguments.txt"
`

func TestProcessStarterPassesExactArguments(t *testing.T) {
	workingDirectory := t.TempDir()
	viewerPath := filepath.Join(workingDirectory, "viewer.sh")
	require.NoError(t, os.WriteFile(viewerPath, []byte(argumentRecorderScript), 0o755))
	assemblyPath := writeAssembly(t, filepath.Join(workingDirectory, "out dir"), "Foo.dll")

	launcher := NewLauncher(Options{ViewerPath: viewerPath})
	outcome, launchError := launcher.Launch(context.Background(), Request{AssemblyPath: assemblyPath, NavigationTarget: "/navigateTo:M:Ns.Foo.Bar"})
	require.NoError(t, launchError)
	require.Equal(t, StateStarted, outcome.State)

	recordedPath := filepath.Join(workingDirectory, "arguments.txt")
	require.Eventually(t, func() bool {
		_, statError := os.Stat(recordedPath)
		return statError == nil
	}, 10*time.Second, 20*time.Millisecond)

	recorded, readError := os.ReadFile(recordedPath)
	require.NoError(t, readError)
	require.Equal(t, []string{assemblyPath, "/navigateTo:M:Ns.Foo.Bar"}, strings.Split(strings.TrimSuffix(string(recorded), "\n"), "\n"))
}

func TestProcessStarterReportsMissingExecutable(t *testing.T) {
	assemblyPath := writeAssembly(t, t.TempDir(), "Foo.dll")
	launcher := NewLauncher(Options{ViewerPath: filepath.Join(t.TempDir(), "absent-viewer")})

	_, launchError := launcher.Launch(context.Background(), Request{AssemblyPath: assemblyPath})
	require.ErrorIs(t, launchError, ErrLaunchFault)
}
