package registry

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"

	"github.com/temirov/ilnav/internal/utils"
)

const (
	// unsignedTokenDirectory holds assemblies registered without a strong name.
	unsignedTokenDirectory = "null"
	flatLayoutSeparator    = "__"
	frameworkFourPrefix    = "v4.0_"
	libraryExtension       = ".dll"
	executableExtension    = ".exe"
	existenceCheckFormat   = "check registry candidate %s: %w"
)

// DefaultArchitectures lists the processor architecture side directories searched below each root.
var DefaultArchitectures = []string{"GAC_MSIL", "GAC_32", "GAC_64"}

// Resolver finds assemblies in registry roots. It keeps no cache.
type Resolver struct {
	fileSystem    afs.Service
	roots         []string
	architectures []string
}

// NewResolver constructs a Resolver searching the provided roots.
// A nil architecture list selects DefaultArchitectures.
func NewResolver(fileSystem afs.Service, roots []string, architectures []string) *Resolver {
	if fileSystem == nil {
		fileSystem = afs.New()
	}
	if architectures == nil {
		architectures = DefaultArchitectures
	}
	return &Resolver{
		fileSystem:    fileSystem,
		roots:         utils.DeduplicatePatterns(roots),
		architectures: utils.DeduplicatePatterns(architectures),
	}
}

// Roots returns the registry roots in search order.
func (resolver *Resolver) Roots() []string {
	return append([]string(nil), resolver.roots...)
}

// Find returns the path of the first registered assembly matching identity.
// A miss reports found as false with a nil error.
func (resolver *Resolver) Find(ctx context.Context, identity AssemblyIdentity) (string, bool, error) {
	if !validAssemblyName(identity.Name) {
		return "", false, nil
	}
	for _, candidatePath := range resolver.candidatePaths(identity) {
		exists, existsError := resolver.fileSystem.Exists(ctx, utils.LocalURL(candidatePath))
		if existsError != nil {
			return "", false, fmt.Errorf(existenceCheckFormat, candidatePath, existsError)
		}
		if exists {
			return candidatePath, true, nil
		}
	}
	return "", false, nil
}

func (resolver *Resolver) searchBases() []string {
	bases := make([]string, 0, len(resolver.roots)*(len(resolver.architectures)+1))
	for _, root := range resolver.roots {
		bases = append(bases, root)
		for _, architecture := range resolver.architectures {
			bases = append(bases, filepath.Join(root, architecture))
		}
	}
	return bases
}

func (resolver *Resolver) candidatePaths(identity AssemblyIdentity) []string {
	versionText := identity.Version.String()
	tokenText := identity.TokenString()
	tokenDirectory := tokenText
	if tokenDirectory == "" {
		tokenDirectory = unsignedTokenDirectory
	}
	entryDirectories := []string{
		filepath.Join(identity.Name, versionText, tokenDirectory),
		filepath.Join(identity.Name, versionText+flatLayoutSeparator+tokenText),
		filepath.Join(identity.Name, frameworkFourPrefix+versionText+flatLayoutSeparator+tokenText),
	}
	fileNames := []string{identity.Name + libraryExtension, identity.Name + executableExtension}

	var candidates []string
	for _, base := range resolver.searchBases() {
		for _, entryDirectory := range entryDirectories {
			for _, fileName := range fileNames {
				candidates = append(candidates, filepath.Join(base, entryDirectory, fileName))
			}
		}
	}
	return candidates
}
