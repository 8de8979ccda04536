package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs/storage"

	"github.com/temirov/ilnav/internal/utils"
)

const (
	matchAllPattern      = "*"
	invalidPatternFormat = "invalid registry pattern %q"
	listDirectoryFormat  = "list registry directory %s: %w"
)

// Entry describes one assembly found in the registry.
type Entry struct {
	Name           string `json:"name" xml:"name" yaml:"name"`
	Version        string `json:"version" xml:"version" yaml:"version"`
	PublicKeyToken string `json:"public_key_token" xml:"public_key_token" yaml:"public_key_token"`
	Path           string `json:"path" xml:"path" yaml:"path"`
}

// List enumerates registered assemblies whose name matches the doublestar pattern.
// Entries are reported in search order.
func (resolver *Resolver) List(ctx context.Context, pattern string) ([]Entry, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = matchAllPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf(invalidPatternFormat, pattern)
	}
	var entries []Entry
	for _, base := range resolver.searchBases() {
		nameDirectories, listError := resolver.listDirectories(ctx, base)
		if listError != nil {
			return nil, listError
		}
		for _, assemblyName := range nameDirectories {
			if resolver.isArchitecture(assemblyName) {
				continue
			}
			matched, _ := doublestar.Match(pattern, assemblyName)
			if !matched {
				continue
			}
			nameEntries, entriesError := resolver.listAssembly(ctx, filepath.Join(base, assemblyName), assemblyName)
			if entriesError != nil {
				return nil, entriesError
			}
			entries = append(entries, nameEntries...)
		}
	}
	return entries, nil
}

func (resolver *Resolver) listAssembly(ctx context.Context, assemblyDirectory string, assemblyName string) ([]Entry, error) {
	versionDirectories, listError := resolver.listDirectories(ctx, assemblyDirectory)
	if listError != nil {
		return nil, listError
	}
	var entries []Entry
	for _, versionDirectory := range versionDirectories {
		versionPath := filepath.Join(assemblyDirectory, versionDirectory)
		if versionText, tokenText, isFlat := splitFlatDirectory(versionDirectory); isFlat {
			if entry, found := resolver.entryAt(ctx, versionPath, assemblyName, versionText, tokenText); found {
				entries = append(entries, entry)
			}
			continue
		}
		tokenDirectories, tokenListError := resolver.listDirectories(ctx, versionPath)
		if tokenListError != nil {
			return nil, tokenListError
		}
		for _, tokenDirectory := range tokenDirectories {
			tokenText := tokenDirectory
			if tokenText == unsignedTokenDirectory {
				tokenText = ""
			}
			if entry, found := resolver.entryAt(ctx, filepath.Join(versionPath, tokenDirectory), assemblyName, versionDirectory, tokenText); found {
				entries = append(entries, entry)
			}
		}
	}
	return entries, nil
}

func (resolver *Resolver) entryAt(ctx context.Context, directory string, assemblyName string, versionText string, tokenText string) (Entry, bool) {
	for _, extension := range []string{libraryExtension, executableExtension} {
		candidatePath := filepath.Join(directory, assemblyName+extension)
		if exists, _ := resolver.fileSystem.Exists(ctx, utils.LocalURL(candidatePath)); exists {
			return Entry{
				Name:           assemblyName,
				Version:        versionText,
				PublicKeyToken: tokenText,
				Path:           candidatePath,
			}, true
		}
	}
	return Entry{}, false
}

// splitFlatDirectory parses "<version>__<token>" and "v4.0_<version>__<token>" directory names.
func splitFlatDirectory(directoryName string) (string, string, bool) {
	versionText, tokenText, found := strings.Cut(directoryName, flatLayoutSeparator)
	if !found {
		return "", "", false
	}
	versionText = strings.TrimPrefix(versionText, frameworkFourPrefix)
	return versionText, tokenText, true
}

// listDirectories returns child directory names; a missing directory yields none.
func (resolver *Resolver) listDirectories(ctx context.Context, directory string) ([]string, error) {
	directoryURL := utils.LocalURL(directory)
	exists, existsError := resolver.fileSystem.Exists(ctx, directoryURL)
	if existsError != nil || !exists {
		return nil, nil
	}
	objects, listError := resolver.fileSystem.List(ctx, directoryURL)
	if listError != nil {
		return nil, fmt.Errorf(listDirectoryFormat, directory, listError)
	}
	return childDirectoryNames(objects, filepath.Base(directory)), nil
}

// childDirectoryNames drops the listed directory itself, which afs reports first.
func childDirectoryNames(objects []storage.Object, parentName string) []string {
	var names []string
	for objectIndex, object := range objects {
		if !object.IsDir() {
			continue
		}
		if objectIndex == 0 && object.Name() == parentName {
			continue
		}
		names = append(names, object.Name())
	}
	return names
}

func (resolver *Resolver) isArchitecture(directoryName string) bool {
	for _, architecture := range resolver.architectures {
		if architecture == directoryName {
			return true
		}
	}
	return false
}
