// Package registry resolves assembly identities against a system-wide assembly registry.
package registry

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	versionComponentCount     = 4
	versionSeparator          = "."
	invalidTokenMessageFormat = "%w: %q: %v"
	oddTokenMessageFormat     = "%w: %q has odd length"
	invalidVersionFormat      = "%w: %q"
	invalidNameFormat         = "%w: %q"
	pathSeparatorCharacters   = `/\`
	currentDirectoryName      = "."
	parentDirectoryName       = ".."
)

var (
	// ErrInvalidPublicKeyToken indicates a token string that does not decode to bytes.
	ErrInvalidPublicKeyToken = errors.New("registry: invalid public key token")
	// ErrInvalidVersion indicates a version string that is not a dotted numeric version.
	ErrInvalidVersion = errors.New("registry: invalid version")
	// ErrInvalidAssemblyName indicates a name that is empty or would escape a registry directory.
	ErrInvalidAssemblyName = errors.New("registry: invalid assembly name")
)

// Version is a four-part assembly version.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// String renders the version in major.minor.build.revision form.
func (version Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", version.Major, version.Minor, version.Build, version.Revision)
}

// ParseVersion parses a dotted version with one to four numeric components.
// Missing trailing components are zero.
func ParseVersion(text string) (Version, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Version{}, fmt.Errorf(invalidVersionFormat, ErrInvalidVersion, text)
	}
	parts := strings.Split(trimmed, versionSeparator)
	if len(parts) > versionComponentCount {
		return Version{}, fmt.Errorf(invalidVersionFormat, ErrInvalidVersion, text)
	}
	var components [versionComponentCount]int
	for partIndex, part := range parts {
		value, parseError := strconv.ParseUint(part, 10, 16)
		if parseError != nil {
			return Version{}, fmt.Errorf(invalidVersionFormat, ErrInvalidVersion, text)
		}
		components[partIndex] = int(value)
	}
	return Version{
		Major:    components[0],
		Minor:    components[1],
		Build:    components[2],
		Revision: components[3],
	}, nil
}

// ParsePublicKeyToken decodes a hexadecimal public key token.
// An empty string decodes to an empty token, meaning the assembly is unsigned.
func ParsePublicKeyToken(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed)%2 != 0 {
		return nil, fmt.Errorf(oddTokenMessageFormat, ErrInvalidPublicKeyToken, text)
	}
	decoded, decodeError := hex.DecodeString(trimmed)
	if decodeError != nil {
		return nil, fmt.Errorf(invalidTokenMessageFormat, ErrInvalidPublicKeyToken, text, decodeError)
	}
	return decoded, nil
}

// AssemblyIdentity names an assembly by name, version and strong-name token.
type AssemblyIdentity struct {
	Name           string
	Version        Version
	PublicKeyToken []byte
}

// NewAssemblyIdentity builds an identity from the textual values a host reports.
func NewAssemblyIdentity(name string, version string, publicKeyToken string) (AssemblyIdentity, error) {
	trimmedName := strings.TrimSpace(name)
	if !validAssemblyName(trimmedName) {
		return AssemblyIdentity{}, fmt.Errorf(invalidNameFormat, ErrInvalidAssemblyName, name)
	}
	parsedVersion, versionError := ParseVersion(version)
	if versionError != nil {
		return AssemblyIdentity{}, versionError
	}
	parsedToken, tokenError := ParsePublicKeyToken(publicKeyToken)
	if tokenError != nil {
		return AssemblyIdentity{}, tokenError
	}
	return AssemblyIdentity{
		Name:           trimmedName,
		Version:        parsedVersion,
		PublicKeyToken: parsedToken,
	}, nil
}

// Signed reports whether the identity carries a public key token.
func (identity AssemblyIdentity) Signed() bool {
	return len(identity.PublicKeyToken) > 0
}

// TokenString returns the lower-case hexadecimal token, or an empty string when unsigned.
func (identity AssemblyIdentity) TokenString() string {
	return hex.EncodeToString(identity.PublicKeyToken)
}

func (identity AssemblyIdentity) String() string {
	token := identity.TokenString()
	if token == "" {
		token = unsignedTokenDirectory
	}
	return fmt.Sprintf("%s, Version=%s, PublicKeyToken=%s", identity.Name, identity.Version, token)
}

// validAssemblyName reports whether name can serve as a single path segment under a registry root.
func validAssemblyName(name string) bool {
	switch name {
	case "", currentDirectoryName, parentDirectoryName:
		return false
	}
	return !strings.ContainsAny(name, pathSeparatorCharacters)
}
