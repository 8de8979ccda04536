package selection

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/ilnav/internal/launch"
	"github.com/temirov/ilnav/internal/locator"
	"github.com/temirov/ilnav/internal/registry"
)

const (
	referenceIdentityInvalidMessage = "reference identity invalid, using reported path"
	registryLookupFailedMessage     = "registry lookup failed, using reported path"
	registryMissMessage             = "assembly not registered, using reported path"
	registryHitMessage              = "assembly resolved from registry"
	documentUnavailableMessage      = "document unavailable, opening assembly without target"
	locateFailedMessage             = "code element lookup failed, opening assembly without target"
	noTargetMessage                 = "no enclosing code element, opening assembly without target"
)

// ErrUnknownItemKind indicates an item outside the supported shapes.
var ErrUnknownItemKind = errors.New("selection: unknown item kind")

// AssemblyResolver finds registered assemblies.
type AssemblyResolver interface {
	Find(ctx context.Context, identity registry.AssemblyIdentity) (string, bool, error)
}

// ViewerLauncher starts the viewer for one request.
type ViewerLauncher interface {
	Launch(ctx context.Context, request launch.Request) (launch.Outcome, error)
}

// DocumentReader loads source documents for code items.
type DocumentReader func(path string) (locator.Document, error)

// Result records what happened to one item.
type Result struct {
	Item    Item
	Request launch.Request
	Outcome launch.Outcome
	Err     error
}

// Processor turns selection items into viewer launches.
type Processor struct {
	resolver     AssemblyResolver
	codeLocator  locator.Locator
	launcher     ViewerLauncher
	readDocument DocumentReader
	logger       *zap.Logger
}

// NewProcessor constructs a Processor.
func NewProcessor(resolver AssemblyResolver, codeLocator locator.Locator, launcher ViewerLauncher, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		resolver:     resolver,
		codeLocator:  codeLocator,
		launcher:     launcher,
		readDocument: locator.ReadDocument,
		logger:       logger,
	}
}

// WithDocumentReader replaces how code item documents are loaded.
func (processor *Processor) WithDocumentReader(reader DocumentReader) *Processor {
	if reader != nil {
		processor.readDocument = reader
	}
	return processor
}

// Process handles items one after another in the given order. A failure on one item
// never stops the remaining ones; launch faults are joined into the returned error.
func (processor *Processor) Process(ctx context.Context, items []Item) ([]Result, error) {
	results := make([]Result, 0, len(items))
	var launchFaults []error
	for _, item := range items {
		result := processor.processItem(ctx, item)
		if result.Err != nil {
			launchFaults = append(launchFaults, result.Err)
		}
		results = append(results, result)
	}
	return results, errors.Join(launchFaults...)
}

func (processor *Processor) processItem(ctx context.Context, item Item) Result {
	request, requestError := processor.Request(ctx, item)
	if requestError != nil {
		return Result{Item: item, Err: requestError}
	}
	outcome, launchError := processor.launcher.Launch(ctx, request)
	return Result{Item: item, Request: request, Outcome: outcome, Err: launchError}
}

// Request resolves an item into a launch request without launching it.
func (processor *Processor) Request(ctx context.Context, item Item) (launch.Request, error) {
	switch typedItem := item.(type) {
	case ReferenceItem:
		return launch.Request{AssemblyPath: processor.resolveReference(ctx, typedItem)}, nil
	case ProjectOutputItem:
		return launch.Request{AssemblyPath: typedItem.AssemblyPath()}, nil
	case CodeItem:
		return launch.Request{
			AssemblyPath:     typedItem.Project.AssemblyPath(),
			NavigationTarget: processor.locateTarget(ctx, typedItem),
		}, nil
	default:
		return launch.Request{}, ErrUnknownItemKind
	}
}

func (processor *Processor) resolveReference(ctx context.Context, item ReferenceItem) string {
	identity, identityError := registry.NewAssemblyIdentity(item.Name, item.Version, item.PublicKeyToken)
	if identityError != nil {
		processor.logger.Debug(referenceIdentityInvalidMessage, zap.String("name", item.Name), zap.Error(identityError))
		return item.FallbackPath
	}
	if processor.resolver == nil {
		return item.FallbackPath
	}
	resolvedPath, found, findError := processor.resolver.Find(ctx, identity)
	switch {
	case findError != nil:
		processor.logger.Debug(registryLookupFailedMessage, zap.Stringer("identity", identity), zap.Error(findError))
		return item.FallbackPath
	case !found:
		processor.logger.Debug(registryMissMessage, zap.Stringer("identity", identity))
		return item.FallbackPath
	default:
		processor.logger.Debug(registryHitMessage, zap.Stringer("identity", identity), zap.String("path", resolvedPath))
		return resolvedPath
	}
}

func (processor *Processor) locateTarget(ctx context.Context, item CodeItem) string {
	if processor.codeLocator == nil {
		return ""
	}
	document, readError := processor.readDocument(item.DocumentPath)
	if readError != nil {
		processor.logger.Debug(documentUnavailableMessage, zap.String("document", item.DocumentPath), zap.Error(readError))
		return ""
	}
	target, found, locateError := processor.codeLocator.Locate(ctx, document, item.Offset)
	switch {
	case locateError != nil:
		processor.logger.Debug(locateFailedMessage, zap.String("document", item.DocumentPath), zap.Int("offset", item.Offset), zap.Error(locateError))
		return ""
	case !found:
		processor.logger.Debug(noTargetMessage, zap.String("document", item.DocumentPath), zap.Int("offset", item.Offset))
		return ""
	default:
		return target.String()
	}
}
