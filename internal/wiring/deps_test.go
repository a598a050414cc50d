package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies ensures that the dependency injection graph is valid:
// every node declaring a dependency actually uses it, and every used
// dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers a node's dependency ID from the package
	// name of the type used in Dep[T]. Nearly every node here resolves
	// interfaces from the shared core/ports package (ports.Sandbox,
	// ports.Logger, ports.ToolchainResolver, ...), so the analyzer expects
	// one node named "ports" rather than the distinct adapter nodes
	// (adapter.sandbox, adapter.logger, adapter.resolver) that provide them.
	t.Skip("graft's static analysis cannot distinguish nodes that share the ports package")
	graft.AssertDepsValid(t, "../../internal")
}
