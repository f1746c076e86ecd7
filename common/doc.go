// Package common provides shared constants, types, utilities, and interfaces
// used throughout the connection editor.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application-wide constants like file names and connection type tags
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Abstractions for the network provider, change events, and logging
//   - Logger: Structured logging with multiple output destinations
//   - Utils: Common utility functions for file operations and string manipulation
//
// # Usage
//
// Import the package to access shared functionality:
//
//	import "github.com/yllada/nm-connection-editor/common"
//
//	// Use logger
//	common.LogInfo("Saving connection %s", uuid)
//
//	// Check errors
//	if errors.Is(err, common.ErrConnectionNotFound) {
//	    // Handle missing connection
//	}
//
// # Design Principles
//
// This package follows several design principles:
//
//   - Single Responsibility: Each file handles one concern
//   - Interface Segregation: Small, focused interfaces
//   - Dependency Inversion: High-level modules depend on abstractions
package common
