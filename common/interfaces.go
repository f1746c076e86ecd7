// Package common provides shared constants, types, and utilities
// used across the connection editor.
package common

// DeviceType is the provider's classification of a physical device.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceEthernet
	DeviceWifi
	DeviceModem
)

// String returns a human-readable device type name.
func (t DeviceType) String() string {
	switch t {
	case DeviceEthernet:
		return "Ethernet"
	case DeviceWifi:
		return "Wi-Fi"
	case DeviceModem:
		return "Modem"
	default:
		return "Unknown"
	}
}

// DeviceInfo describes one network device known to the provider.
type DeviceInfo struct {
	// Path is the device's unique object path.
	Path string
	// Type is the provider's type tag for the device.
	Type DeviceType
	// Interface is the kernel interface name, if known.
	Interface string
}

// ConnectionInfo describes one connection profile held by the provider.
type ConnectionInfo struct {
	// Path is the profile's unique object path.
	Path string
	// UUID identifies the profile across renames.
	UUID string
	// ID is the human-readable profile name.
	ID string
	// Type is the connection type tag, e.g. ConnectionTypeBridge.
	Type string
	// Master is the UUID or name of the profile this one is slaved to.
	Master string
	// SlaveType names the master's type when Master is set.
	SlaveType string
	// Autoconnect marks the profile for automatic activation.
	Autoconnect bool
	// Data is the type-specific settings snapshot.
	Data map[string]string
}

// ChangeKind says whether an entity appeared or disappeared.
type ChangeKind int

const (
	EntityAdded ChangeKind = iota
	EntityRemoved
)

// EntityKind says what kind of entity a change event refers to.
type EntityKind int

const (
	EntityDevice EntityKind = iota
	EntityConnection
)

// ChangeEvent is one add/remove notification from the provider.
type ChangeEvent struct {
	Change ChangeKind
	Entity EntityKind
	// Path identifies the affected entity.
	Path string
}

// DeviceLister enumerates the provider's current devices.
type DeviceLister interface {
	// Devices returns all devices currently known to the provider.
	Devices() ([]DeviceInfo, error)
}

// ConnectionLister enumerates and resolves connection profiles.
type ConnectionLister interface {
	// Connections returns all connection profiles.
	Connections() ([]ConnectionInfo, error)
	// FindConnection resolves a profile by object path.
	FindConnection(path string) (ConnectionInfo, bool)
	// FindConnectionByUUID resolves a profile by UUID.
	FindConnectionByUUID(uuid string) (ConnectionInfo, bool)
}

// ConnectionWriter mutates connection profiles. Calls are synchronous at
// this level; callers dispatch them off the event loop and deliver the
// result back as an event.
type ConnectionWriter interface {
	// AddConnection stores a new profile and returns its object path.
	AddConnection(info ConnectionInfo) (string, error)
	// UpdateConnection replaces the settings of an existing profile.
	UpdateConnection(info ConnectionInfo) error
	// RemoveConnection deletes the profile at the given path.
	RemoveConnection(path string) error
}

// ChangeNotifier delivers add/remove events for devices and connections.
type ChangeNotifier interface {
	// Events returns the provider's change-event stream.
	Events() <-chan ChangeEvent
}

// NetworkProvider is the full surface the editor needs from the
// platform network service.
type NetworkProvider interface {
	DeviceLister
	ConnectionLister
	ConnectionWriter
	ChangeNotifier
}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}
