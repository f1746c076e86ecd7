// Package common provides shared constants, types, and utilities
// used across the connection editor.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.nmeditor.app"
	// AppName is the display name of the application.
	AppName = "Connection Editor"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "nm-connection-editor"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	SecretsFileName = ".secrets"
	LogFileName     = "nm-connection-editor.log"
)

// Connection type tags as stored by the network service.
const (
	ConnectionTypeWired    = "802-3-ethernet"
	ConnectionTypeWireless = "802-11-wireless"
	ConnectionTypeVlan     = "vlan"
	ConnectionTypeBridge   = "bridge"
	ConnectionTypeVpn      = "vpn"
)

// SlaveTypeBridge marks a profile as a bridge port of its master.
const SlaveTypeBridge = "bridge"

// Defaults.
const (
	// EventBuffer is the capacity of the provider change-event channel.
	EventBuffer = 32
	// NotifyTimeout bounds how long a desktop notification command may run.
	NotifyTimeout = 3 * time.Second
)
