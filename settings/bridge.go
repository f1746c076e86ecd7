package settings

import (
	"fmt"
	"strconv"

	"github.com/yllada/nm-connection-editor/common"
)

// BridgeSetting is the editable state of a bridge connection's own
// settings. Slave membership is managed separately by the bridge editor.
type BridgeSetting struct {
	// InterfaceName is the bridge's kernel interface name. Required.
	InterfaceName string
	// AgingTime is the MAC address aging time in seconds.
	AgingTime int
	// STPEnabled turns spanning tree on; the four fields below only
	// round-trip while it is enabled.
	STPEnabled   bool
	Priority     int
	ForwardDelay int
	HelloTime    int
	MaxAge       int
}

// DefaultBridgeSetting returns a setting with the kernel's bridge
// defaults filled in.
func DefaultBridgeSetting() BridgeSetting {
	return BridgeSetting{
		AgingTime:    300,
		STPEnabled:   true,
		Priority:     32768,
		ForwardDelay: 15,
		HelloTime:    2,
		MaxAge:       20,
	}
}

// LoadBridge populates a bridge setting from a snapshot. Missing keys
// keep their defaults; unparseable numbers are an error.
func LoadBridge(snap Snapshot) (BridgeSetting, error) {
	b := DefaultBridgeSetting()

	if v, ok := snap[KeyInterfaceName]; ok {
		b.InterfaceName = v
	}

	var err error
	if b.AgingTime, err = intField(snap, KeyAgingTime, b.AgingTime); err != nil {
		return b, err
	}

	if v, ok := snap[KeySTPEnabled]; ok {
		b.STPEnabled = v == "true" || v == "yes" || v == "1"
	}
	if !b.STPEnabled {
		return b, nil
	}

	if b.Priority, err = intField(snap, KeyPriority, b.Priority); err != nil {
		return b, err
	}
	if b.ForwardDelay, err = intField(snap, KeyForwardDelay, b.ForwardDelay); err != nil {
		return b, err
	}
	if b.HelloTime, err = intField(snap, KeyHelloTime, b.HelloTime); err != nil {
		return b, err
	}
	if b.MaxAge, err = intField(snap, KeyMaxAge, b.MaxAge); err != nil {
		return b, err
	}
	return b, nil
}

// Save serializes the setting. STP sub-fields are written only while
// STP is enabled, matching how the setting is presented for editing.
func (b BridgeSetting) Save() Snapshot {
	data := Snapshot{}
	data.Set(KeyInterfaceName, b.InterfaceName)
	data[KeyAgingTime] = strconv.Itoa(b.AgingTime)
	data[KeySTPEnabled] = strconv.FormatBool(b.STPEnabled)

	if b.STPEnabled {
		data[KeyPriority] = strconv.Itoa(b.Priority)
		data[KeyForwardDelay] = strconv.Itoa(b.ForwardDelay)
		data[KeyHelloTime] = strconv.Itoa(b.HelloTime)
		data[KeyMaxAge] = strconv.Itoa(b.MaxAge)
	}
	return data
}

// IsValid reports whether the bridge's own settings are complete.
func (b BridgeSetting) IsValid() bool {
	return b.InterfaceName != ""
}

func intField(snap Snapshot, key string, fallback int) (int, error) {
	v, ok := snap[key]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", common.ErrInvalidSetting, key, v)
	}
	return n, nil
}
