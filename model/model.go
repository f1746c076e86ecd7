// Package model maintains the connection inventory: an ordered,
// observable list of network devices plus the aggregate VPN slot, the
// backing model for the editor's connection list view.
//
// The model is populated once at construction by enumerating the
// provider's current devices and stays live afterwards by applying the
// provider's change events. Every single-row mutation is bracketed by a
// begin/end notification pair so observers never see a mutated list
// without a matching notification.
//
// The model is not safe for concurrent use; all mutation must happen on
// the application's event loop.
package model

import (
	"github.com/yllada/nm-connection-editor/common"
)

// ItemKind classifies one inventory row.
type ItemKind int

const (
	Ethernet ItemKind = iota
	Wifi
	Modem
	Vpn
)

// String returns the display name for the kind.
func (k ItemKind) String() string {
	switch k {
	case Ethernet:
		return "Ethernet"
	case Wifi:
		return "Wi-Fi"
	case Modem:
		return "Mobile Broadband"
	case Vpn:
		return "VPN"
	default:
		return "Unknown"
	}
}

// Icon returns the freedesktop icon name for the kind.
func (k ItemKind) Icon() string {
	switch k {
	case Ethernet:
		return "network-wired"
	case Wifi:
		return "network-wireless"
	case Modem:
		return "network-modem"
	case Vpn:
		return "network-vpn"
	default:
		return "network-wired"
	}
}

// Item is one inventory row: a physical device or a VPN slot.
type Item struct {
	// Kind classifies the row.
	Kind ItemKind
	// Path is the entity's object path. Empty for the aggregate VPN
	// slot appended at construction.
	Path string
}

// Name returns the row's display name.
func (it Item) Name() string {
	return it.Kind.String()
}

// Icon returns the row's icon name.
func (it Item) Icon() string {
	return it.Kind.Icon()
}

// Observer receives bracketed row notifications. Begin is delivered
// before the rows exist (or are gone), End immediately after.
type Observer interface {
	BeginInsertRows(first, last int)
	EndInsertRows()
	BeginRemoveRows(first, last int)
	EndRemoveRows()
}

// Provider is the slice of the network provider the model needs:
// device enumeration and connection resolution for live updates.
type Provider interface {
	common.DeviceLister
	common.ConnectionLister
}

// Model is the connection inventory list model.
type Model struct {
	items     []Item
	observers []Observer
	provider  Provider
}

// New builds a model from the provider's current devices. Observers
// passed here are registered before population so they see every insert.
//
// Devices the provider cannot classify as Ethernet, Wi-Fi, or Modem are
// skipped; one aggregate VPN row with an empty path is appended last.
func New(provider Provider, observers ...Observer) (*Model, error) {
	m := &Model{provider: provider}
	m.observers = append(m.observers, observers...)

	devices, err := provider.Devices()
	if err != nil {
		return nil, common.WrapError(err, "failed to enumerate devices")
	}

	for _, dev := range devices {
		kind, ok := kindForDevice(dev.Type)
		if !ok {
			continue
		}
		m.insertRow(Item{Kind: kind, Path: dev.Path})
	}

	// The aggregate VPN slot is always present, last, and unkeyed.
	m.insertRow(Item{Kind: Vpn})

	return m, nil
}

// Count returns the number of rows.
func (m *Model) Count() int {
	return len(m.items)
}

// At returns the row at the given index.
func (m *Model) At(row int) (Item, bool) {
	if row < 0 || row >= len(m.items) {
		return Item{}, false
	}
	return m.items[row], true
}

// Items returns a copy of all rows.
func (m *Model) Items() []Item {
	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items
}

// AddObserver registers an observer for row notifications.
func (m *Model) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// RemoveObserver unregisters a previously added observer.
func (m *Model) RemoveObserver(o Observer) {
	for i, existing := range m.observers {
		if existing == o {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

// Apply applies one provider change event to the inventory. Events for
// entities that no longer resolve, or for entity types the inventory
// does not track, are silently ignored.
func (m *Model) Apply(ev common.ChangeEvent) {
	switch {
	case ev.Entity == common.EntityDevice && ev.Change == common.EntityAdded:
		m.deviceAdded(ev.Path)
	case ev.Entity == common.EntityDevice && ev.Change == common.EntityRemoved:
		m.removeByPath(ev.Path)
	case ev.Entity == common.EntityConnection && ev.Change == common.EntityAdded:
		m.connectionAdded(ev.Path)
	case ev.Entity == common.EntityConnection && ev.Change == common.EntityRemoved:
		m.removeByPath(ev.Path)
	}
}

func (m *Model) deviceAdded(path string) {
	devices, err := m.provider.Devices()
	if err != nil {
		common.LogWarn("device added but enumeration failed: %v", err)
		return
	}
	for _, dev := range devices {
		if dev.Path != path {
			continue
		}
		if kind, ok := kindForDevice(dev.Type); ok {
			m.insertRow(Item{Kind: kind, Path: dev.Path})
		}
		return
	}
}

func (m *Model) connectionAdded(path string) {
	conn, ok := m.provider.FindConnection(path)
	if !ok {
		return
	}
	// Only VPN profiles get inventory rows of their own; everything
	// else is reachable through its device row.
	if conn.Type == common.ConnectionTypeVpn {
		m.insertRow(Item{Kind: Vpn, Path: conn.Path})
	}
}

// insertRow appends a row under the begin/end notification discipline.
func (m *Model) insertRow(it Item) {
	row := len(m.items)
	for _, o := range m.observers {
		o.BeginInsertRows(row, row)
	}
	m.items = append(m.items, it)
	for _, o := range m.observers {
		o.EndInsertRows()
	}
}

// removeByPath erases every row keyed by the given path under the
// begin/end notification discipline. Unknown paths are a no-op.
func (m *Model) removeByPath(path string) {
	if path == "" {
		return
	}
	for row := 0; row < len(m.items); {
		if m.items[row].Path != path {
			row++
			continue
		}
		for _, o := range m.observers {
			o.BeginRemoveRows(row, row)
		}
		m.items = append(m.items[:row], m.items[row+1:]...)
		for _, o := range m.observers {
			o.EndRemoveRows()
		}
	}
}

// kindForDevice maps a provider device type to an inventory kind.
// Unsupported types (loopback, bridge, bond, ...) are not inventoried.
func kindForDevice(t common.DeviceType) (ItemKind, bool) {
	switch t {
	case common.DeviceEthernet:
		return Ethernet, true
	case common.DeviceWifi:
		return Wifi, true
	case common.DeviceModem:
		return Modem, true
	default:
		return 0, false
	}
}
