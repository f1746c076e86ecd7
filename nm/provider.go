// Package nm implements the network provider against NetworkManager on
// the system D-Bus: device and connection enumeration, profile
// add/update/remove, and add/remove change signals.
package nm

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/nm-connection-editor/common"
)

const (
	busName             = "org.freedesktop.NetworkManager"
	nmPath              = dbus.ObjectPath("/org/freedesktop/NetworkManager")
	nmInterface         = "org.freedesktop.NetworkManager"
	settingsPath        = dbus.ObjectPath("/org/freedesktop/NetworkManager/Settings")
	settingsInterface   = "org.freedesktop.NetworkManager.Settings"
	connectionInterface = "org.freedesktop.NetworkManager.Settings.Connection"
	deviceInterface     = "org.freedesktop.NetworkManager.Device"
)

// NetworkManager device type codes for the types the inventory tracks.
const (
	nmDeviceTypeEthernet uint32 = 1
	nmDeviceTypeWifi     uint32 = 2
	nmDeviceTypeModem    uint32 = 8
)

// Provider talks to NetworkManager over the system bus. It satisfies
// common.NetworkProvider.
type Provider struct {
	conn    *dbus.Conn
	events  chan common.ChangeEvent
	signals chan *dbus.Signal

	closeOnce sync.Once
}

// NewProvider connects to the system bus and subscribes to
// NetworkManager's device and connection change signals.
func NewProvider() (*Provider, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, common.WrapError(err, "failed to connect to system bus")
	}

	p := &Provider{
		conn:    conn,
		events:  make(chan common.ChangeEvent, common.EventBuffer),
		signals: make(chan *dbus.Signal, 2*common.EventBuffer),
	}

	matches := []struct{ iface, member string }{
		{nmInterface, "DeviceAdded"},
		{nmInterface, "DeviceRemoved"},
		{settingsInterface, "NewConnection"},
		{settingsInterface, "ConnectionRemoved"},
	}
	for _, m := range matches {
		err := conn.AddMatchSignal(
			dbus.WithMatchInterface(m.iface),
			dbus.WithMatchMember(m.member),
		)
		if err != nil {
			conn.Close()
			return nil, common.WrapError(err, "failed to subscribe to "+m.member)
		}
	}

	conn.Signal(p.signals)
	go p.pump()

	return p, nil
}

// Close tears down the bus connection and the event stream.
func (p *Provider) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.conn.RemoveSignal(p.signals)
		err = p.conn.Close()
	})
	return err
}

// Events returns the change-event stream.
func (p *Provider) Events() <-chan common.ChangeEvent {
	return p.events
}

// pump translates raw bus signals into change events. It exits when the
// bus connection closes the signal channel.
func (p *Provider) pump() {
	for sig := range p.signals {
		ev, ok := eventForSignal(sig)
		if !ok {
			continue
		}
		select {
		case p.events <- ev:
		default:
			// A stalled consumer must not wedge the bus reader.
			common.LogWarn("dropping change event for %s", ev.Path)
		}
	}
	close(p.events)
}

// eventForSignal maps a NetworkManager signal to a change event.
func eventForSignal(sig *dbus.Signal) (common.ChangeEvent, bool) {
	if len(sig.Body) == 0 {
		return common.ChangeEvent{}, false
	}
	path, ok := sig.Body[0].(dbus.ObjectPath)
	if !ok {
		return common.ChangeEvent{}, false
	}

	ev := common.ChangeEvent{Path: string(path)}
	switch sig.Name {
	case nmInterface + ".DeviceAdded":
		ev.Entity, ev.Change = common.EntityDevice, common.EntityAdded
	case nmInterface + ".DeviceRemoved":
		ev.Entity, ev.Change = common.EntityDevice, common.EntityRemoved
	case settingsInterface + ".NewConnection":
		ev.Entity, ev.Change = common.EntityConnection, common.EntityAdded
	case settingsInterface + ".ConnectionRemoved":
		ev.Entity, ev.Change = common.EntityConnection, common.EntityRemoved
	default:
		return common.ChangeEvent{}, false
	}
	return ev, true
}

// Devices enumerates NetworkManager's current devices.
func (p *Provider) Devices() ([]common.DeviceInfo, error) {
	var paths []dbus.ObjectPath
	obj := p.conn.Object(busName, nmPath)
	if err := obj.Call(nmInterface+".GetDevices", 0).Store(&paths); err != nil {
		return nil, common.WrapError(err, "failed to enumerate devices")
	}

	devices := make([]common.DeviceInfo, 0, len(paths))
	for _, path := range paths {
		dev := p.conn.Object(busName, path)

		typeVar, err := dev.GetProperty(deviceInterface + ".DeviceType")
		if err != nil {
			common.LogWarn("device %s has no readable type: %v", path, err)
			continue
		}
		code, _ := typeVar.Value().(uint32)

		iface := ""
		if ifaceVar, err := dev.GetProperty(deviceInterface + ".Interface"); err == nil {
			iface, _ = ifaceVar.Value().(string)
		}

		devices = append(devices, common.DeviceInfo{
			Path:      string(path),
			Type:      deviceTypeFor(code),
			Interface: iface,
		})
	}
	return devices, nil
}

// deviceTypeFor maps a NetworkManager device type code to the
// provider-neutral classification.
func deviceTypeFor(code uint32) common.DeviceType {
	switch code {
	case nmDeviceTypeEthernet:
		return common.DeviceEthernet
	case nmDeviceTypeWifi:
		return common.DeviceWifi
	case nmDeviceTypeModem:
		return common.DeviceModem
	default:
		return common.DeviceUnknown
	}
}

// Connections enumerates all stored connection profiles.
func (p *Provider) Connections() ([]common.ConnectionInfo, error) {
	var paths []dbus.ObjectPath
	obj := p.conn.Object(busName, settingsPath)
	if err := obj.Call(settingsInterface+".ListConnections", 0).Store(&paths); err != nil {
		return nil, common.WrapError(err, "failed to enumerate connections")
	}

	conns := make([]common.ConnectionInfo, 0, len(paths))
	for _, path := range paths {
		info, ok := p.FindConnection(string(path))
		if !ok {
			continue
		}
		conns = append(conns, info)
	}
	return conns, nil
}

// FindConnection resolves a profile by object path.
func (p *Provider) FindConnection(path string) (common.ConnectionInfo, bool) {
	var raw map[string]map[string]dbus.Variant
	obj := p.conn.Object(busName, dbus.ObjectPath(path))
	if err := obj.Call(connectionInterface+".GetSettings", 0).Store(&raw); err != nil {
		return common.ConnectionInfo{}, false
	}

	info := parseConnection(raw)
	info.Path = path
	return info, true
}

// FindConnectionByUUID resolves a profile by UUID.
func (p *Provider) FindConnectionByUUID(uuid string) (common.ConnectionInfo, bool) {
	var path dbus.ObjectPath
	obj := p.conn.Object(busName, settingsPath)
	if err := obj.Call(settingsInterface+".GetConnectionByUuid", 0, uuid).Store(&path); err != nil {
		return common.ConnectionInfo{}, false
	}
	return p.FindConnection(string(path))
}

// AddConnection stores a new profile and returns its object path.
func (p *Provider) AddConnection(info common.ConnectionInfo) (string, error) {
	var path dbus.ObjectPath
	obj := p.conn.Object(busName, settingsPath)
	err := obj.Call(settingsInterface+".AddConnection", 0, buildConnection(info)).Store(&path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrOperationFailed, err)
	}
	return string(path), nil
}

// UpdateConnection replaces the settings of an existing profile.
func (p *Provider) UpdateConnection(info common.ConnectionInfo) error {
	obj := p.conn.Object(busName, dbus.ObjectPath(info.Path))
	err := obj.Call(connectionInterface+".Update", 0, buildConnection(info)).Err
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrOperationFailed, err)
	}
	return nil
}

// RemoveConnection deletes the profile at the given path.
func (p *Provider) RemoveConnection(path string) error {
	obj := p.conn.Object(busName, dbus.ObjectPath(path))
	if err := obj.Call(connectionInterface+".Delete", 0).Err; err != nil {
		return fmt.Errorf("%w: %v", common.ErrOperationFailed, err)
	}
	return nil
}
