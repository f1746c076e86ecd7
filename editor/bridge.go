// Package editor provides the non-visual state behind the connection
// editor dialogs: loading a profile's settings, tracking validity, and
// dispatching saves to the network service.
//
// Service calls run asynchronously; their completion handlers are
// delivered back through a configurable post function so that all state
// mutation stays on the application's event loop. A completion handler
// always re-resolves the entity it refers to and silently drops the
// result when the entity no longer exists.
package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yllada/nm-connection-editor/common"
	"github.com/yllada/nm-connection-editor/settings"
)

// Provider is the slice of the network provider the editors need.
type Provider interface {
	common.ConnectionLister
	common.ConnectionWriter
}

// Slave is one connection profile enslaved to a bridge.
type Slave struct {
	UUID  string
	Path  string
	Label string
}

// Bridge edits a bridge connection: the bridge's own setting plus the
// membership of its slave profiles.
type Bridge struct {
	masterUUID string
	masterID   string
	provider   Provider

	setting settings.BridgeSetting
	slaves  []Slave

	onChanged func()
	post      func(func())
}

// NewBridge builds a bridge editor for the master identified by UUID
// and name, loading its setting from the given snapshot and its current
// slaves from the provider.
func NewBridge(provider Provider, masterUUID, masterID string, snap settings.Snapshot) (*Bridge, error) {
	setting, err := settings.LoadBridge(snap)
	if err != nil {
		return nil, err
	}

	b := &Bridge{
		masterUUID: masterUUID,
		masterID:   masterID,
		provider:   provider,
		setting:    setting,
		post:       func(fn func()) { fn() },
	}
	b.populateSlaves()
	return b, nil
}

// SetPost installs the function that delivers async completion handlers
// back onto the event loop. The default runs them inline.
func (b *Bridge) SetPost(post func(func())) {
	if post != nil {
		b.post = post
	}
}

// OnChanged registers a callback fired whenever the editor's state
// changes in a way that can affect validity.
func (b *Bridge) OnChanged(fn func()) {
	b.onChanged = fn
}

// Setting returns the bridge's own setting.
func (b *Bridge) Setting() settings.BridgeSetting {
	return b.setting
}

// UpdateSetting replaces the bridge's own setting.
func (b *Bridge) UpdateSetting(s settings.BridgeSetting) {
	b.setting = s
	b.changed()
}

// Slaves returns the current slave profiles.
func (b *Bridge) Slaves() []Slave {
	slaves := make([]Slave, len(b.slaves))
	copy(slaves, b.slaves)
	return slaves
}

// IsValid reports whether the bridge can be saved: its own setting must
// be complete and at least one slave must be attached.
func (b *Bridge) IsValid() bool {
	return b.setting.IsValid() && len(b.slaves) > 0
}

// Save serializes the bridge's own setting.
func (b *Bridge) Save() settings.Snapshot {
	return b.setting.Save()
}

// AddSlave creates a new slave profile of the given connection type and
// dispatches it to the service. The completion handler runs on the
// event loop; it verifies the stored profile still exists and really is
// slaved to this bridge before adding it to the list, and silently
// drops the result otherwise. done, if non-nil, receives the outcome.
func (b *Bridge) AddSlave(connType, name string, data settings.Snapshot, done func(error)) {
	info := common.ConnectionInfo{
		UUID:        uuid.NewString(),
		ID:          name,
		Type:        connType,
		Master:      b.masterUUID,
		SlaveType:   common.SlaveTypeBridge,
		Autoconnect: false,
		Data:        data,
	}

	go func() {
		path, err := b.provider.AddConnection(info)
		b.post(func() { b.slaveAddComplete(path, err, done) })
	}()
}

func (b *Bridge) slaveAddComplete(path string, err error, done func(error)) {
	if err != nil {
		common.LogWarn("bridge port not added: %v", err)
		b.finish(done, err)
		return
	}

	conn, ok := b.provider.FindConnection(path)
	if !ok || !b.isMasterOf(conn) {
		// Removed (or re-mastered) while the add was in flight.
		b.finish(done, nil)
		return
	}

	b.slaves = append(b.slaves, slaveRow(conn))
	b.changed()
	b.finish(done, nil)
}

// EditSlave replaces the settings of an existing slave profile. The
// slave list is repopulated on success so renames show up.
func (b *Bridge) EditSlave(slaveUUID string, data settings.Snapshot, done func(error)) {
	conn, ok := b.provider.FindConnectionByUUID(slaveUUID)
	if !ok {
		b.finish(done, common.ErrConnectionNotFound)
		return
	}
	conn.Data = data

	go func() {
		err := b.provider.UpdateConnection(conn)
		b.post(func() {
			if err != nil {
				common.LogWarn("bridge port %s not updated: %v", common.ShortID(slaveUUID), err)
			} else {
				b.populateSlaves()
				b.changed()
			}
			b.finish(done, err)
		})
	}()
}

// RemoveSlave deletes a slave profile from the service and, on success,
// from the slave list. Unknown UUIDs are a silent no-op.
func (b *Bridge) RemoveSlave(slaveUUID string, done func(error)) {
	conn, ok := b.provider.FindConnectionByUUID(slaveUUID)
	if !ok {
		b.finish(done, nil)
		return
	}

	go func() {
		err := b.provider.RemoveConnection(conn.Path)
		b.post(func() {
			if err != nil {
				common.LogWarn("bridge port %s not removed: %v", common.ShortID(slaveUUID), err)
			} else {
				b.dropSlave(slaveUUID)
				b.changed()
			}
			b.finish(done, err)
		})
	}()
}

// populateSlaves rebuilds the slave list from the provider's current
// connections. Mastering may be recorded by UUID or by name, so both
// are matched.
func (b *Bridge) populateSlaves() {
	conns, err := b.provider.Connections()
	if err != nil {
		common.LogWarn("failed to enumerate connections: %v", err)
		return
	}

	b.slaves = b.slaves[:0]
	for _, conn := range conns {
		if b.isMasterOf(conn) {
			b.slaves = append(b.slaves, slaveRow(conn))
		}
	}
}

func (b *Bridge) isMasterOf(conn common.ConnectionInfo) bool {
	byUUID := conn.Master == b.masterUUID
	byName := b.masterID != "" && conn.Master == b.masterID
	return (byUUID || byName) && conn.SlaveType == common.SlaveTypeBridge
}

func (b *Bridge) dropSlave(slaveUUID string) {
	for i, s := range b.slaves {
		if s.UUID == slaveUUID {
			b.slaves = append(b.slaves[:i], b.slaves[i+1:]...)
			return
		}
	}
}

func (b *Bridge) changed() {
	if b.onChanged != nil {
		b.onChanged()
	}
}

func (b *Bridge) finish(done func(error), err error) {
	if done != nil {
		done(err)
	}
}

func slaveRow(conn common.ConnectionInfo) Slave {
	return Slave{
		UUID:  conn.UUID,
		Path:  conn.Path,
		Label: fmt.Sprintf("%s (%s)", conn.ID, conn.Type),
	}
}
