package editor

import (
	"fmt"

	"github.com/yllada/nm-connection-editor/common"
	"github.com/yllada/nm-connection-editor/settings"
)

// WireGuard edits one WireGuard VPN profile. The embedded form carries
// the per-field validity state; Save refuses to dispatch while any
// field is invalid.
type WireGuard struct {
	conn     common.ConnectionInfo
	provider Provider

	// Form holds the editable fields and their validity flags.
	Form *settings.WireGuardForm

	post func(func())
}

// NewWireGuard loads the profile with the given UUID into a fresh form.
func NewWireGuard(provider Provider, connUUID string) (*WireGuard, error) {
	conn, ok := provider.FindConnectionByUUID(connUUID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrConnectionNotFound, connUUID)
	}
	if conn.Type != common.ConnectionTypeVpn {
		return nil, fmt.Errorf("%w: %s is not a VPN profile", common.ErrInvalidSetting, connUUID)
	}

	form := settings.NewWireGuardForm()
	form.Load(settings.Snapshot(conn.Data))

	return &WireGuard{
		conn:     conn,
		provider: provider,
		Form:     form,
		post:     func(fn func()) { fn() },
	}, nil
}

// SetPost installs the function that delivers async completion handlers
// back onto the event loop. The default runs them inline.
func (w *WireGuard) SetPost(post func(func())) {
	if post != nil {
		w.post = post
	}
}

// UUID returns the edited profile's UUID.
func (w *WireGuard) UUID() string {
	return w.conn.UUID
}

// Name returns the edited profile's display name.
func (w *WireGuard) Name() string {
	return w.conn.ID
}

// Save serializes the form over the profile's existing snapshot and
// dispatches the update. The completion handler verifies the profile
// still exists before adopting the new state; for a profile removed
// while the update was in flight the editor's state is left untouched,
// but done still fires so synchronous callers are not stranded.
func (w *WireGuard) Save(done func(error)) {
	if !w.Form.IsValid() {
		if done != nil {
			done(common.ErrInvalidSetting)
		}
		return
	}

	conn := w.conn
	conn.Data = w.Form.Save(settings.Snapshot(w.conn.Data))

	go func() {
		err := w.provider.UpdateConnection(conn)
		w.post(func() {
			if err != nil {
				common.LogWarn("connection %s not updated: %v", common.ShortID(conn.UUID), err)
				if done != nil {
					done(err)
				}
				return
			}
			if _, ok := w.provider.FindConnectionByUUID(conn.UUID); ok {
				w.conn = conn
			}
			if done != nil {
				done(nil)
			}
		})
	}()
}
