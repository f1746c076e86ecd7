package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/nm-connection-editor/common"
	"github.com/yllada/nm-connection-editor/model"
)

type fakeProvider struct {
	devices []common.DeviceInfo
	conns   []common.ConnectionInfo
}

func (f *fakeProvider) Devices() ([]common.DeviceInfo, error) { return f.devices, nil }

func (f *fakeProvider) Connections() ([]common.ConnectionInfo, error) { return f.conns, nil }

func (f *fakeProvider) FindConnection(path string) (common.ConnectionInfo, bool) {
	for _, c := range f.conns {
		if c.Path == path {
			return c, true
		}
	}
	return common.ConnectionInfo{}, false
}

func (f *fakeProvider) FindConnectionByUUID(uuid string) (common.ConnectionInfo, bool) {
	for _, c := range f.conns {
		if c.UUID == uuid {
			return c, true
		}
	}
	return common.ConnectionInfo{}, false
}

func TestItemProjections(t *testing.T) {
	device := item{row: model.Item{Kind: model.Ethernet, Path: "/dev/eth0"}}
	if device.Title() != "Ethernet" {
		t.Errorf("device Title() = %q", device.Title())
	}
	if device.Description() != "/dev/eth0" {
		t.Errorf("device Description() = %q", device.Description())
	}
	if device.FilterValue() != "Ethernet" {
		t.Errorf("device FilterValue() = %q", device.FilterValue())
	}

	aggregate := item{row: model.Item{Kind: model.Vpn}}
	if aggregate.Description() != "All VPN connections" {
		t.Errorf("aggregate Description() = %q", aggregate.Description())
	}
}

func TestTitleStyleFor(t *testing.T) {
	light := titleStyleFor("light")
	dark := titleStyleFor("dark")

	if light.GetForeground() != lipgloss.Color("235") {
		t.Errorf("light foreground = %v", light.GetForeground())
	}
	if dark.GetForeground() != lipgloss.Color("230") {
		t.Errorf("dark foreground = %v", dark.GetForeground())
	}
	if _, ok := titleStyleFor("auto").GetForeground().(lipgloss.AdaptiveColor); !ok {
		t.Error("auto theme should use adaptive colors")
	}
}

func TestUpdateAppliesChangeEvents(t *testing.T) {
	provider := &fakeProvider{
		devices: []common.DeviceInfo{
			{Path: "/dev/eth0", Type: common.DeviceEthernet},
		},
	}
	inventory, err := model.New(provider)
	if err != nil {
		t.Fatalf("model.New() error = %v", err)
	}

	events := make(chan common.ChangeEvent)
	v := New(inventory, events, "dark")
	if got := len(v.list.Items()); got != 2 {
		t.Fatalf("initial list has %d items, want 2", got)
	}

	provider.conns = []common.ConnectionInfo{
		{Path: "/conn/vpn", UUID: "vpn-uuid", ID: "office", Type: common.ConnectionTypeVpn},
	}
	updated, _ := v.Update(changeMsg(common.ChangeEvent{
		Change: common.EntityAdded,
		Entity: common.EntityConnection,
		Path:   "/conn/vpn",
	}))

	view := updated.(View)
	if got := inventory.Count(); got != 3 {
		t.Errorf("inventory has %d rows after connection add, want 3", got)
	}
	if got := len(view.list.Items()); got != 3 {
		t.Errorf("list has %d items after connection add, want 3", got)
	}
}
