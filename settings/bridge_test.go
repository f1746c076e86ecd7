package settings

import (
	"errors"
	"testing"

	"github.com/yllada/nm-connection-editor/common"
)

func TestLoadBridge_Defaults(t *testing.T) {
	b, err := LoadBridge(Snapshot{})
	if err != nil {
		t.Fatalf("LoadBridge() error = %v", err)
	}

	want := DefaultBridgeSetting()
	if b != want {
		t.Errorf("LoadBridge(empty) = %+v, want defaults %+v", b, want)
	}
	if b.IsValid() {
		t.Error("IsValid() = true without an interface name")
	}
}

func TestLoadBridge(t *testing.T) {
	snap := Snapshot{
		KeyInterfaceName: "br0",
		KeyAgingTime:     "600",
		KeySTPEnabled:    "true",
		KeyPriority:      "100",
		KeyForwardDelay:  "10",
		KeyHelloTime:     "1",
		KeyMaxAge:        "30",
	}

	b, err := LoadBridge(snap)
	if err != nil {
		t.Fatalf("LoadBridge() error = %v", err)
	}

	if b.InterfaceName != "br0" || b.AgingTime != 600 || !b.STPEnabled {
		t.Errorf("LoadBridge() = %+v", b)
	}
	if b.Priority != 100 || b.ForwardDelay != 10 || b.HelloTime != 1 || b.MaxAge != 30 {
		t.Errorf("STP fields = %+v", b)
	}
	if !b.IsValid() {
		t.Error("IsValid() = false for a named bridge")
	}
}

func TestLoadBridge_STPDisabledSkipsSubFields(t *testing.T) {
	snap := Snapshot{
		KeyInterfaceName: "br0",
		KeySTPEnabled:    "false",
		KeyPriority:      "not a number",
	}

	b, err := LoadBridge(snap)
	if err != nil {
		t.Fatalf("LoadBridge() error = %v (STP sub-fields must be ignored while disabled)", err)
	}
	if b.STPEnabled {
		t.Error("STPEnabled = true, want false")
	}
	if b.Priority != DefaultBridgeSetting().Priority {
		t.Errorf("Priority = %d, want the default", b.Priority)
	}
}

func TestLoadBridge_BadNumber(t *testing.T) {
	_, err := LoadBridge(Snapshot{KeyAgingTime: "soon"})
	if !errors.Is(err, common.ErrInvalidSetting) {
		t.Errorf("LoadBridge() error = %v, want ErrInvalidSetting", err)
	}
}

func TestBridgeSetting_Save(t *testing.T) {
	b := DefaultBridgeSetting()
	b.InterfaceName = "br0"

	data := b.Save()
	if data[KeyInterfaceName] != "br0" || data[KeyAgingTime] != "300" || data[KeySTPEnabled] != "true" {
		t.Errorf("Save() = %v", data)
	}
	if data[KeyPriority] != "32768" {
		t.Errorf("priority = %q, want 32768", data[KeyPriority])
	}

	b.STPEnabled = false
	data = b.Save()
	if data[KeySTPEnabled] != "false" {
		t.Errorf("stp-enabled = %q, want false", data[KeySTPEnabled])
	}
	for _, key := range []string{KeyPriority, KeyForwardDelay, KeyHelloTime, KeyMaxAge} {
		if _, ok := data[key]; ok {
			t.Errorf("%s written while STP is disabled", key)
		}
	}
}

func TestBridgeSetting_RoundTrip(t *testing.T) {
	b := BridgeSetting{
		InterfaceName: "br1",
		AgingTime:     120,
		STPEnabled:    true,
		Priority:      4096,
		ForwardDelay:  4,
		HelloTime:     1,
		MaxAge:        6,
	}

	got, err := LoadBridge(b.Save())
	if err != nil {
		t.Fatalf("LoadBridge() error = %v", err)
	}
	if got != b {
		t.Errorf("round trip = %+v, want %+v", got, b)
	}
}
