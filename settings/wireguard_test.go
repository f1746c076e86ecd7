package settings

import (
	"strings"
	"testing"
)

// validKey is the standard base64 of 32 zero bytes.
var validKey = strings.Repeat("A", 43) + "="

func validSnapshot() Snapshot {
	return Snapshot{
		KeyAddressV4:  "10.0.0.2/24",
		KeyPrivateKey: validKey,
		KeyPublicKey:  validKey,
		KeyAllowedIPs: "0.0.0.0/0",
		KeyEndpoint:   "[2001:db8::1]:51820",
	}
}

func TestWireGuardForm_Load(t *testing.T) {
	f := NewWireGuardForm()
	f.Load(validSnapshot())

	if f.AddressV4() != "10.0.0.2/24" {
		t.Errorf("AddressV4() = %q", f.AddressV4())
	}
	if f.EndpointAddress() != "2001:db8::1" || f.EndpointPort() != "51820" {
		t.Errorf("endpoint split = (%q, %q), want (2001:db8::1, 51820)",
			f.EndpointAddress(), f.EndpointPort())
	}
	if !f.IsValid() {
		t.Errorf("IsValid() = false after loading a complete profile: %+v", f.Validity())
	}
}

func TestWireGuardForm_EmptyFormInvalid(t *testing.T) {
	f := NewWireGuardForm()

	v := f.Validity()
	if v.Address || v.PrivateKey || v.PublicKey || v.AllowedIPs {
		t.Errorf("empty form has valid required fields: %+v", v)
	}
	if !v.Endpoint {
		t.Error("blank endpoint must start out valid, it is optional")
	}
	if f.IsValid() {
		t.Error("IsValid() = true for an empty form")
	}
}

func TestWireGuardForm_Validity(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(f *WireGuardForm)
		field func(v FieldValidity) bool
		valid bool
	}{
		{
			name:  "v4 address only",
			edit:  func(f *WireGuardForm) { f.SetAddressV4("10.0.0.2/24") },
			field: func(v FieldValidity) bool { return v.Address },
			valid: true,
		},
		{
			name:  "v6 address only",
			edit:  func(f *WireGuardForm) { f.SetAddressV6("fd00::2/64") },
			field: func(v FieldValidity) bool { return v.Address },
			valid: true,
		},
		{
			name: "bad v6 alongside good v4",
			edit: func(f *WireGuardForm) {
				f.SetAddressV4("10.0.0.2/24")
				f.SetAddressV6("zz")
			},
			field: func(v FieldValidity) bool { return v.Address },
			valid: false,
		},
		{
			name:  "partial private key",
			edit:  func(f *WireGuardForm) { f.SetPrivateKey("gI6EdU") },
			field: func(v FieldValidity) bool { return v.PrivateKey },
			valid: false,
		},
		{
			name:  "complete private key",
			edit:  func(f *WireGuardForm) { f.SetPrivateKey(validKey) },
			field: func(v FieldValidity) bool { return v.PrivateKey },
			valid: true,
		},
		{
			name:  "allowed IPs list",
			edit:  func(f *WireGuardForm) { f.SetAllowedIPs("10.0.0.0/24, fd00::/8") },
			field: func(v FieldValidity) bool { return v.AllowedIPs },
			valid: true,
		},
		{
			name:  "endpoint address without port",
			edit:  func(f *WireGuardForm) { f.SetEndpointAddress("vpn.example.com") },
			field: func(v FieldValidity) bool { return v.Endpoint },
			valid: false,
		},
		{
			name: "endpoint address and port",
			edit: func(f *WireGuardForm) {
				f.SetEndpointAddress("vpn.example.com")
				f.SetEndpointPort("51820")
			},
			field: func(v FieldValidity) bool { return v.Endpoint },
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewWireGuardForm()
			tt.edit(f)
			if got := tt.field(f.Validity()); got != tt.valid {
				t.Errorf("field validity = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestWireGuardForm_Save(t *testing.T) {
	f := NewWireGuardForm()
	f.Load(validSnapshot())
	f.SetAddressV6("")
	f.SetAllowedIPs("192.0.2.0/24")

	base := Snapshot{"mtu": "1420", KeyAddressV6: "fd00::2/64"}
	data := f.Save(base)

	if data["mtu"] != "1420" {
		t.Error("unrelated keys must survive a save")
	}
	if _, ok := data[KeyAddressV6]; ok {
		t.Error("cleared fields must be removed, not stored blank")
	}
	if data[KeyAllowedIPs] != "192.0.2.0/24" {
		t.Errorf("allowed-ips = %q, want 192.0.2.0/24", data[KeyAllowedIPs])
	}
	if data[KeyEndpoint] != "[2001:db8::1]:51820" {
		t.Errorf("endpoint = %q, want [2001:db8::1]:51820", data[KeyEndpoint])
	}
	if base[KeyAddressV6] != "fd00::2/64" {
		t.Error("Save must not mutate the base snapshot")
	}
}

func TestWireGuardForm_SaveKeepsEndpointWhenCleared(t *testing.T) {
	f := NewWireGuardForm()
	base := validSnapshot()
	f.Load(base)
	f.SetEndpointAddress("")
	f.SetEndpointPort("")

	data := f.Save(base)
	if data[KeyEndpoint] != base[KeyEndpoint] {
		t.Errorf("endpoint = %q, want the stored value left untouched", data[KeyEndpoint])
	}
}

func TestWireGuardForm_OnChanged(t *testing.T) {
	f := NewWireGuardForm()
	fired := 0
	f.OnChanged(func() { fired++ })

	f.SetAddressV4("10.0.0.2/24")
	f.SetPrivateKey(validKey)

	if fired != 2 {
		t.Errorf("changed callback fired %d times, want 2", fired)
	}
}
