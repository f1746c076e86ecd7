package settings

import "testing"

func TestSnapshot_Set(t *testing.T) {
	snap := Snapshot{KeyAddressV4: "10.0.0.1/24"}

	snap.Set(KeyAddressV6, "fd00::1/64")
	if snap[KeyAddressV6] != "fd00::1/64" {
		t.Errorf("Set stored %q, want fd00::1/64", snap[KeyAddressV6])
	}

	snap.Set(KeyAddressV4, "")
	if _, ok := snap[KeyAddressV4]; ok {
		t.Error("Set(\"\") must delete the key, not store a blank")
	}
}

func TestSnapshot_Clone(t *testing.T) {
	snap := Snapshot{KeyPrivateKey: "secret"}
	clone := snap.Clone()

	clone.Set(KeyPrivateKey, "other")
	if snap[KeyPrivateKey] != "secret" {
		t.Error("mutating a clone must not touch the original")
	}
}

func TestJoinEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		port     string
		expected string
	}{
		{"v4 literal", "203.0.113.5", "51820", "203.0.113.5:51820"},
		{"fqdn", "vpn.example.com", "51820", "vpn.example.com:51820"},
		{"v6 literal gets brackets", "2001:db8::1", "51820", "[2001:db8::1]:51820"},
		{"empty address", "", "51820", ""},
		{"surrounding whitespace", " 203.0.113.5 ", " 51820 ", "203.0.113.5:51820"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinEndpoint(tt.address, tt.port); got != tt.expected {
				t.Errorf("JoinEndpoint(%q, %q) = %q, want %q", tt.address, tt.port, got, tt.expected)
			}
		})
	}
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		address  string
		port     string
	}{
		{"v4 literal", "203.0.113.5:51820", "203.0.113.5", "51820"},
		{"fqdn", "vpn.example.com:51820", "vpn.example.com", "51820"},
		{"bracketed v6", "[2001:db8::1]:51820", "2001:db8::1", "51820"},
		{"empty", "", "", ""},
		{"address only", "203.0.113.5", "203.0.113.5", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, port := SplitEndpoint(tt.stored)
			if address != tt.address || port != tt.port {
				t.Errorf("SplitEndpoint(%q) = (%q, %q), want (%q, %q)",
					tt.stored, address, port, tt.address, tt.port)
			}
		})
	}
}

func TestEndpointRoundTrip(t *testing.T) {
	tests := []string{
		"203.0.113.5:51820",
		"[2001:db8::1]:51820",
		"vpn.example.com:51820",
	}

	for _, stored := range tests {
		t.Run(stored, func(t *testing.T) {
			address, port := SplitEndpoint(stored)
			if got := JoinEndpoint(address, port); got != stored {
				t.Errorf("round trip of %q produced %q", stored, got)
			}
		})
	}
}
