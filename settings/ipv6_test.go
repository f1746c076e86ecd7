package settings

import (
	"errors"
	"testing"

	"github.com/yllada/nm-connection-editor/common"
)

func TestIPv6Method_RoundTrip(t *testing.T) {
	methods := []IPv6Method{
		MethodAutomatic,
		MethodAutomaticOnlyIP,
		MethodAutomaticOnlyDHCP,
		MethodLinkLocal,
		MethodManual,
		MethodDisabled,
	}

	for _, m := range methods {
		t.Run(m.String(), func(t *testing.T) {
			if got := ParseIPv6Method(m.String()); got != m {
				t.Errorf("ParseIPv6Method(%q) = %v, want %v", m.String(), got, m)
			}
		})
	}

	if got := ParseIPv6Method("no-such-method"); got != MethodAutomatic {
		t.Errorf("unknown tag parsed as %v, want MethodAutomatic", got)
	}
}

func TestLoadIPv6(t *testing.T) {
	snap := Snapshot{
		KeyMethod:        "manual",
		KeyAddresses:     "fd00::2/64,fd00::1;2001:db8::5/128",
		KeyDNS:           "fd00::53,2001:db8::53",
		KeyDNSSearch:     "corp.example.com",
		KeyIgnoreAutoDNS: "true",
	}

	s, err := LoadIPv6(snap)
	if err != nil {
		t.Fatalf("LoadIPv6() error = %v", err)
	}

	if s.Method != MethodManual {
		t.Errorf("Method = %v, want manual", s.Method)
	}
	if len(s.Addresses) != 2 {
		t.Fatalf("len(Addresses) = %d, want 2", len(s.Addresses))
	}
	first := IPv6Address{Address: "fd00::2", Prefix: 64, Gateway: "fd00::1"}
	if s.Addresses[0] != first {
		t.Errorf("Addresses[0] = %+v, want %+v", s.Addresses[0], first)
	}
	if s.Addresses[1].Gateway != "" {
		t.Errorf("Addresses[1].Gateway = %q, want empty", s.Addresses[1].Gateway)
	}
	if len(s.DNSServers) != 2 || s.DNSServers[0] != "fd00::53" {
		t.Errorf("DNSServers = %v", s.DNSServers)
	}
	if !s.IgnoreAutoDNS || s.NeverDefault {
		t.Errorf("flags = %v/%v, want true/false", s.IgnoreAutoDNS, s.NeverDefault)
	}
}

func TestLoadIPv6_BadEntries(t *testing.T) {
	tests := []struct {
		name      string
		addresses string
	}{
		{"missing prefix", "fd00::2"},
		{"prefix too large", "fd00::2/129"},
		{"prefix not a number", "fd00::2/sixty-four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadIPv6(Snapshot{KeyMethod: "manual", KeyAddresses: tt.addresses})
			if !errors.Is(err, common.ErrInvalidSetting) {
				t.Errorf("LoadIPv6() error = %v, want ErrInvalidSetting", err)
			}
		})
	}
}

func TestIPv6Setting_Save(t *testing.T) {
	s := IPv6Setting{
		Method: MethodManual,
		Addresses: []IPv6Address{
			{Address: "fd00::2", Prefix: 64, Gateway: "fd00::1"},
		},
		DNSServers:   []string{"fd00::53"},
		NeverDefault: true,
	}

	data := s.Save()
	if data[KeyMethod] != "manual" {
		t.Errorf("method = %q, want manual", data[KeyMethod])
	}
	if data[KeyAddresses] != "fd00::2/64,fd00::1" {
		t.Errorf("addresses = %q", data[KeyAddresses])
	}
	if data[KeyDNS] != "fd00::53" {
		t.Errorf("dns = %q", data[KeyDNS])
	}
	if data[KeyNeverDefault] != "true" {
		t.Errorf("never-default = %q, want true", data[KeyNeverDefault])
	}
	if _, ok := data[KeyIgnoreAutoDNS]; ok {
		t.Error("ignore-auto-dns written while false")
	}

	// Static addresses only apply to the manual method.
	s.Method = MethodAutomatic
	data = s.Save()
	if _, ok := data[KeyAddresses]; ok {
		t.Error("addresses written for a non-manual method")
	}
}

func TestIPv6Setting_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		setting  IPv6Setting
		expected bool
	}{
		{
			name:     "automatic with nothing else",
			setting:  IPv6Setting{Method: MethodAutomatic},
			expected: true,
		},
		{
			name:     "manual without addresses",
			setting:  IPv6Setting{Method: MethodManual},
			expected: false,
		},
		{
			name: "manual with address",
			setting: IPv6Setting{
				Method:    MethodManual,
				Addresses: []IPv6Address{{Address: "fd00::2", Prefix: 64}},
			},
			expected: true,
		},
		{
			name: "bad address",
			setting: IPv6Setting{
				Method:    MethodManual,
				Addresses: []IPv6Address{{Address: "10.0.0.1", Prefix: 64}},
			},
			expected: false,
		},
		{
			name: "bad gateway",
			setting: IPv6Setting{
				Method:    MethodManual,
				Addresses: []IPv6Address{{Address: "fd00::2", Prefix: 64, Gateway: "zz"}},
			},
			expected: false,
		},
		{
			name: "bad dns server",
			setting: IPv6Setting{
				Method:     MethodAutomatic,
				DNSServers: []string{"not-an-address!"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.setting.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
