package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yllada/nm-connection-editor/common"
	"github.com/yllada/nm-connection-editor/validate"
)

// IPv6Method selects how a connection configures IPv6.
type IPv6Method int

const (
	// MethodAutomatic accepts addresses, routes, and DNS from router
	// advertisements.
	MethodAutomatic IPv6Method = iota
	// MethodAutomaticOnlyIP accepts addresses but ignores advertised DNS.
	MethodAutomaticOnlyIP
	// MethodAutomaticOnlyDHCP configures via DHCPv6 only.
	MethodAutomaticOnlyDHCP
	// MethodLinkLocal assigns a link-local address only.
	MethodLinkLocal
	// MethodManual uses only the statically configured addresses.
	MethodManual
	// MethodDisabled turns IPv6 off for the connection.
	MethodDisabled
)

var ipv6MethodNames = map[IPv6Method]string{
	MethodAutomatic:         "auto",
	MethodAutomaticOnlyIP:   "auto-addresses",
	MethodAutomaticOnlyDHCP: "dhcp",
	MethodLinkLocal:         "link-local",
	MethodManual:            "manual",
	MethodDisabled:          "disabled",
}

// String returns the stored method tag.
func (m IPv6Method) String() string {
	if name, ok := ipv6MethodNames[m]; ok {
		return name
	}
	return "auto"
}

// ParseIPv6Method maps a stored method tag back to its enum value.
// Unknown tags fall back to automatic.
func ParseIPv6Method(tag string) IPv6Method {
	for m, name := range ipv6MethodNames {
		if name == tag {
			return m
		}
	}
	return MethodAutomatic
}

// IPv6Address is one static address row: address, prefix length, and an
// optional gateway.
type IPv6Address struct {
	Address string
	Prefix  int
	Gateway string
}

// IPv6Setting is the editable state of a connection's IPv6 tab.
type IPv6Setting struct {
	Method        IPv6Method
	Addresses     []IPv6Address
	DNSServers    []string
	DNSDomains    []string
	IgnoreAutoDNS bool
	NeverDefault  bool
}

// LoadIPv6 populates an IPv6 setting from a snapshot.
func LoadIPv6(snap Snapshot) (IPv6Setting, error) {
	s := IPv6Setting{Method: ParseIPv6Method(snap[KeyMethod])}

	if v := snap[KeyAddresses]; v != "" {
		for _, entry := range strings.Split(v, ";") {
			addr, err := parseIPv6AddressEntry(entry)
			if err != nil {
				return s, err
			}
			s.Addresses = append(s.Addresses, addr)
		}
	}
	if v := snap[KeyDNS]; v != "" {
		s.DNSServers = strings.Split(v, ",")
	}
	if v := snap[KeyDNSSearch]; v != "" {
		s.DNSDomains = strings.Split(v, ",")
	}
	s.IgnoreAutoDNS = snap[KeyIgnoreAutoDNS] == "true"
	s.NeverDefault = snap[KeyNeverDefault] == "true"
	return s, nil
}

// Save serializes the setting. Static addresses are only written for
// the manual method; list keys are dropped when empty.
func (s IPv6Setting) Save() Snapshot {
	data := Snapshot{KeyMethod: s.Method.String()}

	if s.Method == MethodManual {
		entries := make([]string, 0, len(s.Addresses))
		for _, a := range s.Addresses {
			entry := fmt.Sprintf("%s/%d", a.Address, a.Prefix)
			if a.Gateway != "" {
				entry += "," + a.Gateway
			}
			entries = append(entries, entry)
		}
		data.Set(KeyAddresses, strings.Join(entries, ";"))
	}

	data.Set(KeyDNS, strings.Join(s.DNSServers, ","))
	data.Set(KeyDNSSearch, strings.Join(s.DNSDomains, ","))
	if s.IgnoreAutoDNS {
		data[KeyIgnoreAutoDNS] = "true"
	}
	if s.NeverDefault {
		data[KeyNeverDefault] = "true"
	}
	return data
}

// IsValid reports whether the setting can be saved: the manual method
// needs at least one address, and every configured address and DNS
// server must be well formed.
func (s IPv6Setting) IsValid() bool {
	if s.Method == MethodManual && len(s.Addresses) == 0 {
		return false
	}
	for _, a := range s.Addresses {
		if validate.IPv6(a.Address, validate.Plain) != validate.Acceptable {
			return false
		}
		if a.Prefix < 0 || a.Prefix > 128 {
			return false
		}
		if a.Gateway != "" && validate.IPv6(a.Gateway, validate.Plain) != validate.Acceptable {
			return false
		}
	}
	for _, dns := range s.DNSServers {
		if validate.IPv6(dns, validate.Plain) != validate.Acceptable {
			return false
		}
	}
	return true
}

// parseIPv6AddressEntry parses "addr/prefix" or "addr/prefix,gateway".
func parseIPv6AddressEntry(entry string) (IPv6Address, error) {
	var a IPv6Address

	addrPart, gateway, hasGateway := strings.Cut(entry, ",")
	if hasGateway {
		a.Gateway = gateway
	}

	addr, prefix, ok := strings.Cut(addrPart, "/")
	if !ok {
		return a, fmt.Errorf("%w: address entry %q has no prefix", common.ErrInvalidSetting, entry)
	}
	n, err := strconv.Atoi(prefix)
	if err != nil || n < 0 || n > 128 {
		return a, fmt.Errorf("%w: address entry %q has a bad prefix", common.ErrInvalidSetting, entry)
	}

	a.Address = addr
	a.Prefix = n
	return a, nil
}
