// Package settings provides connection setting snapshots and the
// per-type editors that load, validate, and serialize them.
//
// A Snapshot is the string-keyed configuration map exchanged with the
// network service for one connection profile. Editors load a snapshot
// into typed fields, revalidate on every edit, and serialize back to a
// snapshot only on explicit save.
package settings

import "strings"

// Snapshot is one connection profile's type-specific configuration as
// exchanged with the network service.
type Snapshot map[string]string

// Well-known WireGuard setting keys.
const (
	KeyAddressV4  = "address-v4"
	KeyAddressV6  = "address-v6"
	KeyPrivateKey = "private-key"
	KeyPublicKey  = "public-key"
	KeyAllowedIPs = "allowed-ips"
	KeyEndpoint   = "endpoint"
)

// Well-known bridge setting keys.
const (
	KeyInterfaceName = "interface-name"
	KeyAgingTime     = "aging-time"
	KeySTPEnabled    = "stp-enabled"
	KeyPriority      = "priority"
	KeyForwardDelay  = "forward-delay"
	KeyHelloTime     = "hello-time"
	KeyMaxAge        = "max-age"
)

// Well-known IPv6 setting keys.
const (
	KeyMethod        = "method"
	KeyAddresses     = "addresses"
	KeyDNS           = "dns"
	KeyDNSSearch     = "dns-search"
	KeyIgnoreAutoDNS = "ignore-auto-dns"
	KeyNeverDefault  = "never-default"
)

// Clone returns a copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	clone := make(Snapshot, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Set stores a non-empty value and deletes the key for an empty one, so
// saved snapshots never carry blank fields.
func (s Snapshot) Set(key, value string) {
	if value == "" {
		delete(s, key)
		return
	}
	s[key] = value
}

// JoinEndpoint builds the stored endpoint form from an address and port.
// An address containing a colon is taken to be an IPv6 literal and is
// bracketed: "[2001:db8::1]:51820". Empty address yields an empty
// endpoint regardless of port.
func JoinEndpoint(address, port string) string {
	address = strings.TrimSpace(address)
	port = strings.TrimSpace(port)
	if address == "" {
		return ""
	}
	if strings.Contains(address, ":") {
		return "[" + address + "]:" + port
	}
	return address + ":" + port
}

// SplitEndpoint splits a stored endpoint into address and port: on the
// first "]:" when present, else on the first ":", with any leading "["
// stripped from the address.
//
// A bare (unbracketed) IPv6 literal with a trailing port misparses here;
// the stored format always brackets IPv6 hosts, so such values only
// arise from hand-edited configuration and are passed through untouched
// rather than guessed at.
func SplitEndpoint(stored string) (address, port string) {
	if stored == "" {
		return "", ""
	}
	if i := strings.Index(stored, "]:"); i >= 0 {
		address, port = stored[:i], stored[i+2:]
	} else if i := strings.Index(stored, ":"); i >= 0 {
		address, port = stored[:i], stored[i+1:]
	} else {
		address = stored
	}
	return strings.TrimPrefix(address, "["), port
}
