package validate

import (
	"regexp"
	"strconv"
)

// fqdnPattern matches dotted host names: labels of 1-63 alphanumeric or
// hyphen characters (no leading hyphen), ending in an alphabetic TLD of
// 2-63 characters. Overall length and label-count limits follow from the
// 254-character total checked separately.
var fqdnPattern = regexp.MustCompile(`^([a-zA-Z0-9][a-zA-Z0-9-]{0,62}\.)+[a-zA-Z]{2,63}$`)

// FQDN validates a fully qualified domain name of 5-254 characters.
func FQDN(text string) State {
	if text == "" {
		return Intermediate
	}
	if len(text) <= 254 && len(text) >= 5 && fqdnPattern.MatchString(text) {
		return Acceptable
	}
	for _, r := range text {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '.'
		if !ok {
			return Invalid
		}
	}
	if len(text) > 254 {
		return Invalid
	}
	return Intermediate
}

// Port validates a decimal port number in [0, 65535].
func Port(text string) State {
	if text == "" {
		return Intermediate
	}
	if len(text) > 5 {
		return Invalid
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return Invalid
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil || n > 65535 {
		return Invalid
	}
	return Acceptable
}

// EndpointAddress validates an endpoint host: an FQDN, a literal IPv4
// address, or a literal IPv6 address.
func EndpointAddress(text string) State {
	if FQDN(text) == Acceptable ||
		IPv4(text, Plain) == Acceptable ||
		IPv6(text, Plain) == Acceptable {
		return Acceptable
	}
	return Intermediate
}

// Endpoint reports whether an address/port pair forms a valid endpoint.
// The endpoint is an optional field: both parts empty is valid, one part
// empty is not, and both present requires each to be valid on its own.
func Endpoint(address, port string) bool {
	if address == "" && port == "" {
		return true
	}
	return EndpointAddress(address) == Acceptable && Port(port) == Acceptable
}

// CombinedAddress reports whether an IPv4/IPv6 address pair is valid: at
// least one family present and well formed, and any present family well
// formed. Both validators permit an optional prefix length.
func CombinedAddress(v4, v6 string) bool {
	ip4valid := IPv4(v4, WithCIDR) == Acceptable
	ip6valid := IPv6(v6, WithCIDR) == Acceptable
	ip4present := v4 != ""
	ip6present := v6 != ""
	return (ip4valid && ip6valid) || (ip4valid && !ip6present) || (!ip4present && ip6valid)
}
