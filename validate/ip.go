package validate

import (
	"net"
	"strconv"
	"strings"
	"unicode"
)

// IPv4 validates a dotted-quad IPv4 address, optionally followed by a
// /0-32 prefix length when style is WithCIDR.
func IPv4(text string, style AddressStyle) State {
	if text == "" {
		return Intermediate
	}

	addr, cidr, hasSlash := strings.Cut(text, "/")
	if hasSlash && style != WithCIDR {
		return Invalid
	}

	octets := strings.Split(addr, ".")
	if len(octets) > 4 {
		return Invalid
	}

	complete := len(octets) == 4
	for i, octet := range octets {
		if octet == "" {
			// A trailing empty octet is the user mid-keystroke; an
			// empty octet anywhere else can never be completed.
			if i == len(octets)-1 && !hasSlash {
				complete = false
				continue
			}
			return Invalid
		}
		if len(octet) > 3 {
			return Invalid
		}
		n, err := strconv.Atoi(octet)
		if err != nil || n < 0 || n > 255 {
			return Invalid
		}
	}

	if !complete {
		if hasSlash {
			return Invalid
		}
		return Intermediate
	}

	if !hasSlash {
		return Acceptable
	}
	return prefixState(cidr, 32)
}

// IPv6 validates a colon-hex IPv6 address, optionally followed by a
// /0-128 prefix length when style is WithCIDR.
func IPv6(text string, style AddressStyle) State {
	if text == "" {
		return Intermediate
	}

	addr, cidr, hasSlash := strings.Cut(text, "/")
	if hasSlash && style != WithCIDR {
		return Invalid
	}

	for _, r := range addr {
		// '.' admits IPv4-mapped forms such as ::ffff:10.0.0.1.
		if r != ':' && r != '.' && !isHexDigit(r) {
			return Invalid
		}
	}

	ip := net.ParseIP(addr)
	parsed := ip != nil && strings.Contains(addr, ":")

	if hasSlash {
		if !parsed {
			return Invalid
		}
		return prefixState(cidr, 128)
	}
	if parsed {
		return Acceptable
	}
	return Intermediate
}

// IPList validates a comma- or whitespace-separated list of IPv4/IPv6
// addresses with optional prefix lengths. Every entry must be
// individually acceptable; an empty list is not yet acceptable.
func IPList(text string) State {
	entries := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(entries) == 0 {
		return Intermediate
	}

	state := Acceptable
	for _, entry := range entries {
		s := IPv4(entry, WithCIDR)
		if s != Acceptable {
			if s6 := IPv6(entry, WithCIDR); s6 > s {
				s = s6
			}
		}
		switch s {
		case Invalid:
			return Invalid
		case Intermediate:
			state = Intermediate
		}
	}
	return state
}

// prefixState validates the digits after the slash of a CIDR suffix.
func prefixState(cidr string, max int) State {
	if cidr == "" {
		return Intermediate
	}
	for _, r := range cidr {
		if r < '0' || r > '9' {
			return Invalid
		}
	}
	n, err := strconv.Atoi(cidr)
	if err != nil || n > max {
		return Invalid
	}
	return Acceptable
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
