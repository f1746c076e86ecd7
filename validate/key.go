package validate

import "encoding/base64"

// KeyLength is the encoded length of a WireGuard key: 32 bytes in
// standard base64, including the trailing pad character.
const KeyLength = 44

// Key validates a WireGuard private or public key: a 44-character
// standard-base64 string decoding to exactly 32 bytes.
func Key(text string) State {
	if len(text) > KeyLength {
		return Invalid
	}

	for i, r := range text {
		if isBase64(r) {
			continue
		}
		// Padding is only ever the final character.
		if r == '=' && i == KeyLength-1 {
			continue
		}
		return Invalid
	}

	if len(text) < KeyLength {
		return Intermediate
	}

	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil || len(raw) != 32 {
		return Invalid
	}
	return Acceptable
}

func isBase64(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') || r == '+' || r == '/'
}
